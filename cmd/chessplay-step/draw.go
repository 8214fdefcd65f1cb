package main

import (
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

var (
	label = color.New(color.Bold)

	squareColor = [2]color.Attribute{color.BgHiGreen, color.BgGreen}
	pieceColor  = map[board.Color]color.Attribute{
		board.White: color.FgHiWhite,
		board.Black: color.FgBlack,
	}
)

// draw renders b as a coloured grid with rank 8 on top.
func draw(b *board.Board) string {
	var sb strings.Builder
	for row := 0; row < board.Size; row++ {
		sb.WriteString(label.Sprintf(" %d ", board.Size-row))
		for col := 0; col < board.Size; col++ {
			bg := squareColor[(row+col)%2]
			p, ok := b.PieceAt(board.NewSquare(row, col))
			if !ok {
				sb.WriteString(color.New(bg).Sprint("   "))
				continue
			}
			sb.WriteString(color.New(bg, pieceColor[p.Color], color.Bold).Sprintf(" %s ", p))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("   ")
	for col := 0; col < board.Size; col++ {
		sb.WriteString(label.Sprintf(" %c ", 'a'+col))
	}
	return sb.String()
}
