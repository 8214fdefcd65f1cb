// Package art rasterizes piece artwork from the embedded SVG set.
//
// Each kind has one drawing, authored as a white piece. Black pieces are
// produced by swapping the palette before parsing.
package art

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessrules/internal/board"
)

//go:embed pieces/*.svg
var pieceFS embed.FS

// ErrNoArtwork is returned when a piece has no drawing.
var ErrNoArtwork = errors.New("no artwork")

// Palette of the authored drawings.
const (
	svgFill    = "#f9f9f9"
	svgOutline = "#1f1f1f"
)

var blackPalette = strings.NewReplacer(svgFill, "#2e2e2e", svgOutline, "#000000")

// Colors returns the body and rim colors used for pieces of c.
func Colors(c board.Color) (fill, rim color.RGBA) {
	if c == board.Black {
		return color.RGBA{0x2e, 0x2e, 0x2e, 0xff}, color.RGBA{0xd8, 0xd8, 0xd8, 0xff}
	}
	return color.RGBA{0xf9, 0xf9, 0xf9, 0xff}, color.RGBA{0x1f, 0x1f, 0x1f, 0xff}
}

func fileName(k board.PieceKind) string {
	return "pieces/" + string(k.Char()) + ".svg"
}

// SVG returns the drawing for p with its color applied.
func SVG(p board.Piece) ([]byte, error) {
	if p.IsZero() {
		return nil, ErrNoArtwork
	}
	data, err := pieceFS.ReadFile(fileName(p.Kind))
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrNoArtwork, p.Kind, err)
	}
	if p.Color == board.Black {
		data = []byte(blackPalette.Replace(string(data)))
	}
	return data, nil
}

// Render rasterizes p into a size x size image.
func Render(p board.Piece, size int) (*image.RGBA, error) {
	data, err := SVG(p)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s artwork: %w", p.Kind, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// Disc draws a filled disc in the colors of c. It stands in for a piece
// whose drawing is missing.
func Disc(c board.Color, size int) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)

	fill, rim := Colors(c)
	center := float64(size) / 2
	radius := float64(size) * 0.38

	filler.SetColor(rim)
	rasterx.AddCircle(center, center, radius, filler)
	filler.Draw()
	filler.Clear()

	filler.SetColor(fill)
	rasterx.AddCircle(center, center, radius-float64(size)*0.04, filler)
	filler.Draw()
	return rgba
}
