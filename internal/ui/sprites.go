// Package ui implements the chess game UI using Ebitengine.
package ui

import (
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/ui/art"
)

type spriteKey struct {
	color board.Color
	kind  board.PieceKind
}

// SpriteManager lazily renders and caches piece sprites.
type SpriteManager struct {
	mu          sync.Mutex
	pieces      map[spriteKey]*ebiten.Image
	missing     map[board.PieceKind]bool // logged once per kind
	size        int                      // Display size (e.g., 80)
	renderScale float64                  // Render at higher resolution for quality (e.g., 3.0)
}

var (
	sharedSprites *SpriteManager
	spritesOnce   sync.Once
)

// Sprites returns the process-wide sprite cache sized for the board squares.
func Sprites() *SpriteManager {
	spritesOnce.Do(func() {
		sharedSprites = NewSpriteManager(SquareSize)
	})
	return sharedSprites
}

// NewSpriteManager creates an empty sprite cache for pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	return &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		missing:     make(map[board.PieceKind]bool),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
}

// GetPiece returns the sprite for a piece, rendering it on first use.
// A piece whose artwork cannot be rendered gets a plain disc.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	if p.IsZero() {
		return nil
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := spriteKey{p.Color, p.Kind}
	if img, ok := sm.pieces[key]; ok {
		return img
	}

	renderSize := int(float64(sm.size) * sm.renderScale)
	rgba, err := art.Render(p, renderSize)
	if err != nil {
		if !sm.missing[p.Kind] {
			log.Printf("Failed to render %s artwork, using a disc: %v", p.Kind, err)
			sm.missing[p.Kind] = true
		}
		rgba = art.Disc(p.Color, renderSize)
	}

	img := ebiten.NewImageFromImage(rgba)
	sm.pieces[key] = img
	return img
}

// DrawPieceAt draws a piece with its top-left corner at the given pixel
// coordinates, scaled by scale for HiDPI.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64, scale float64) {
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
