package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	// Font sources for text rendering
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	coordFontSize   = 11.0
)

func init() {
	initFonts()
}

func initFonts() {
	var err error
	regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}

	boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// GetRegularFace returns the regular font face at the given logical size
// and HiDPI scale.
func GetRegularFace(size, scale float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size * scale}
}

// GetBoldFace returns the bold font face at the given logical size and scale.
func GetBoldFace(size, scale float64) *text.GoTextFace {
	if boldSource == nil {
		return GetRegularFace(size, scale)
	}
	return &text.GoTextFace{Source: boldSource, Size: size * scale}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// drawText draws s with its top-left corner at logical (x, y).
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, scale float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*scale, y*scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextCentered draws s centred on logical (cx, cy).
func drawTextCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy, scale float64, c color.Color) {
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx*scale-w/2, cy*scale-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
