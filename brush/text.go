// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package brush

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/ggpaint/grid"
)

// Text errors.
var (
	// ErrBadTextSize is returned for non-positive text sizes.
	ErrBadTextSize = errors.New("brush: text size must be positive")
)

// TextParams configures a text stamp.
type TextParams struct {
	// Size is the text height in pixels.
	Size float64

	// Color is the text color.
	Color color.RGBA
}

// DefaultTextSize is used when TextParams.Size is zero.
const DefaultTextSize = 24

var (
	stampFontOnce sync.Once
	stampFont     *opentype.Font
	stampFontErr  error
)

// loadStampFont parses the embedded Go Regular font once.
func loadStampFont() (*opentype.Font, error) {
	stampFontOnce.Do(func() {
		stampFont, stampFontErr = opentype.Parse(goregular.TTF)
	})
	return stampFont, stampFontErr
}

// StampText paints a line of text with its baseline origin at the world
// position. Mixed-direction text is reordered into visual order before
// drawing, so RTL runs come out readable. Text crossing chunk borders
// is drawn into every chunk it overlaps.
func StampText(c Canvas, pos grid.Point, text string, params TextParams) error {
	if text == "" {
		return nil
	}
	if params.Size == 0 {
		params.Size = DefaultTextSize
	}
	if params.Size < 0 {
		return fmt.Errorf("%w: got %v", ErrBadTextSize, params.Size)
	}

	fnt, err := loadStampFont()
	if err != nil {
		return fmt.Errorf("brush: parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    params.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("brush: creating face: %w", err)
	}
	defer face.Close()

	visual := visualOrder(text)

	// World bounding box of the stamp, padded a pixel for hinting.
	bounds, adv := font.BoundString(face, visual)
	minX := int(pos.X) + bounds.Min.X.Floor() - 1
	minY := int(pos.Y) + bounds.Min.Y.Floor() - 1
	maxX := int(pos.X) + max(bounds.Max.X.Ceil(), adv.Ceil()) + 1
	maxY := int(pos.Y) + bounds.Max.Y.Ceil() + 1

	size := c.ChunkSize()
	win := grid.WindowFor(grid.Rect{
		Min: grid.Pt(float64(minX), float64(minY)),
		Max: grid.Pt(float64(maxX), float64(maxY)),
	}, size, 0)

	src := image.NewUniform(params.Color)
	var stampErr error
	win.Each(func(coord grid.Coord) {
		if stampErr != nil {
			return
		}
		ch, err := c.Touch(coord)
		if err != nil {
			stampErr = err
			return
		}

		// Baseline origin relative to this chunk. The drawer clips to
		// the chunk raster, so each chunk renders its own slice.
		origin := coord.Origin(size)
		d := &font.Drawer{
			Dst:  ch.Pix(),
			Src:  src,
			Face: face,
			Dot: fixed.Point26_6{
				X: floatToFixed(pos.X - origin.X),
				Y: floatToFixed(pos.Y - origin.Y),
			},
		}
		d.DrawString(visual)
		ch.MarkModified()
	})
	return stampErr
}

// visualOrder reorders mixed-direction text into left-to-right visual
// order, reversing the runes of right-to-left runs.
func visualOrder(text string) string {
	if text == "" {
		return text
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text); err != nil {
		return text
	}
	ordering, err := p.Order()
	if err != nil {
		return text
	}

	out := make([]rune, 0, len(text))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		runes := []rune(run.String())
		if run.Direction() == bidi.RightToLeft {
			for j := len(runes) - 1; j >= 0; j-- {
				out = append(out, runes[j])
			}
		} else {
			out = append(out, runes...)
		}
	}
	return string(out)
}

// floatToFixed converts a pixel offset to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
