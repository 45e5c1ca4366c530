// SPDX-License-Identifier: Unlicense OR MIT

// Package glyphs caches rasterized font glyphs in a texture atlas.
//
// Rasterization is separate from caching: Rasterize may run on any
// goroutine with its own face, while a Cache and its atlas belong to
// one goroutine.
package glyphs

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoGlyph is returned for runes missing from a face.
var ErrNoGlyph = errors.New("glyphs: no glyph")

// Options configure a face created by NewFace.
type Options struct {
	// Size is the font size in points. Zero means 12.
	Size float64
	// DPI is the output resolution. Zero means 72, making one
	// point one pixel.
	DPI float64
}

// Bitmap is a rasterized glyph.
type Bitmap struct {
	Rune rune
	// Mask is the glyph coverage, or nil for glyphs without
	// pixels such as spaces.
	Mask *image.Alpha
	// Bounds is the position of Mask relative to the dot.
	Bounds  image.Rectangle
	Advance fixed.Int26_6
}

// NewFace parses an OpenType or TrueType font. The returned face
// is not safe for concurrent use.
func NewFace(src []byte, opts Options) (font.Face, error) {
	f, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("glyphs: failed parsing font: %w", err)
	}
	if opts.Size == 0 {
		opts.Size = 12
	}
	if opts.DPI == 0 {
		opts.DPI = 72
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyphs: %w", err)
	}
	return face, nil
}

// Rasterize renders r with its dot at the origin.
func Rasterize(face font.Face, r rune) (Bitmap, error) {
	dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Bitmap{}, fmt.Errorf("%w for %q", ErrNoGlyph, r)
	}
	bm := Bitmap{Rune: r, Bounds: dr, Advance: adv}
	if dr.Empty() {
		return bm, nil
	}
	// Faces reuse their mask between calls.
	m := image.NewAlpha(image.Rectangle{Max: dr.Size()})
	draw.Draw(m, m.Bounds(), mask, maskp, draw.Src)
	bm.Mask = m
	return bm, nil
}
