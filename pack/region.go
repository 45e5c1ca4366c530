// SPDX-License-Identifier: Unlicense OR MIT

package pack

import (
	"fmt"
	"image"
)

// A Region is an axis-aligned rectangle of pixels. Unlike
// image.Rectangle, both corners are inclusive: the region
// (0,0)-(3,3) covers 4×4 pixels.
type Region struct {
	Min, Max image.Point
}

// Size returns the width and height of r.
func (r Region) Size() image.Point {
	return image.Point{X: r.Dx(), Y: r.Dy()}
}

// Dx returns r's width.
func (r Region) Dx() int {
	return r.Max.X - r.Min.X + 1
}

// Dy returns r's height.
func (r Region) Dy() int {
	return r.Max.Y - r.Min.Y + 1
}

// Rect returns the half-open image.Rectangle covering the
// same pixels as r.
func (r Region) Rect() image.Rectangle {
	return image.Rectangle{Min: r.Min, Max: r.Max.Add(image.Point{X: 1, Y: 1})}
}

// Overlaps reports whether r and s share at least one pixel.
func (r Region) Overlaps(s Region) bool {
	return r.Min.X <= s.Max.X && s.Min.X <= r.Max.X &&
		r.Min.Y <= s.Max.Y && s.Min.Y <= r.Max.Y
}

// In reports whether every pixel of r is in s.
func (r Region) In(s Region) bool {
	return s.Min.X <= r.Min.X && r.Max.X <= s.Max.X &&
		s.Min.Y <= r.Min.Y && r.Max.Y <= s.Max.Y
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// fits reports whether a box of size box fits in size.
func fits(box, size image.Point) bool {
	return box.X <= size.X && box.Y <= size.Y
}
