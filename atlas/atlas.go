// SPDX-License-Identifier: Unlicense OR MIT

/*
Package atlas maintains the pixels of a texture atlas packed by package
pack.

An Atlas keeps a CPU copy of the texture. Renderers upload the
rectangle reported by Dirty after adding items, and sample items
through their UV coordinates. Items may be recycled by any Add; look
them up with Item before drawing.
*/
package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"gioui.org/atlas/pack"
)

// Format is the pixel format of an atlas.
type Format uint8

const (
	// Alpha stores 8-bit coverage, suitable for glyph masks.
	Alpha Format = iota
	// RGBA stores premultiplied color, suitable for icons.
	RGBA
)

const defaultSize = 1024

// Options configure an Atlas.
type Options struct {
	// Size is the width and height in pixels. Zero means 1024.
	Size int
	// Format of the pixels. The zero value is Alpha.
	Format Format
	// Border is the transparent padding around every item,
	// preventing neighbors from bleeding into each other under
	// linear filtering.
	Border int
}

// TexRect is a rectangle in normalized texture coordinates.
type TexRect struct {
	U0, V0, U1, V1 float32
}

// Item describes an image stored in the atlas.
type Item struct {
	ID pack.ID
	// Rect is the location of the image pixels, excluding the
	// border.
	Rect image.Rectangle
	// UV is Rect in texture coordinates.
	UV TexRect
}

// Atlas is a square texture packed with images.
type Atlas struct {
	size   int
	format Format
	border int
	img    draw.Image
	packer *pack.Packer
	dirty  image.Rectangle
}

// New returns an empty atlas.
func New(opts Options) *Atlas {
	size := opts.Size
	if size == 0 {
		size = defaultSize
	}
	if size < 0 {
		panic(fmt.Errorf("atlas: invalid size %d", size))
	}
	bounds := image.Rectangle{Max: image.Point{X: size, Y: size}}
	var img draw.Image
	switch opts.Format {
	case Alpha:
		img = image.NewAlpha(bounds)
	case RGBA:
		img = image.NewRGBA(bounds)
	default:
		panic(fmt.Errorf("atlas: unknown format %d", opts.Format))
	}
	return &Atlas{
		size:   size,
		format: opts.Format,
		border: opts.Border,
		img:    img,
		packer: pack.New(bounds.Size(), opts.Border),
	}
}

// Add copies img into the atlas. It returns false if img is empty
// or larger than the atlas.
func (a *Atlas) Add(img image.Image) (Item, bool) {
	b := img.Bounds()
	alloc, ok := a.packer.Insert(b.Size())
	if !ok {
		return Item{}, false
	}
	// The region may hold pixels of a recycled item.
	r := alloc.Region.Rect()
	draw.Draw(a.img, r, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(a.img, r.Inset(a.border), img, b.Min, draw.Src)
	a.dirty = a.dirty.Union(r)
	return a.item(alloc.ID, alloc.Region), true
}

// Item returns the item for id and marks it as recently used. It
// returns false if the item was recycled.
func (a *Atlas) Item(id pack.ID) (Item, bool) {
	n, ok := a.packer.Node(id)
	if !ok {
		return Item{}, false
	}
	return a.item(id, n.Region()), true
}

// Contains reports whether id is still stored, without marking it
// as used.
func (a *Atlas) Contains(id pack.ID) bool {
	return a.packer.Contains(id)
}

func (a *Atlas) item(id pack.ID, reg pack.Region) Item {
	r := reg.Rect().Inset(a.border)
	s := float32(a.size)
	return Item{
		ID:   id,
		Rect: r,
		UV: TexRect{
			U0: float32(r.Min.X) / s,
			V0: float32(r.Min.Y) / s,
			U1: float32(r.Max.X) / s,
			V1: float32(r.Max.Y) / s,
		},
	}
}

// Dirty returns the area modified since the previous call.
func (a *Atlas) Dirty() image.Rectangle {
	r := a.dirty
	a.dirty = image.Rectangle{}
	return r
}

// Usage returns the fraction of the atlas covered by items and
// their borders.
func (a *Atlas) Usage() float32 {
	return float32(a.packer.Used()) / float32(a.size*a.size)
}

// Len returns the number of items in the atlas.
func (a *Atlas) Len() int {
	return a.packer.Len()
}

// Image returns the atlas pixels. The image is an *image.Alpha or
// an *image.RGBA depending on the format.
func (a *Atlas) Image() image.Image {
	return a.img
}

// Packer returns the packer that lays out the atlas.
func (a *Atlas) Packer() *pack.Packer {
	return a.packer
}

// Size returns the width and height of the atlas in pixels.
func (a *Atlas) Size() int {
	return a.size
}

// Format returns the pixel format.
func (a *Atlas) Format() Format {
	return a.format
}

// Border returns the padding around every item.
func (a *Atlas) Border() int {
	return a.border
}
