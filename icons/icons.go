// SPDX-License-Identifier: Unlicense OR MIT

// Package icons caches icons rendered at pixel sizes in a texture
// atlas.
package icons

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"gioui.org/atlas/atlas"
	"gioui.org/atlas/pack"
)

// ErrUnknownIcon is returned by Lookup for unregistered names.
var ErrUnknownIcon = errors.New("icons: unknown icon")

// A Source renders an icon at size×size pixels.
type Source interface {
	Render(size int) image.Image
}

// Image returns a Source scaling img.
func Image(img image.Image) Source {
	return imageSource{img: img}
}

type imageSource struct {
	img image.Image
}

func (s imageSource) Render(size int) image.Image {
	dst := image.NewRGBA(image.Rectangle{Max: image.Point{X: size, Y: size}})
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	return dst
}

// Point is a position in an outline, where (0,0) and (1,1) are
// opposite corners of the icon.
type Point struct {
	X, Y float32
}

// Outline is a closed polygon filled with the non-zero winding
// rule.
type Outline []Point

// Render implements Source.
func (o Outline) Render(size int) image.Image {
	dst := image.NewAlpha(image.Rectangle{Max: image.Point{X: size, Y: size}})
	if len(o) < 3 {
		return dst
	}
	s := float32(size)
	z := vector.NewRasterizer(size, size)
	z.MoveTo(o[0].X*s, o[0].Y*s)
	for _, p := range o[1:] {
		z.LineTo(p.X*s, p.Y*s)
	}
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

var (
	// Check is a check mark.
	Check = Outline{
		{0.10, 0.55}, {0.22, 0.43}, {0.40, 0.61},
		{0.78, 0.23}, {0.90, 0.35}, {0.40, 0.85},
	}
	// Cross is a diagonal cross.
	Cross = Outline{
		{0.20, 0.10}, {0.50, 0.40}, {0.80, 0.10}, {0.90, 0.20},
		{0.60, 0.50}, {0.90, 0.80}, {0.80, 0.90}, {0.50, 0.60},
		{0.20, 0.90}, {0.10, 0.80}, {0.40, 0.50}, {0.10, 0.20},
	}
)

type key struct {
	name string
	size int
}

// Cache maps icons at pixel sizes to atlas items.
type Cache struct {
	atlas   *atlas.Atlas
	sources map[string]Source
	items   map[key]pack.ID
}

// NewCache returns an empty cache rendering into a.
func NewCache(a *atlas.Atlas) *Cache {
	return &Cache{
		atlas:   a,
		sources: make(map[string]Source),
		items:   make(map[key]pack.ID),
	}
}

// Register adds or replaces the source of an icon. Replacing a
// source drops its rendered sizes.
func (c *Cache) Register(name string, src Source) {
	c.sources[name] = src
	for k := range c.items {
		if k.name == name {
			delete(c.items, k)
		}
	}
}

// Lookup returns the item for the named icon at size×size pixels,
// rendering it if needed. It returns false if the atlas has no room
// for the icon.
func (c *Cache) Lookup(name string, size int) (atlas.Item, bool, error) {
	k := key{name: name, size: size}
	if id, exists := c.items[k]; exists {
		if it, ok := c.atlas.Item(id); ok {
			return it, true, nil
		}
		delete(c.items, k)
	}
	src, exists := c.sources[name]
	if !exists {
		return atlas.Item{}, false, fmt.Errorf("%w %q", ErrUnknownIcon, name)
	}
	if size <= 0 {
		return atlas.Item{}, false, fmt.Errorf("icons: invalid size %d for %q", size, name)
	}
	it, ok := c.atlas.Add(src.Render(size))
	if !ok {
		return atlas.Item{}, false, nil
	}
	c.items[k] = it.ID
	return it, true, nil
}

// Frame forgets renderings whose atlas items were recycled.
func (c *Cache) Frame() {
	for k, id := range c.items {
		if !c.atlas.Contains(id) {
			delete(c.items, k)
		}
	}
}

// Len returns the number of cached renderings.
func (c *Cache) Len() int {
	return len(c.items)
}
