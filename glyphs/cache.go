// SPDX-License-Identifier: Unlicense OR MIT

package glyphs

import (
	"image"

	"golang.org/x/exp/slices"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"gioui.org/atlas/atlas"
	"gioui.org/atlas/pack"
)

// Glyph is a glyph resident in the atlas.
type Glyph struct {
	Rune rune
	// Item locates the glyph in the atlas. Its ID is pack.Invalid
	// for glyphs without pixels.
	Item    atlas.Item
	Bounds  image.Rectangle
	Advance fixed.Int26_6
}

type entry struct {
	id      pack.ID
	bounds  image.Rectangle
	advance fixed.Int26_6
}

// Cache maps runes of one face to atlas items.
type Cache struct {
	face   font.Face
	atlas  *atlas.Atlas
	glyphs map[rune]entry
}

// NewCache returns a cache rasterizing with face into a. The atlas
// may be shared with other caches.
func NewCache(face font.Face, a *atlas.Atlas) *Cache {
	return &Cache{
		face:   face,
		atlas:  a,
		glyphs: make(map[rune]entry),
	}
}

// Lookup returns the glyph for r, rasterizing it if it is not in
// the atlas. It returns false if the atlas has no room for the
// glyph.
func (c *Cache) Lookup(r rune) (Glyph, bool, error) {
	if e, exists := c.glyphs[r]; exists {
		if g, ok := c.get(r, e); ok {
			return g, true, nil
		}
		delete(c.glyphs, r)
	}
	bm, err := Rasterize(c.face, r)
	if err != nil {
		return Glyph{}, false, err
	}
	g, ok := c.Add(bm)
	return g, ok, nil
}

func (c *Cache) get(r rune, e entry) (Glyph, bool) {
	g := Glyph{
		Rune:    r,
		Item:    atlas.Item{ID: pack.Invalid},
		Bounds:  e.bounds,
		Advance: e.advance,
	}
	if e.id == pack.Invalid {
		return g, true
	}
	it, ok := c.atlas.Item(e.id)
	if !ok {
		return Glyph{}, false
	}
	g.Item = it
	return g, true
}

// Add stores a bitmap produced by Rasterize, replacing any previous
// entry for its rune.
func (c *Cache) Add(bm Bitmap) (Glyph, bool) {
	e := entry{id: pack.Invalid, bounds: bm.Bounds, advance: bm.Advance}
	g := Glyph{
		Rune:    bm.Rune,
		Item:    atlas.Item{ID: pack.Invalid},
		Bounds:  bm.Bounds,
		Advance: bm.Advance,
	}
	if bm.Mask != nil {
		it, ok := c.atlas.Add(bm.Mask)
		if !ok {
			delete(c.glyphs, bm.Rune)
			return Glyph{}, false
		}
		e.id = it.ID
		g.Item = it
	}
	c.glyphs[bm.Rune] = e
	return g, true
}

// String looks up the glyphs of s after normalizing it to NFC. It
// returns false if any glyph could not be stored; such glyphs have
// an invalid item ID. Adding a glyph may recycle an earlier glyph
// of the same string if the atlas is small.
func (c *Cache) String(s string) ([]Glyph, bool, error) {
	s = norm.NFC.String(s)
	gs := make([]Glyph, 0, len(s))
	all := true
	for _, r := range s {
		g, ok, err := c.Lookup(r)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			all = false
			g = Glyph{Rune: r, Item: atlas.Item{ID: pack.Invalid}}
		}
		gs = append(gs, g)
	}
	return gs, all, nil
}

// Frame forgets runes whose atlas items were recycled. It does not
// affect the recency of the remaining items.
func (c *Cache) Frame() {
	for r, e := range c.glyphs {
		if e.id != pack.Invalid && !c.atlas.Contains(e.id) {
			delete(c.glyphs, r)
		}
	}
}

// Runes returns the cached runes in increasing order.
func (c *Cache) Runes() []rune {
	rs := make([]rune, 0, len(c.glyphs))
	for r := range c.glyphs {
		rs = append(rs, r)
	}
	slices.Sort(rs)
	return rs
}

// Len returns the number of cached runes.
func (c *Cache) Len() int {
	return len(c.glyphs)
}
