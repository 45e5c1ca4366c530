// SPDX-License-Identifier: Unlicense OR MIT

package icons

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gioui.org/atlas/atlas"
)

func red(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	return img
}

func TestImageScales(t *testing.T) {
	img := Image(red(4)).Render(8)
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds %v", got)
	}
	c := color.RGBAModel.Convert(img.At(4, 4)).(color.RGBA)
	if c.R < 0xfe || c.G != 0 || c.B != 0 || c.A < 0xfe {
		t.Errorf("center pixel %v, want red", c)
	}
}

func TestOutline(t *testing.T) {
	square := Outline{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	img := square.Render(4).(*image.Alpha)
	for i, a := range img.Pix {
		if a < 0xfe {
			t.Errorf("pixel %d = %#x, want opaque", i, a)
		}
	}
	x := Cross.Render(20).(*image.Alpha)
	if a := x.AlphaAt(10, 10).A; a < 0x80 {
		t.Errorf("cross center %#x, want opaque", a)
	}
	if a := x.AlphaAt(0, 0).A; a != 0 {
		t.Errorf("cross corner %#x, want transparent", a)
	}
	if a := (Outline{{0, 0}, {1, 1}}).Render(4).(*image.Alpha).AlphaAt(1, 1).A; a != 0 {
		t.Errorf("degenerate outline drew %#x", a)
	}
}

func TestLookup(t *testing.T) {
	c := NewCache(atlas.New(atlas.Options{Size: 64, Format: atlas.RGBA, Border: 1}))
	c.Register("red", Image(red(4)))
	it, ok, err := c.Lookup("red", 8)
	if err != nil || !ok {
		t.Fatalf("lookup: %v, %v", ok, err)
	}
	if got := it.Rect.Size(); got != image.Pt(8, 8) {
		t.Errorf("item size %v, want 8x8", got)
	}
	again, ok, err := c.Lookup("red", 8)
	if err != nil || !ok || again != it {
		t.Errorf("second lookup %+v, want %+v", again, it)
	}
	big, ok, err := c.Lookup("red", 16)
	if err != nil || !ok {
		t.Fatalf("lookup: %v, %v", ok, err)
	}
	if big.ID == it.ID {
		t.Error("sizes share an item")
	}
	if c.Len() != 2 {
		t.Errorf("cache holds %d renderings, want 2", c.Len())
	}
}

func TestLookupErrors(t *testing.T) {
	c := NewCache(atlas.New(atlas.Options{Size: 16}))
	if _, _, err := c.Lookup("missing", 8); !errors.Is(err, ErrUnknownIcon) {
		t.Errorf("got %v, want ErrUnknownIcon", err)
	}
	c.Register("check", Check)
	_, _, err := c.Lookup("check", 0)
	if err == nil || errors.Is(err, ErrUnknownIcon) {
		t.Errorf("got %v for size 0", err)
	}
	_, ok, err := c.Lookup("check", 17)
	if err != nil || ok {
		t.Errorf("oversized icon: %v, %v", ok, err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	c := NewCache(atlas.New(atlas.Options{Size: 32}))
	c.Register("x", Cross)
	c.Lookup("x", 8)
	c.Lookup("x", 12)
	c.Register("x", Check)
	if c.Len() != 0 {
		t.Errorf("cache holds %d stale renderings", c.Len())
	}
}

func TestRecycle(t *testing.T) {
	c := NewCache(atlas.New(atlas.Options{Size: 16}))
	c.Register("check", Check)
	c.Register("cross", Cross)
	first, ok, _ := c.Lookup("check", 16)
	if !ok {
		t.Fatal("lookup failed")
	}
	if _, ok, _ := c.Lookup("cross", 16); !ok {
		t.Fatal("lookup failed")
	}
	c.Frame()
	if c.Len() != 1 {
		t.Errorf("cache holds %d renderings, want 1", c.Len())
	}
	it, ok, err := c.Lookup("check", 16)
	if err != nil || !ok {
		t.Fatalf("lookup after recycling: %v, %v", ok, err)
	}
	if it.ID == first.ID {
		t.Error("recycled item returned")
	}
}
