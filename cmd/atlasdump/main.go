// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/exp/slices"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"gioui.org/atlas/atlas"
	"gioui.org/atlas/glyphs"
	"gioui.org/atlas/icons"
	"gioui.org/atlas/pack"
)

var (
	atlasSize = flag.Int("size", 256, "atlas width and height in pixels.")
	border    = flag.Int("border", 1, "padding around every item in pixels.")
	text      = flag.String("text", "The quick brown fox jumps over the lazy dog.", "characters to pack.")
	ppem      = flag.Float64("ppem", 24, "font size in pixels.")
	withIcons = flag.Bool("icons", false, "pack the built-in icons.")
	destPath  = flag.String("o", "atlas.png", "output file.")
	printTree = flag.Bool("tree", false, "print the packing tree.")
	workers   = flag.Int("workers", runtime.NumCPU(), "number of rasterizing goroutines.")
)

type dumpOptions struct {
	size    int
	border  int
	text    string
	ppem    float64
	icons   bool
	workers int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("atlasdump: ")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "atlasdump: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func mainErr() error {
	if flag.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flag.Arg(0))
	}
	if *atlasSize <= 0 {
		return fmt.Errorf("invalid -size %d", *atlasSize)
	}
	if *border < 0 || 2**border >= *atlasSize {
		return fmt.Errorf("invalid -border %d", *border)
	}
	if *ppem <= 0 {
		return fmt.Errorf("invalid -ppem %g", *ppem)
	}
	if *workers < 1 {
		return fmt.Errorf("invalid -workers %d", *workers)
	}
	if *destPath == "" {
		return errors.New("specify an output file with -o")
	}
	a, err := dump(dumpOptions{
		size:    *atlasSize,
		border:  *border,
		text:    *text,
		ppem:    *ppem,
		icons:   *withIcons,
		workers: *workers,
	})
	if err != nil {
		return err
	}
	if *printTree {
		if err := pack.Fprint(os.Stdout, a.Packer()); err != nil {
			return err
		}
	}
	if err := writePNG(*destPath, a.Image()); err != nil {
		return err
	}
	log.Printf("%d items, %.1f%% used, wrote %s", a.Len(), a.Usage()*100, *destPath)
	return nil
}

// dump packs the glyphs of opts.text and optionally the built-in
// icons into a new atlas.
func dump(opts dumpOptions) (*atlas.Atlas, error) {
	a := atlas.New(atlas.Options{Size: opts.size, Border: opts.border})
	bitmaps, err := rasterize(runes(opts.text), opts.ppem, opts.workers)
	if err != nil {
		return nil, err
	}
	cache := glyphs.NewCache(nil, a)
	for _, bm := range bitmaps {
		if _, ok := cache.Add(bm); !ok {
			log.Printf("no room for %q", bm.Rune)
		}
	}
	if opts.icons {
		ic := icons.NewCache(a)
		ic.Register("check", icons.Check)
		ic.Register("cross", icons.Cross)
		for _, name := range []string{"check", "cross"} {
			for _, size := range []int{16, 32} {
				_, ok, err := ic.Lookup(name, size)
				if err != nil {
					return nil, err
				}
				if !ok {
					log.Printf("no room for icon %s at %dpx", name, size)
				}
			}
		}
	}
	return a, nil
}

// runes returns the distinct runes of the NFC form of s in
// increasing order.
func runes(s string) []rune {
	rs := []rune(norm.NFC.String(s))
	slices.Sort(rs)
	return slices.Compact(rs)
}

// rasterize renders runes with n goroutines, each with its own face.
// Runes missing from the font are skipped.
func rasterize(rs []rune, ppem float64, n int) ([]glyphs.Bitmap, error) {
	if n > len(rs) {
		n = len(rs)
	}
	bitmaps := make([]glyphs.Bitmap, len(rs))
	found := make([]bool, len(rs))
	var g errgroup.Group
	for w := 0; w < n; w++ {
		w := w
		g.Go(func() error {
			face, err := glyphs.NewFace(goregular.TTF, glyphs.Options{Size: ppem})
			if err != nil {
				return err
			}
			defer face.Close()
			for i := w; i < len(rs); i += n {
				bm, err := glyphs.Rasterize(face, rs[i])
				switch {
				case errors.Is(err, glyphs.ErrNoGlyph):
					log.Printf("no glyph for %q", rs[i])
				case err != nil:
					return err
				default:
					bitmaps[i], found[i] = bm, true
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res := bitmaps[:0]
	for i, bm := range bitmaps {
		if found[i] {
			res = append(res, bm)
		}
	}
	return res, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encodePNG(f, img)
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
