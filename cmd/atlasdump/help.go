// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The atlasdump command packs glyphs and icons into a texture atlas
and writes it as a PNG image.

Usage:

	atlasdump [flags]

The -text flag specifies the characters to rasterize with the Go Regular
font. The text is normalized to NFC and every distinct character is packed
once. The -ppem flag sets the font size in pixels.

The -icons flag adds the built-in check and cross icons at 16 and 32 pixels.

The -size flag sets the width and height of the atlas, and -border the
transparent padding around every item. Items that do not fit recycle the
least recently added ones.

The -o flag names the output file. The -tree flag prints the packing tree to
standard output.

The -workers flag sets the number of goroutines rasterizing glyphs.
`
