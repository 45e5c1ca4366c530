// SPDX-License-Identifier: Unlicense OR MIT

//go:build !race
// +build !race

package pack

import (
	"image"
	"testing"
)

func TestNodeAllocs(t *testing.T) {
	p := New(image.Pt(64, 64), 1)
	a, ok := p.Insert(image.Pt(10, 10))
	if !ok {
		t.Fatal("insert failed")
	}
	allocs := testing.AllocsPerRun(10, func() {
		n, ok := p.Node(a.ID)
		if !ok || n.Region() != a.Region {
			t.Fatal("lookup failed")
		}
	})
	if allocs != 0 {
		t.Errorf("expected no allocs, got %f", allocs)
	}
}

func TestExactFitAllocs(t *testing.T) {
	p := New(image.Pt(16, 16), 0)
	allocs := testing.AllocsPerRun(1, func() {
		if _, ok := p.Insert(image.Pt(16, 16)); !ok {
			t.Fatal("insert failed")
		}
		p.evict(0)
	})
	if allocs != 0 {
		t.Errorf("expected no allocs, got %f", allocs)
	}
}
