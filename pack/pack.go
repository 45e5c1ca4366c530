// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pack implements a rectangle packer for texture atlases.

A Packer recursively splits its area into a binary tree of regions
and hands out leaves to callers. When no free leaf is large enough
for a request, the least recently used region that is large enough
is recycled: everything it holds is dropped and the request is
placed in its space.

Allocations are identified by an ID. Callers must look an ID up with
Packer.Node before every use, because any Insert may have recycled
it.

A Packer is not safe for concurrent use.
*/
package pack

import (
	"fmt"
	"image"

	"golang.org/x/exp/slices"
)

// ID identifies an allocation.
type ID int64

// Invalid is the ID of a free node.
const Invalid ID = -1

// Timestamp orders nodes by their last use. Timestamps are
// only meaningful relative to each other.
type Timestamp uint64

type kind uint8

const (
	leaf kind = iota
	branch
)

// node is a record in the arena. Children are only valid for
// branches, and ids only for leaves.
type node struct {
	region   Region
	kind     kind
	children [2]int32
	id       ID
	stamp    Timestamp
}

// Packer packs rectangles into a fixed area.
type Packer struct {
	border int
	// nodes is the arena. The root is at index 0.
	nodes []node
	// free lists arena slots released by recycling.
	free   []int32
	nextID ID
	now    Timestamp
	ids    map[ID]int32
}

// Allocation is the result of a successful Insert.
type Allocation struct {
	ID     ID
	Region Region
}

// New returns a Packer covering the area (0,0)-(size.X-1,size.Y-1).
// Every inserted rectangle is padded by border pixels on each side.
func New(size image.Point, border int) *Packer {
	if size.X <= 0 || size.Y <= 0 {
		panic(fmt.Errorf("pack: invalid size %v", size))
	}
	if border < 0 {
		panic(fmt.Errorf("pack: negative border %d", border))
	}
	p := &Packer{
		border: border,
		ids:    make(map[ID]int32),
	}
	p.nodes = append(p.nodes, node{
		region: Region{Max: size.Sub(image.Point{X: 1, Y: 1})},
		id:     Invalid,
	})
	return p
}

// Size returns the size of the packed area.
func (p *Packer) Size() image.Point {
	return p.nodes[0].region.Size()
}

// Border returns the padding added to every request.
func (p *Packer) Border() int {
	return p.border
}

// Len returns the number of live allocations.
func (p *Packer) Len() int {
	return len(p.ids)
}

// Used returns the area covered by live allocations, including
// their borders.
func (p *Packer) Used() int {
	area := 0
	for _, i := range p.ids {
		sz := p.nodes[i].region.Size()
		area += sz.X * sz.Y
	}
	return area
}

// Root returns the node covering the whole area.
func (p *Packer) Root() Node {
	return Node{p: p, i: 0}
}

// Node returns the node holding id and marks it as recently used.
// It returns false if id was recycled or never allocated.
func (p *Packer) Node(id ID) (Node, bool) {
	i, ok := p.ids[id]
	if !ok {
		return Node{}, false
	}
	p.nodes[i].stamp = p.tick()
	return Node{p: p, i: i}, true
}

// Contains is like Node but leaves the recency of id untouched.
func (p *Packer) Contains(id ID) bool {
	_, ok := p.ids[id]
	return ok
}

// Nodes returns every node in the tree in pre-order.
func (p *Packer) Nodes() []Node {
	idx := p.walk(nil, 0)
	nodes := make([]Node, len(idx))
	for k, i := range idx {
		nodes[k] = Node{p: p, i: i}
	}
	return nodes
}

// Insert reserves a region for a rectangle of the given size plus
// the border. If the tree has no room, the least recently used
// node large enough is recycled. Insert returns false if even
// recycling cannot make room, or if size is empty.
func (p *Packer) Insert(size image.Point) (Allocation, bool) {
	if size.X <= 0 || size.Y <= 0 {
		return Allocation{}, false
	}
	box := size.Add(image.Point{X: 2 * p.border, Y: 2 * p.border})
	if i, ok := p.insert(0, box); ok {
		return p.allocation(i), true
	}
	for _, i := range p.lru() {
		if !fits(box, p.nodes[i].region.Size()) {
			continue
		}
		p.evict(i)
		j, ok := p.insert(i, box)
		if !ok {
			return Allocation{}, false
		}
		return p.allocation(j), true
	}
	return Allocation{}, false
}

// lru returns every node ordered by timestamp, oldest first. Nodes
// with equal timestamps keep their pre-order.
func (p *Packer) lru() []int32 {
	order := p.walk(nil, 0)
	slices.SortStableFunc(order, func(a, b int32) int {
		sa, sb := p.nodes[a].stamp, p.nodes[b].stamp
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	return order
}

// insert places box in the subtree rooted at i and returns the
// index of the claimed leaf.
func (p *Packer) insert(i int32, box image.Point) (int32, bool) {
	n := &p.nodes[i]
	switch n.kind {
	case branch:
		n.stamp = p.tick()
		c := n.children
		if j, ok := p.insert(c[0], box); ok {
			return j, true
		}
		return p.insert(c[1], box)
	case leaf:
		if n.id != Invalid {
			return 0, false
		}
		size := n.region.Size()
		switch {
		case box == size:
			n.id = p.nextID
			p.nextID++
			n.stamp = p.tick()
			p.ids[n.id] = i
			return i, true
		case fits(box, size):
			return p.insert(p.split(i, box), box)
		}
		return 0, false
	default:
		panic(fmt.Errorf("pack: invalid node kind %d", n.kind))
	}
}

// split turns the free leaf i into a branch. The first child is
// a strip exactly as wide or as tall as box, cut along the axis
// with the most space left over; the second child is the rest.
// split returns the first child.
func (p *Packer) split(i int32, box image.Point) int32 {
	r := p.nodes[i].region
	size := r.Size()
	var r0, r1 Region
	if size.X-box.X > size.Y-box.Y {
		r0 = Region{Min: r.Min, Max: image.Point{X: r.Min.X + box.X - 1, Y: r.Max.Y}}
		r1 = Region{Min: image.Point{X: r.Min.X + box.X, Y: r.Min.Y}, Max: r.Max}
	} else {
		r0 = Region{Min: r.Min, Max: image.Point{X: r.Max.X, Y: r.Min.Y + box.Y - 1}}
		r1 = Region{Min: image.Point{X: r.Min.X, Y: r.Min.Y + box.Y}, Max: r.Max}
	}
	c0, c1 := p.alloc(r0), p.alloc(r1)
	// alloc may have grown the arena; index afresh.
	n := &p.nodes[i]
	n.kind = branch
	n.children = [2]int32{c0, c1}
	return c0
}

// alloc returns a free leaf covering r, reusing a released slot
// when there is one.
func (p *Packer) alloc(r Region) int32 {
	n := node{region: r, id: Invalid}
	if k := len(p.free); k > 0 {
		i := p.free[k-1]
		p.free = p.free[:k-1]
		p.nodes[i] = n
		return i
	}
	p.nodes = append(p.nodes, n)
	return int32(len(p.nodes) - 1)
}

// evict turns node i into a free leaf, forgetting every id held in
// its subtree.
func (p *Packer) evict(i int32) {
	n := &p.nodes[i]
	if n.id != Invalid {
		delete(p.ids, n.id)
	}
	if n.kind == branch {
		p.release(n.children[0])
		p.release(n.children[1])
	}
	*n = node{region: n.region, id: Invalid}
}

// release returns the subtree rooted at i to the free list.
func (p *Packer) release(i int32) {
	n := p.nodes[i]
	if n.id != Invalid {
		delete(p.ids, n.id)
	}
	if n.kind == branch {
		p.release(n.children[0])
		p.release(n.children[1])
	}
	p.nodes[i] = node{id: Invalid}
	p.free = append(p.free, i)
}

func (p *Packer) walk(dst []int32, i int32) []int32 {
	dst = append(dst, i)
	if n := p.nodes[i]; n.kind == branch {
		dst = p.walk(dst, n.children[0])
		dst = p.walk(dst, n.children[1])
	}
	return dst
}

func (p *Packer) allocation(i int32) Allocation {
	n := p.nodes[i]
	return Allocation{ID: n.id, Region: n.region}
}

func (p *Packer) tick() Timestamp {
	p.now++
	return p.now
}
