// SPDX-License-Identifier: Unlicense OR MIT

package pack

import (
	"fmt"
	"io"
	"strings"
)

// Node is a handle to a node in a Packer's tree. Its methods read
// the current state of the node, so a handle observes recycling.
// After an Insert a handle may refer to a different node
// altogether; look allocations up again with Packer.Node.
type Node struct {
	p *Packer
	i int32
}

func (n Node) rec() *node {
	return &n.p.nodes[n.i]
}

// Region returns the area covered by n.
func (n Node) Region() Region {
	return n.rec().region
}

// ID returns the allocation held by n, or Invalid.
func (n Node) ID() ID {
	if r := n.rec(); r.kind == leaf {
		return r.id
	}
	return Invalid
}

// Timestamp returns the time n was last used.
func (n Node) Timestamp() Timestamp {
	return n.rec().stamp
}

// IsBranch reports whether n is split into two children.
func (n Node) IsBranch() bool {
	return n.rec().kind == branch
}

// IsOccupied reports whether n is a leaf holding an allocation.
func (n Node) IsOccupied() bool {
	r := n.rec()
	return r.kind == leaf && r.id != Invalid
}

// Children returns the two halves of a branch.
func (n Node) Children() (Node, Node, bool) {
	r := n.rec()
	if r.kind != branch {
		return Node{}, Node{}, false
	}
	return Node{p: n.p, i: r.children[0]}, Node{p: n.p, i: r.children[1]}, true
}

// Fprint writes an indented description of p's tree to w, one
// node per line.
func Fprint(w io.Writer, p *Packer) error {
	return fprint(w, p.Root(), 0)
}

func fprint(w io.Writer, n Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	switch {
	case n.IsBranch():
		_, err = fmt.Fprintf(w, "%sbranch %v t=%d\n", indent, n.Region(), n.Timestamp())
	case n.IsOccupied():
		_, err = fmt.Fprintf(w, "%sleaf %v id=%d t=%d\n", indent, n.Region(), n.ID(), n.Timestamp())
	default:
		_, err = fmt.Fprintf(w, "%sfree %v\n", indent, n.Region())
	}
	if err != nil {
		return err
	}
	if c0, c1, ok := n.Children(); ok {
		if err := fprint(w, c0, depth+1); err != nil {
			return err
		}
		return fprint(w, c1, depth+1)
	}
	return nil
}
