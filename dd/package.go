//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package dd

import (
	"math"
	"math/cmplx"
)

// gcInitialLimit is the active node count below which GarbageCollect
// is a no-op.
const gcInitialLimit = 250000

type nodeKey struct {
	v int
	p [4]*Node
	w [4]complex128
}

type ckey struct {
	r, i int64
}

type mulKey struct {
	x, y *Node
}

type addKey struct {
	x, y *Node
	w    complex128
}

// Package is a decision-diagram engine instance. It owns the node
// arena, the unique table, and the operation caches. A Package must
// not be shared by concurrent builders.
type Package struct {
	// GCLimit is the active node count that triggers an actual sweep
	// in GarbageCollect.
	GCLimit int

	terminal *Node
	unique   map[nodeKey]*Node
	cvals    map[ckey]complex128
	mulCache map[mulKey]Edge
	addCache map[addKey]Edge
	free     *Node
	active   int

	matrixNormalization bool
}

// New creates a new decision-diagram engine instance.
func New() *Package {
	return &Package{
		GCLimit:  gcInitialLimit,
		terminal: &Node{V: -1},
		unique:   make(map[nodeKey]*Node),
		cvals:    make(map[ckey]complex128),
		mulCache: make(map[mulKey]Edge),
		addCache: make(map[addKey]Edge),
	}
}

// One returns the terminal edge with weight 1.
func (p *Package) One() Edge {
	return Edge{P: p.terminal, W: 1}
}

// Zero returns the terminal edge with weight 0.
func (p *Package) Zero() Edge {
	return Edge{P: p.terminal, W: 0}
}

// IsTerminal tests if the edge points to the terminal node.
func (p *Package) IsTerminal(e Edge) bool {
	return e.P == p.terminal
}

// UseMatrixNormalization selects how node weights are canonicalized:
// matrix normalization divides by the largest-magnitude outgoing
// weight, vector normalization by the first nonzero one.
func (p *Package) UseMatrixNormalization(on bool) {
	p.matrixNormalization = on
}

// ActiveNodes returns the number of nodes in the unique table.
func (p *Package) ActiveNodes() int {
	return p.active
}

// cnum returns the canonical representative of w within the engine
// tolerance, so that equal amplitudes compare equal as map keys.
func (p *Package) cnum(w complex128) complex128 {
	re := real(w)
	im := imag(w)
	if math.Abs(re) < Tolerance {
		re = 0
	}
	if math.Abs(im) < Tolerance {
		im = 0
	}
	if re == 0 && im == 0 {
		return 0
	}
	k := ckey{
		r: int64(math.Round(re / Tolerance)),
		i: int64(math.Round(im / Tolerance)),
	}
	v, ok := p.cvals[k]
	if !ok {
		v = complex(re, im)
		p.cvals[k] = v
	}
	return v
}

func (p *Package) allocNode() *Node {
	n := p.free
	if n != nil {
		p.free = n.next
		*n = Node{}
	} else {
		n = new(Node)
	}
	p.active++
	return n
}

// makeNode normalizes the argument edges and returns a unique-table
// backed edge for the node (v, e). Structurally equal nodes are
// pointer identical.
func (p *Package) makeNode(v int, e [4]Edge) Edge {
	for i := range e {
		e[i].W = p.cnum(e[i].W)
		if e[i].W == 0 {
			e[i].P = p.terminal
		}
	}

	// Select the normalization divisor: first nonzero weight, or the
	// largest-magnitude one in matrix mode.
	sel := -1
	for i := range e {
		if e[i].W == 0 {
			continue
		}
		if sel < 0 {
			sel = i
			if !p.matrixNormalization {
				break
			}
		} else if cmplx.Abs(e[i].W) > cmplx.Abs(e[sel].W) {
			sel = i
		}
	}
	if sel < 0 {
		return p.Zero()
	}

	d := e[sel].W
	for i := range e {
		if e[i].W != 0 {
			e[i].W = p.cnum(e[i].W / d)
		}
	}

	key := nodeKey{v: v}
	for i := range e {
		key.p[i] = e[i].P
		key.w[i] = e[i].W
	}
	n, ok := p.unique[key]
	if !ok {
		n = p.allocNode()
		n.V = v
		n.E = e
		p.unique[key] = n
	}
	return Edge{P: n, W: p.cnum(d)}
}

// IncRef registers an owning reference on the edge. When a node
// becomes referenced, references on its children are registered too.
func (p *Package) IncRef(e Edge) {
	n := e.P
	if n == nil || n == p.terminal {
		return
	}
	if n.Ref == math.MaxUint32 {
		return
	}
	n.Ref++
	if n.Ref == 1 {
		for _, c := range n.E {
			p.IncRef(c)
		}
	}
}

// DecRef releases an owning reference on the edge.
func (p *Package) DecRef(e Edge) {
	n := e.P
	if n == nil || n == p.terminal {
		return
	}
	if n.Ref == math.MaxUint32 {
		return
	}
	if n.Ref == 0 {
		panic("dd: reference count underflow")
	}
	n.Ref--
	if n.Ref == 0 {
		for _, c := range n.E {
			p.DecRef(c)
		}
	}
}

// GarbageCollect reclaims unreferenced nodes from the unique table
// and clears the operation caches. The sweep only runs when the
// active node count exceeds GCLimit.
func (p *Package) GarbageCollect() {
	if p.active < p.GCLimit {
		return
	}
	for k, n := range p.unique {
		if n.Ref == 0 {
			delete(p.unique, k)
			n.next = p.free
			p.free = n
			p.active--
		}
	}
	// The caches may hold edges into reclaimed nodes.
	p.mulCache = make(map[mulKey]Edge)
	p.addCache = make(map[addKey]Edge)
}
