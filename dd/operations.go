//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package dd

// MakeIdent returns the identity diagram over the variable range
// [lo, hi]. An empty range yields the terminal one edge.
func (p *Package) MakeIdent(lo, hi int) Edge {
	e := p.One()
	zero := p.Zero()
	for v := lo; v <= hi; v++ {
		e = p.makeNode(v, [4]Edge{e, zero, zero, e})
	}
	return e
}

// MakeZeroState returns the state vector |0...0> over nqubits
// variables.
func (p *Package) MakeZeroState(nqubits int) Edge {
	return p.MakeBasisState(nqubits, nil)
}

// MakeBasisState returns the computational basis state selected by
// bits; missing trailing entries default to |0>.
func (p *Package) MakeBasisState(nqubits int, bits []bool) Edge {
	e := p.One()
	zero := p.Zero()
	for v := 0; v < nqubits; v++ {
		if v < len(bits) && bits[v] {
			e = p.makeNode(v, [4]Edge{zero, zero, e, zero})
		} else {
			e = p.makeNode(v, [4]Edge{e, zero, zero, zero})
		}
	}
	return e
}

// MakeGateDD builds the diagram of a single-target gate over nqubits
// lines. The 2x2 gate matrix is given row-major; line assigns each
// physical line its role (target, positive or negative control,
// default).
func (p *Package) MakeGateDD(mat [4]complex128, nqubits int, line []int8) Edge {
	target := -1
	for z := 0; z < nqubits; z++ {
		if line[z] == LineTarget {
			target = z
			break
		}
	}
	if target < 0 {
		panic("dd: gate without target line")
	}

	var em [4]Edge
	for i := range em {
		em[i] = Edge{P: p.terminal, W: p.cnum(mat[i])}
	}
	id := p.One()
	zero := p.Zero()

	// Lines below the target.
	for z := 0; z < target; z++ {
		switch line[z] {
		case LineControlPos:
			for i := range em {
				diag := zero
				if i == 0 || i == 3 {
					diag = id
				}
				em[i] = p.makeNode(z, [4]Edge{diag, zero, zero, em[i]})
			}
		case LineControlNeg:
			for i := range em {
				diag := zero
				if i == 0 || i == 3 {
					diag = id
				}
				em[i] = p.makeNode(z, [4]Edge{em[i], zero, zero, diag})
			}
		default:
			for i := range em {
				em[i] = p.makeNode(z, [4]Edge{em[i], zero, zero, em[i]})
			}
		}
		id = p.makeNode(z, [4]Edge{id, zero, zero, id})
	}

	e := p.makeNode(target, em)
	id = p.makeNode(target, [4]Edge{id, zero, zero, id})

	// Lines above the target.
	for z := target + 1; z < nqubits; z++ {
		switch line[z] {
		case LineControlPos:
			e = p.makeNode(z, [4]Edge{id, zero, zero, e})
		case LineControlNeg:
			e = p.makeNode(z, [4]Edge{e, zero, zero, id})
		default:
			e = p.makeNode(z, [4]Edge{e, zero, zero, e})
		}
		id = p.makeNode(z, [4]Edge{id, zero, zero, id})
	}
	return e
}

func (p *Package) topVar(x, y Edge) int {
	v := -1
	if x.P != p.terminal && x.P.V > v {
		v = x.P.V
	}
	if y.P != p.terminal && y.P.V > v {
		v = y.P.V
	}
	return v
}

// child resolves the i'th outgoing edge of e at the variable v. An
// edge that skips v acts as identity at that level.
func (p *Package) child(e Edge, i, v int) Edge {
	if e.P != p.terminal && e.P.V == v {
		c := e.P.E[i]
		c.W = p.cnum(c.W * e.W)
		return c
	}
	if i == 0 || i == 3 {
		return e
	}
	return p.Zero()
}

// Multiply computes the product of two diagrams. The left operand is
// a matrix; the right operand may be a matrix or a state vector.
func (p *Package) Multiply(x, y Edge) Edge {
	return p.multiply(x, y)
}

func (p *Package) multiply(x, y Edge) Edge {
	if x.W == 0 || y.W == 0 {
		return p.Zero()
	}
	w := p.cnum(x.W * y.W)
	if x.P == p.terminal && y.P == p.terminal {
		return Edge{P: p.terminal, W: w}
	}

	key := mulKey{x: x.P, y: y.P}
	if r, ok := p.mulCache[key]; ok {
		return Edge{P: r.P, W: p.cnum(r.W * w)}
	}

	v := p.topVar(x, y)
	xs := Edge{P: x.P, W: 1}
	ys := Edge{P: y.P, W: 1}

	var e [4]Edge
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			sum := p.Zero()
			for k := 0; k < 2; k++ {
				a := p.child(xs, 2*r+k, v)
				b := p.child(ys, 2*k+c, v)
				sum = p.add(sum, p.multiply(a, b))
			}
			e[2*r+c] = sum
		}
	}
	r := p.makeNode(v, e)
	p.mulCache[key] = r
	return Edge{P: r.P, W: p.cnum(r.W * w)}
}

// Add computes the entrywise sum of two diagrams.
func (p *Package) Add(x, y Edge) Edge {
	return p.add(x, y)
}

func (p *Package) add(x, y Edge) Edge {
	if x.W == 0 {
		return y
	}
	if y.W == 0 {
		return x
	}
	if x.P == p.terminal && y.P == p.terminal {
		return Edge{P: p.terminal, W: p.cnum(x.W + y.W)}
	}

	// Factor out the left weight so cache entries are independent of
	// a common scale.
	wr := p.cnum(y.W / x.W)
	key := addKey{x: x.P, y: y.P, w: wr}
	if r, ok := p.addCache[key]; ok {
		return Edge{P: r.P, W: p.cnum(r.W * x.W)}
	}

	v := p.topVar(x, y)
	xs := Edge{P: x.P, W: 1}
	ys := Edge{P: y.P, W: wr}

	var e [4]Edge
	for i := range e {
		e[i] = p.add(p.child(xs, i, v), p.child(ys, i, v))
	}
	r := p.makeNode(v, e)
	p.addCache[key] = r
	return Edge{P: r.P, W: p.cnum(r.W * x.W)}
}

// Entry returns the element (i, j) of the matrix represented by the
// edge, translating variable indices to bit positions through the
// argument permutations. For state vectors pass j = 0 and the same
// permutation on both sides.
func (p *Package) Entry(e Edge, i, j uint64, inPerm, outPerm map[int]int) complex128 {
	c := complex128(1)
	for !p.IsTerminal(e) {
		c *= e.W
		row := (i >> uint(outPerm[e.P.V])) & 1
		col := (j >> uint(inPerm[e.P.V])) & 1
		e = e.P.E[2*row+col]
	}
	return c * e.W
}
