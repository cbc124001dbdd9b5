//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"github.com/quantum-eda/qfr/dd"
)

// Engine is the decision-diagram engine contract the builders depend
// on. The engine owns amplitude arithmetic, node identity, and its
// tolerance for numeric equality; *dd.Package implements it. A single
// engine instance must not be shared by concurrent builders.
type Engine interface {
	// MakeIdent returns the identity diagram over [lo, hi].
	MakeIdent(lo, hi int) dd.Edge

	// MakeGateDD builds a single-target gate diagram from a 2x2
	// matrix and the line buffer roles.
	MakeGateDD(mat [4]complex128, nqubits int, line []int8) dd.Edge

	// Multiply computes the product of two diagrams.
	Multiply(x, y dd.Edge) dd.Edge

	// IncRef registers an owning reference on the edge.
	IncRef(e dd.Edge)

	// DecRef releases an owning reference on the edge.
	DecRef(e dd.Edge)

	// GarbageCollect reclaims unreferenced diagram nodes.
	GarbageCollect()

	// UseMatrixNormalization selects matrix canonicalization for
	// multiplication results.
	UseMatrixNormalization(on bool)

	// IsTerminal tests if the edge points to the terminal node.
	IsTerminal(e dd.Edge) bool

	// Entry returns the matrix element (i, j) of the edge under the
	// argument index permutations.
	Entry(e dd.Edge, i, j uint64, inPerm, outPerm map[int]int) complex128
}

// BuildFunctionality folds the operation sequence into a single
// diagram edge representing the circuit's unitary functionality. The
// engine runs in matrix normalization mode for the duration of the
// build. The returned edge carries one owning reference.
func (c *Circuit) BuildFunctionality(e Engine) (dd.Edge, error) {
	e.UseMatrixNormalization(true)
	defer e.UseMatrixNormalization(false)

	return c.fold(e, e.MakeIdent(0, c.nqubits-1))
}

// Simulate folds the operation sequence onto the caller-supplied
// input state edge. The returned edge carries one owning reference.
func (c *Circuit) Simulate(in dd.Edge, e Engine) (dd.Edge, error) {
	return c.fold(e, in)
}

// fold multiplies each operation's diagram into the accumulated edge
// in sequence order. The new product's reference is registered
// strictly before the previous edge's reference is released;
// releasing first would let garbage collection reclaim a subgraph
// still shared by the product.
func (c *Circuit) fold(eng Engine, seed dd.Edge) (dd.Edge, error) {
	line := make([]int8, dd.MaxQubits)
	for i := range line {
		line[i] = dd.LineDefault
	}

	interval := c.params.GCInterval
	if interval < 1 {
		interval = 1
	}

	edge := seed
	eng.IncRef(edge)

	for i, op := range c.ops {
		if !op.IsUnitary() {
			eng.DecRef(edge)
			return dd.Edge{}, errf(SemanticError, noPoint, op.String(),
				"functionality is not unitary")
		}

		opDD, err := op.DD(eng, line, c.outputPerm, c.params.ExecuteSwaps)
		if err != nil {
			eng.DecRef(edge)
			return dd.Edge{}, err
		}

		tmp := eng.Multiply(opDD, edge)
		eng.IncRef(tmp)
		eng.DecRef(edge)
		edge = tmp

		if (i+1)%interval == 0 {
			eng.GarbageCollect()
		}
	}
	return edge, nil
}

// Entry returns the element (i, j) of a built functionality edge,
// translating indices through the circuit's permutations.
func (c *Circuit) Entry(eng Engine, e dd.Edge, i, j uint64) complex128 {
	return eng.Entry(e, i, j, c.inputPerm, c.outputPerm)
}
