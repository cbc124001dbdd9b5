//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

// Package dd implements a reference-counted decision-diagram engine
// for quantum functionality and state representation. Unitary
// matrices and state vectors are stored as shared, hash-consed graphs
// of nodes with complex edge weights. Lifetime of the shared
// structure is managed exclusively through IncRef, DecRef, and
// GarbageCollect.
package dd

import (
	"fmt"
)

// MaxQubits bounds the total number of qubits the engine supports.
const MaxQubits = 128

// Tolerance is the numeric tolerance for equality of complex
// amplitudes.
const Tolerance = 1e-13

// Line buffer statuses for gate construction. The line buffer maps
// each physical line to its role in the operation being converted.
const (
	LineDefault    int8 = -1
	LineControlNeg int8 = 0
	LineControlPos int8 = 1
	LineTarget     int8 = 2
)

// Edge references a node with a complex weight. Copying an Edge does
// not transfer ownership; callers register ownership with
// Package.IncRef.
type Edge struct {
	P *Node
	W complex128
}

// Node is a decision-diagram vertex for the variable V. The four
// outgoing edges are indexed row-major: E[2*row+col]. State vectors
// use only E[0] and E[2]. Terminal nodes have V == -1.
type Node struct {
	V   int
	E   [4]Edge
	Ref uint32

	next *Node // free list
}

func (e Edge) String() string {
	if e.P == nil {
		return fmt.Sprintf("{nil %v}", e.W)
	}
	if e.P.V < 0 {
		return fmt.Sprintf("{terminal %v}", e.W)
	}
	return fmt.Sprintf("{q%d %v}", e.P.V, e.W)
}
