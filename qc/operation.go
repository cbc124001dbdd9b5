//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

// Package qc implements the quantum circuit intermediate
// representation: register allocation, the typed operation sequence,
// the Real-format importer, and the functionality and simulation
// builders driving a decision-diagram engine.
package qc

import (
	"fmt"

	"github.com/quantum-eda/qfr/dd"
)

// Gate specifies a standard gate kind.
type Gate int

// Gate kinds.
const (
	None Gate = iota
	I
	H
	X
	Y
	Z
	S
	Sdag
	T
	Tdag
	V
	Vdag
	U3
	U2
	U1
	RX
	RY
	RZ
	SWAP
	P
	Pdag
)

func (g Gate) String() string {
	switch g {
	case None:
		return "none"
	case I:
		return "i"
	case H:
		return "h"
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	case S:
		return "s"
	case Sdag:
		return "sdg"
	case T:
		return "t"
	case Tdag:
		return "tdg"
	case V:
		return "v"
	case Vdag:
		return "vdg"
	case U3:
		return "u3"
	case U2:
		return "u2"
	case U1:
		return "u1"
	case RX:
		return "rx"
	case RY:
		return "ry"
	case RZ:
		return "rz"
	case SWAP:
		return "swap"
	case P:
		return "p"
	case Pdag:
		return "pdg"
	default:
		return fmt.Sprintf("{Gate %d}", int(g))
	}
}

// Control specifies a control qubit. A negative control requires the
// |0> state for the target to be acted upon.
type Control struct {
	Qubit    int
	Negative bool
}

func (c Control) String() string {
	if c.Negative {
		return fmt.Sprintf("-q%d", c.Qubit)
	}
	return fmt.Sprintf("q%d", c.Qubit)
}

// Operation is one entry of a circuit's operation sequence. The
// variant set is closed: StandardOperation, NonUnitaryOperation, and
// ClassicControlledOperation.
type Operation interface {
	// Nqubits returns the operation's view of the circuit qubit
	// count.
	Nqubits() int

	// SetNqubits rescales the operation's qubit count view after
	// register growth or shrinkage.
	SetNqubits(n int)

	// Targets returns the target qubit indices.
	Targets() []int

	// Controls returns the control qubits.
	Controls() []Control

	// ActsOn tests if the operation references the qubit as target
	// or control.
	ActsOn(q int) bool

	// IsUnitary tests if the operation is unitary.
	IsUnitary() bool

	// DD obtains the operation's diagram representation against the
	// output permutation. The line buffer translates logical qubit
	// indices to the engine's physical line ordering.
	DD(e Engine, line []int8, perm Permutation, execSwaps bool) (dd.Edge, error)

	String() string
}
