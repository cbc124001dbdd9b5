//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"fmt"

	"github.com/quantum-eda/qfr/dd"
)

// NonUnitaryKind classifies non-unitary operations.
type NonUnitaryKind int

// Non-unitary operation kinds.
const (
	Measure NonUnitaryKind = iota
	Barrier
	Snapshot
	ShowProbabilities
)

func (k NonUnitaryKind) String() string {
	switch k {
	case Measure:
		return "measure"
	case Barrier:
		return "barrier"
	case Snapshot:
		return "snapshot"
	case ShowProbabilities:
		return "show-probabilities"
	default:
		return fmt.Sprintf("{NonUnitaryKind %d}", int(k))
	}
}

// NonUnitaryOperation is a measurement, a barrier over a qubit set, a
// labeled snapshot marker, or a probability-report marker.
type NonUnitaryOperation struct {
	nqubits int
	kind    NonUnitaryKind
	qubits  []int
	cbits   []int
	label   int
}

// NewMeasurement creates a measurement of the argument qubits into
// the argument classical bits.
func NewMeasurement(nqubits int, qubits, cbits []int) *NonUnitaryOperation {
	return &NonUnitaryOperation{
		nqubits: nqubits,
		kind:    Measure,
		qubits:  qubits,
		cbits:   cbits,
	}
}

// NewBarrier creates a barrier over the argument qubits.
func NewBarrier(nqubits int, qubits []int) *NonUnitaryOperation {
	return &NonUnitaryOperation{
		nqubits: nqubits,
		kind:    Barrier,
		qubits:  qubits,
	}
}

// NewSnapshot creates a labeled diagram capture marker.
func NewSnapshot(nqubits int, qubits []int, label int) *NonUnitaryOperation {
	return &NonUnitaryOperation{
		nqubits: nqubits,
		kind:    Snapshot,
		qubits:  qubits,
		label:   label,
	}
}

// NewShowProbabilities creates a probability-report marker.
func NewShowProbabilities(nqubits int) *NonUnitaryOperation {
	return &NonUnitaryOperation{
		nqubits: nqubits,
		kind:    ShowProbabilities,
	}
}

// Kind returns the non-unitary operation kind.
func (op *NonUnitaryOperation) Kind() NonUnitaryKind {
	return op.kind
}

// Label returns the snapshot label.
func (op *NonUnitaryOperation) Label() int {
	return op.label
}

// Cbits returns the classical bit indices of a measurement.
func (op *NonUnitaryOperation) Cbits() []int {
	return op.cbits
}

// Nqubits returns the operation's view of the circuit qubit count.
func (op *NonUnitaryOperation) Nqubits() int {
	return op.nqubits
}

// SetNqubits rescales the operation's qubit count view.
func (op *NonUnitaryOperation) SetNqubits(n int) {
	op.nqubits = n
}

// Targets returns the qubits the operation acts on.
func (op *NonUnitaryOperation) Targets() []int {
	return op.qubits
}

// Controls returns nil: non-unitary operations have no controls.
func (op *NonUnitaryOperation) Controls() []Control {
	return nil
}

// ActsOn tests if the operation references the qubit.
func (op *NonUnitaryOperation) ActsOn(q int) bool {
	for _, t := range op.qubits {
		if t == q {
			return true
		}
	}
	return false
}

// IsUnitary tests if the operation is unitary.
func (op *NonUnitaryOperation) IsUnitary() bool {
	return false
}

func (op *NonUnitaryOperation) String() string {
	return fmt.Sprintf("%s %v", op.kind, op.qubits)
}

// DD fails: non-unitary operations have no diagram representation.
func (op *NonUnitaryOperation) DD(e Engine, line []int8, perm Permutation,
	execSwaps bool) (dd.Edge, error) {

	return dd.Edge{}, errf(SemanticError, noPoint, op.kind.String(),
		"non-unitary operation has no diagram representation")
}
