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

// ClassicControlledOperation wraps an operation with a classical
// register equality condition: the wrapped operation applies only
// when the classical bit range holds the expected value.
type ClassicControlledOperation struct {
	op       Operation
	creg     Register
	expected uint64
}

// NewClassicControlledOperation creates a classically-controlled
// operation.
func NewClassicControlledOperation(op Operation, creg Register,
	expected uint64) *ClassicControlledOperation {

	return &ClassicControlledOperation{
		op:       op,
		creg:     creg,
		expected: expected,
	}
}

// Operation returns the wrapped operation.
func (op *ClassicControlledOperation) Operation() Operation {
	return op.op
}

// Condition returns the classical register range and the expected
// value.
func (op *ClassicControlledOperation) Condition() (Register, uint64) {
	return op.creg, op.expected
}

// Nqubits returns the operation's view of the circuit qubit count.
func (op *ClassicControlledOperation) Nqubits() int {
	return op.op.Nqubits()
}

// SetNqubits rescales the operation's qubit count view.
func (op *ClassicControlledOperation) SetNqubits(n int) {
	op.op.SetNqubits(n)
}

// Targets returns the wrapped operation's targets.
func (op *ClassicControlledOperation) Targets() []int {
	return op.op.Targets()
}

// Controls returns the wrapped operation's controls.
func (op *ClassicControlledOperation) Controls() []Control {
	return op.op.Controls()
}

// ActsOn tests if the wrapped operation references the qubit.
func (op *ClassicControlledOperation) ActsOn(q int) bool {
	return op.op.ActsOn(q)
}

// IsUnitary tests if the operation is unitary. A classically
// controlled operation is not: its effect depends on a measurement
// outcome.
func (op *ClassicControlledOperation) IsUnitary() bool {
	return false
}

func (op *ClassicControlledOperation) String() string {
	return fmt.Sprintf("if c[%d:%d]==%d %s", op.creg.Start,
		op.creg.Start+op.creg.Count, op.expected, op.op)
}

// DD fails: classically-controlled operations are illegal in the
// functionality and simulation paths.
func (op *ClassicControlledOperation) DD(e Engine, line []int8,
	perm Permutation, execSwaps bool) (dd.Edge, error) {

	return dd.Edge{}, errf(SemanticError, noPoint, "if",
		"classically-controlled operation has no diagram representation")
}
