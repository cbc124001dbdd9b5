//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"fmt"
	"math"
	"strings"

	"github.com/quantum-eda/qfr/dd"
)

// StandardOperation is a unitary gate application: a gate kind, zero
// or more controls, one or two targets, and up to three real
// parameters.
type StandardOperation struct {
	nqubits  int
	gate     Gate
	controls []Control
	targets  []int

	// Parameters in the order lambda, phi, theta.
	Lambda float64
	Phi    float64
	Theta  float64
}

// NewStandardOperation creates a single-target gate operation. The
// optional parameters are lambda, phi, and theta, in that order.
func NewStandardOperation(nqubits int, controls []Control, target int,
	gate Gate, params ...float64) *StandardOperation {

	op := &StandardOperation{
		nqubits:  nqubits,
		gate:     gate,
		controls: controls,
		targets:  []int{target},
	}
	if len(params) > 0 {
		op.Lambda = params[0]
	}
	if len(params) > 1 {
		op.Phi = params[1]
	}
	if len(params) > 2 {
		op.Theta = params[2]
	}
	return op
}

// NewTwoTargetOperation creates a SWAP-family gate operation acting
// on two targets.
func NewTwoTargetOperation(nqubits int, controls []Control,
	target0, target1 int, gate Gate) *StandardOperation {

	return &StandardOperation{
		nqubits:  nqubits,
		gate:     gate,
		controls: controls,
		targets:  []int{target0, target1},
	}
}

// Gate returns the operation's gate kind.
func (op *StandardOperation) Gate() Gate {
	return op.gate
}

// Nqubits returns the operation's view of the circuit qubit count.
func (op *StandardOperation) Nqubits() int {
	return op.nqubits
}

// SetNqubits rescales the operation's qubit count view.
func (op *StandardOperation) SetNqubits(n int) {
	op.nqubits = n
}

// Targets returns the target qubit indices.
func (op *StandardOperation) Targets() []int {
	return op.targets
}

// Controls returns the control qubits.
func (op *StandardOperation) Controls() []Control {
	return op.controls
}

// ActsOn tests if the operation references the qubit.
func (op *StandardOperation) ActsOn(q int) bool {
	for _, t := range op.targets {
		if t == q {
			return true
		}
	}
	for _, c := range op.controls {
		if c.Qubit == q {
			return true
		}
	}
	return false
}

// IsUnitary tests if the operation is unitary.
func (op *StandardOperation) IsUnitary() bool {
	return true
}

func (op *StandardOperation) String() string {
	var sb strings.Builder
	sb.WriteString(op.gate.String())
	for _, c := range op.controls {
		sb.WriteString(" ")
		sb.WriteString(c.String())
	}
	for _, t := range op.targets {
		fmt.Fprintf(&sb, " q%d", t)
	}
	if op.Lambda != 0 || op.Phi != 0 || op.Theta != 0 {
		fmt.Fprintf(&sb, " (%g,%g,%g)", op.Lambda, op.Phi, op.Theta)
	}
	return sb.String()
}

// DD obtains the operation's diagram representation against the
// output permutation.
func (op *StandardOperation) DD(e Engine, line []int8, perm Permutation,
	execSwaps bool) (dd.Edge, error) {

	switch op.gate {
	case SWAP:
		t0, t1 := op.targets[0], op.targets[1]
		if execSwaps && len(op.controls) == 0 {
			// Realize the swap as a line relabeling.
			perm[t0], perm[t1] = perm[t1], perm[t0]
			return e.MakeIdent(0, op.nqubits-1), nil
		}
		// swap(a,b) = cx(a,b) cx(b,a) cx(a,b); controls attach to
		// the middle gate only.
		outer := op.gateEdge(e, line, perm, X, nil,
			[]Control{{Qubit: t0}}, t1)
		mid := op.gateEdge(e, line, perm, X, op.controls,
			[]Control{{Qubit: t1}}, t0)
		return e.Multiply(outer, e.Multiply(mid, outer)), nil

	case P, Pdag:
		// peres(c; a, b): toffoli on the first target followed by
		// cnot on the second.
		t0, t1 := op.targets[0], op.targets[1]
		tof := op.gateEdge(e, line, perm, X, op.controls,
			[]Control{{Qubit: t1}}, t0)
		cx := op.gateEdge(e, line, perm, X, op.controls, nil, t1)
		if op.gate == P {
			return e.Multiply(cx, tof), nil
		}
		return e.Multiply(tof, cx), nil

	default:
		mat, err := gateMatrix(op.gate, op.Lambda, op.Phi, op.Theta)
		if err != nil {
			return dd.Edge{}, err
		}
		setLine(line, perm, op.targets[0], op.controls, nil)
		edge := e.MakeGateDD(mat, op.nqubits, line)
		resetLine(line, perm, op.targets[0], op.controls, nil)
		return edge, nil
	}
}

// gateEdge builds a single-target X-family helper gate with extra
// controls merged in.
func (op *StandardOperation) gateEdge(e Engine, line []int8,
	perm Permutation, g Gate, controls, extra []Control, target int) dd.Edge {

	mat, _ := gateMatrix(g, 0, 0, 0)
	setLine(line, perm, target, controls, extra)
	edge := e.MakeGateDD(mat, op.nqubits, line)
	resetLine(line, perm, target, controls, extra)
	return edge
}

func setLine(line []int8, perm Permutation, target int,
	controls, extra []Control) {

	line[perm.Apply(target)] = dd.LineTarget
	for _, c := range controls {
		if c.Negative {
			line[perm.Apply(c.Qubit)] = dd.LineControlNeg
		} else {
			line[perm.Apply(c.Qubit)] = dd.LineControlPos
		}
	}
	for _, c := range extra {
		if c.Negative {
			line[perm.Apply(c.Qubit)] = dd.LineControlNeg
		} else {
			line[perm.Apply(c.Qubit)] = dd.LineControlPos
		}
	}
}

func resetLine(line []int8, perm Permutation, target int,
	controls, extra []Control) {

	line[perm.Apply(target)] = dd.LineDefault
	for _, c := range controls {
		line[perm.Apply(c.Qubit)] = dd.LineDefault
	}
	for _, c := range extra {
		line[perm.Apply(c.Qubit)] = dd.LineDefault
	}
}

// gateMatrix returns the 2x2 matrix of a single-target gate kind,
// row-major.
func gateMatrix(g Gate, lambda, phi, theta float64) ([4]complex128, error) {
	s := complex(1/math.Sqrt2, 0)

	switch g {
	case I:
		return [4]complex128{1, 0, 0, 1}, nil
	case H:
		return [4]complex128{s, s, s, -s}, nil
	case X:
		return [4]complex128{0, 1, 1, 0}, nil
	case Y:
		return [4]complex128{0, -1i, 1i, 0}, nil
	case Z:
		return [4]complex128{1, 0, 0, -1}, nil
	case S:
		return [4]complex128{1, 0, 0, 1i}, nil
	case Sdag:
		return [4]complex128{1, 0, 0, -1i}, nil
	case T:
		return [4]complex128{1, 0, 0, phase(math.Pi / 4)}, nil
	case Tdag:
		return [4]complex128{1, 0, 0, phase(-math.Pi / 4)}, nil
	case V:
		return [4]complex128{
			complex(0.5, 0.5), complex(0.5, -0.5),
			complex(0.5, -0.5), complex(0.5, 0.5),
		}, nil
	case Vdag:
		return [4]complex128{
			complex(0.5, -0.5), complex(0.5, 0.5),
			complex(0.5, 0.5), complex(0.5, -0.5),
		}, nil
	case RX:
		c := complex(math.Cos(lambda/2), 0)
		is := complex(0, -math.Sin(lambda/2))
		return [4]complex128{c, is, is, c}, nil
	case RY:
		c := complex(math.Cos(lambda/2), 0)
		sn := complex(math.Sin(lambda/2), 0)
		return [4]complex128{c, -sn, sn, c}, nil
	case RZ, U1:
		return [4]complex128{1, 0, 0, phase(lambda)}, nil
	case U2:
		return [4]complex128{
			s, -s * phase(lambda),
			s * phase(phi), s * phase(lambda+phi),
		}, nil
	case U3:
		c := complex(math.Cos(theta/2), 0)
		sn := complex(math.Sin(theta/2), 0)
		return [4]complex128{
			c, -sn * phase(lambda),
			sn * phase(phi), c * phase(lambda+phi),
		}, nil
	default:
		return [4]complex128{}, errf(SemanticError, noPoint, g.String(),
			"gate kind has no single-target matrix")
	}
}

func phase(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}
