//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"github.com/quantum-eda/qfr/dd"
	"github.com/quantum-eda/qfr/utils"
)

var noPoint utils.Point

// Register is a named index range in the qubit or classical bit
// space.
type Register struct {
	Start int
	Count int
}

// RegisterMap maps register names to their ranges. Ranges within one
// map are disjoint.
type RegisterMap map[string]Register

// Permutation maps logical qubit indices to the diagram engine's
// physical line ordering. It is a bijection on [0, nqubits) at every
// observation point.
type Permutation map[int]int

// Apply returns the physical line of the logical index. Unmapped
// indices map to themselves.
func (p Permutation) Apply(i int) int {
	v, ok := p[i]
	if !ok {
		return i
	}
	return v
}

// IsBijection tests that the permutation is a total bijection on
// [0, n).
func (p Permutation) IsBijection(n int) bool {
	if len(p) != n {
		return false
	}
	seen := make(map[int]bool)
	for k, v := range p {
		if k < 0 || k >= n || v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Circuit is the top-level aggregate: register maps, input and
// output permutations, and the ordered operation sequence. It is
// created empty, populated by one import pass or direct appends, and
// consumed read-only by the functionality and simulation builders.
type Circuit struct {
	Name string

	nqubits     int
	nclassics   int
	qregs       RegisterMap
	cregs       RegisterMap
	inputPerm   Permutation
	outputPerm  Permutation
	ops         []Operation
	maxControls int

	params *utils.Params
	logger *utils.Logger
}

// New creates a new empty circuit. A nil params argument selects the
// default parameters.
func New(params *utils.Params) *Circuit {
	if params == nil {
		params = utils.NewParams()
	}
	return &Circuit{
		qregs:      make(RegisterMap),
		cregs:      make(RegisterMap),
		inputPerm:  make(Permutation),
		outputPerm: make(Permutation),
		params:     params,
		logger:     utils.NewLogger(params.Diag),
	}
}

// Nqubits returns the circuit qubit count.
func (c *Circuit) Nqubits() int {
	return c.nqubits
}

// Nclassics returns the circuit classical bit count.
func (c *Circuit) Nclassics() int {
	return c.nclassics
}

// Operations returns the operation sequence.
func (c *Circuit) Operations() []Operation {
	return c.ops
}

// MaxControls returns the running maximum control count over all
// accepted operations. Exporters size ancilla requirements from it.
func (c *Circuit) MaxControls() int {
	return c.maxControls
}

// QuantumRegisters returns the quantum register map.
func (c *Circuit) QuantumRegisters() RegisterMap {
	return c.qregs
}

// ClassicalRegisters returns the classical register map.
func (c *Circuit) ClassicalRegisters() RegisterMap {
	return c.cregs
}

// InputPermutation returns the input logical-to-physical mapping.
func (c *Circuit) InputPermutation() Permutation {
	return c.inputPerm
}

// OutputPermutation returns the output logical-to-physical mapping.
func (c *Circuit) OutputPermutation() Permutation {
	return c.outputPerm
}

// Params returns the circuit parameters.
func (c *Circuit) Params() *utils.Params {
	return c.params
}

// Append validates and appends an operation to the sequence. Every
// referenced qubit index must be below the current qubit count.
func (c *Circuit) Append(op Operation) error {
	for _, t := range op.Targets() {
		if t < 0 || t >= c.nqubits {
			return errf(LookupError, noPoint, "",
				"target qubit %d outside circuit of %d qubits", t, c.nqubits)
		}
	}
	for _, ctrl := range op.Controls() {
		if ctrl.Qubit < 0 || ctrl.Qubit >= c.nqubits {
			return errf(LookupError, noPoint, "",
				"control qubit %d outside circuit of %d qubits",
				ctrl.Qubit, c.nqubits)
		}
	}
	c.updateMaxControls(len(op.Controls()))
	c.ops = append(c.ops, op)
	return nil
}

func (c *Circuit) updateMaxControls(n int) {
	if n > c.maxControls {
		c.maxControls = n
	}
}

// AddQubitRegister grows the qubit space by count qubits under the
// argument register name. A name that already exists is extended in
// place only if it is the trailing register; otherwise the growth
// fails. New indices receive identity permutation entries and every
// operation's qubit-count view is rescaled.
func (c *Circuit) AddQubitRegister(name string, count int) error {
	if c.nqubits+count > dd.MaxQubits {
		return errf(CapacityError, noPoint, name,
			"%d qubits exceed the engine limit of %d",
			c.nqubits+count, dd.MaxQubits)
	}
	if reg, ok := c.qregs[name]; ok {
		if reg.Start+reg.Count != c.nqubits {
			return errf(StructuralError, noPoint, name,
				"only the trailing register can be augmented")
		}
		reg.Count += count
		c.qregs[name] = reg
	} else {
		c.qregs[name] = Register{Start: c.nqubits, Count: count}
	}

	for i := 0; i < count; i++ {
		j := c.nqubits + i
		c.inputPerm[j] = j
		c.outputPerm[j] = j
	}
	c.nqubits += count
	c.setNqubits(c.nqubits)
	return nil
}

// AddClassicalRegister grows the classical bit space by count bits
// under the argument register name. Reusing an existing name is not
// permitted.
func (c *Circuit) AddClassicalRegister(name string, count int) error {
	if _, ok := c.cregs[name]; ok {
		return errf(StructuralError, noPoint, name,
			"classical register already declared")
	}
	c.cregs[name] = Register{Start: c.nclassics, Count: count}
	c.nclassics += count
	return nil
}

// QuantumRegister looks up a quantum register range by name.
func (c *Circuit) QuantumRegister(name string) (Register, bool) {
	reg, ok := c.qregs[name]
	return reg, ok
}

// ClassicalRegister looks up a classical register range by name.
func (c *Circuit) ClassicalRegister(name string) (Register, bool) {
	reg, ok := c.cregs[name]
	return reg, ok
}

// IsIdleQubit tests if no operation in the sequence references the
// qubit.
func (c *Circuit) IsIdleQubit(q int) bool {
	for _, op := range c.ops {
		if op.ActsOn(q) {
			return false
		}
	}
	return true
}

// StripTrailingIdleQubits removes idle qubits from the top of the
// index range, shrinking or removing their owning registers and
// rescaling every operation's qubit-count view. It is idempotent
// once no trailing idle qubit remains.
func (c *Circuit) StripTrailingIdleQubits() error {
	for i := c.nqubits - 1; i >= 0; i-- {
		if !c.IsIdleQubit(i) {
			break
		}
		delete(c.inputPerm, i)
		delete(c.outputPerm, i)
		c.nqubits--

		name, err := c.QubitRegister(i)
		if err != nil {
			return err
		}
		reg := c.qregs[name]
		if reg.Count == 1 {
			delete(c.qregs, name)
		} else {
			reg.Count--
			c.qregs[name] = reg
		}
	}
	c.setNqubits(c.nqubits)
	return nil
}

// QubitRegister maps a qubit index back to its owning register name.
// An uncovered index indicates an internal inconsistency.
func (c *Circuit) QubitRegister(q int) (string, error) {
	for name, reg := range c.qregs {
		if q >= reg.Start && q < reg.Start+reg.Count {
			return name, nil
		}
	}
	return "", errf(LookupError, noPoint, "",
		"qubit index %d not covered by any register", q)
}

// QubitRegisterAndIndex maps a qubit index to its owning register
// name and the offset within the register.
func (c *Circuit) QubitRegisterAndIndex(q int) (string, int, error) {
	name, err := c.QubitRegister(q)
	if err != nil {
		return "", 0, err
	}
	return name, q - c.qregs[name].Start, nil
}

// NIndividualOps sums per-operation target counts. The metric is
// known-approximate for multi-target operations.
func (c *Circuit) NIndividualOps() int {
	var n int
	for _, op := range c.ops {
		n += len(op.Targets())
	}
	return n
}

func (c *Circuit) setNqubits(n int) {
	for _, op := range c.ops {
		op.SetNqubits(n)
	}
}
