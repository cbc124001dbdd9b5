//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantum-eda/qfr/dd"
	"github.com/quantum-eda/qfr/utils"
)

// stubEngine counts reference protocol events without building real
// diagrams. Distinct edges are distinguished by their weight.
type stubEngine struct {
	next       int
	refs       map[complex128]int
	incs, decs int
	multiplies int
	gcs        int
	normalizes []bool
	violations int
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		refs: make(map[complex128]int),
	}
}

func (s *stubEngine) edge() dd.Edge {
	s.next++
	return dd.Edge{W: complex(float64(s.next), 0)}
}

func (s *stubEngine) MakeIdent(lo, hi int) dd.Edge {
	return s.edge()
}

func (s *stubEngine) MakeGateDD(mat [4]complex128, nqubits int,
	line []int8) dd.Edge {
	return s.edge()
}

func (s *stubEngine) Multiply(x, y dd.Edge) dd.Edge {
	s.multiplies++
	return s.edge()
}

func (s *stubEngine) IncRef(e dd.Edge) {
	s.incs++
	s.refs[e.W]++
}

func (s *stubEngine) DecRef(e dd.Edge) {
	s.decs++
	s.refs[e.W]--
	if s.refs[e.W] < 0 {
		s.violations++
	}
}

func (s *stubEngine) GarbageCollect() {
	s.gcs++
}

func (s *stubEngine) UseMatrixNormalization(on bool) {
	s.normalizes = append(s.normalizes, on)
}

func (s *stubEngine) IsTerminal(e dd.Edge) bool {
	return false
}

func (s *stubEngine) Entry(e dd.Edge, i, j uint64,
	inPerm, outPerm map[int]int) complex128 {
	return 0
}

func xCircuit(t *testing.T, params *utils.Params, nops int) *Circuit {
	t.Helper()
	c := New(params)
	require.NoError(t, c.AddQubitRegister("q", 2))
	for i := 0; i < nops; i++ {
		require.NoError(t, c.Append(NewStandardOperation(2, nil, i%2, X)))
	}
	return c
}

func TestFoldReferenceProtocol(t *testing.T) {
	c := xCircuit(t, nil, 3)
	s := newStubEngine()

	e, err := c.BuildFunctionality(s)
	require.NoError(t, err)

	// A reference is registered on every intermediate product before
	// the previous edge is released; negative counts would mean a
	// release raced ahead of its registration.
	require.Zero(t, s.violations)
	require.Equal(t, s.decs+1, s.incs)
	require.Equal(t, 3, s.multiplies)
	require.Equal(t, 1, s.refs[e.W], "result edge is not owned")
	for w, n := range s.refs {
		if w != e.W {
			require.Zero(t, n, "intermediate edge %v still owned", w)
		}
	}
}

func TestFoldEmptySequence(t *testing.T) {
	c := xCircuit(t, nil, 0)
	s := newStubEngine()

	e, err := c.BuildFunctionality(s)
	require.NoError(t, err)
	require.Zero(t, s.multiplies)
	require.Equal(t, 1, s.incs)
	require.Zero(t, s.decs)
	require.Equal(t, 1, s.refs[e.W])
}

func TestFoldNonUnitary(t *testing.T) {
	c := xCircuit(t, nil, 1)
	require.NoError(t, c.Append(NewMeasurement(2, []int{0}, []int{0})))

	s := newStubEngine()
	_, err := c.BuildFunctionality(s)
	requireKind(t, err, SemanticError)

	// The accumulated edge is released on the error path.
	require.Equal(t, s.incs, s.decs)
	require.Zero(t, s.violations)
}

func TestFoldGCInterval(t *testing.T) {
	params := utils.NewParams()
	params.GCInterval = 2
	c := xCircuit(t, params, 5)

	s := newStubEngine()
	_, err := c.BuildFunctionality(s)
	require.NoError(t, err)
	require.Equal(t, 2, s.gcs)

	c = xCircuit(t, nil, 5)
	s = newStubEngine()
	_, err = c.BuildFunctionality(s)
	require.NoError(t, err)
	require.Equal(t, 5, s.gcs)
}

func TestMatrixNormalizationScope(t *testing.T) {
	c := xCircuit(t, nil, 1)
	s := newStubEngine()

	_, err := c.BuildFunctionality(s)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, s.normalizes)

	s = newStubEngine()
	_, err = c.Simulate(s.edge(), s)
	require.NoError(t, err)
	require.Empty(t, s.normalizes)
}

func TestExecuteSwapsRelabels(t *testing.T) {
	params := utils.NewParams()
	params.ExecuteSwaps = true
	c := New(params)
	require.NoError(t, c.AddQubitRegister("q", 2))
	require.NoError(t, c.Append(NewTwoTargetOperation(2, nil, 0, 1, SWAP)))

	s := newStubEngine()
	_, err := c.BuildFunctionality(s)
	require.NoError(t, err)
	require.Equal(t, Permutation{0: 1, 1: 0}, c.OutputPermutation())
}

// Integration tests against the real diagram engine.

func TestBuildToffoliFunctionality(t *testing.T) {
	c := parseReal(t, toffoliReal)
	p := dd.New()

	e, err := c.BuildFunctionality(p)
	require.NoError(t, err)
	require.False(t, p.IsTerminal(e))

	near := func(i, j uint64, want complex128) {
		got := c.Entry(p, e, i, j)
		require.InDelta(t, 0, cmplx.Abs(got-want), 1e-9,
			"entry (%d, %d) = %v, expected %v", i, j, got, want)
	}
	// Input |011> (both controls set) maps to |111>.
	near(7, 3, 1)
	near(3, 7, 1)
	near(3, 3, 0)
	near(0, 0, 1)
	near(5, 5, 1)
}

func TestSimulateHadamard(t *testing.T) {
	c := parseReal(t, ".numvars 1\n.variables a\n.begin\nh1 a\n.end\n")
	p := dd.New()

	e, err := c.Simulate(p.MakeZeroState(1), p)
	require.NoError(t, err)

	s := complex(1/math.Sqrt2, 0)
	for i := uint64(0); i < 2; i++ {
		got := c.Entry(p, e, i, 0)
		require.InDelta(t, 0, cmplx.Abs(got-s), 1e-9, "amplitude %d", i)
	}
}

func TestSwapFunctionality(t *testing.T) {
	src := ".numvars 2\n.variables a b\n.begin\nf2 a b\n.end\n"

	for _, execSwaps := range []bool{false, true} {
		params := utils.NewParams()
		params.ExecuteSwaps = execSwaps

		c := New(params)
		require.NoError(t,
			c.Import(strings.NewReader(src), FormatReal, "swap.real"))

		p := dd.New()
		e, err := c.BuildFunctionality(p)
		require.NoError(t, err)

		// |01> maps to |10> whether the swap is multiplied in or
		// realized as a relabeling.
		for _, test := range []struct {
			i, j uint64
			want complex128
		}{
			{2, 1, 1},
			{1, 2, 1},
			{0, 0, 1},
			{3, 3, 1},
			{1, 1, 0},
		} {
			got := c.Entry(p, e, test.i, test.j)
			require.InDelta(t, 0, cmplx.Abs(got-test.want), 1e-9,
				"execSwaps=%v entry (%d, %d)", execSwaps, test.i, test.j)
		}
	}
}

func TestBuildReleasesIntermediates(t *testing.T) {
	c := parseReal(t, toffoliReal)
	p := dd.New()
	p.GCLimit = 0

	e, err := c.BuildFunctionality(p)
	require.NoError(t, err)

	active := p.ActiveNodes()
	require.Greater(t, active, 0)

	p.DecRef(e)
	p.GarbageCollect()
	require.Zero(t, p.ActiveNodes())
}
