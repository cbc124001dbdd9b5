//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantum-eda/qfr/utils"
)

const toffoliReal = `# 3-bit toffoli
.version 2.0
.numvars 3
.variables a b c
.begin
t3 a b c
.end
`

func parseReal(t *testing.T, src string) *Circuit {
	t.Helper()
	c := New(nil)
	err := c.Import(strings.NewReader(src), FormatReal, "test.real")
	require.NoError(t, err)
	return c
}

func importKind(t *testing.T, src string) ErrorKind {
	t.Helper()
	c := New(nil)
	err := c.Import(strings.NewReader(src), FormatReal, "test.real")
	require.Error(t, err)

	var qerr *Error
	require.True(t, errors.As(err, &qerr), "error %v is untyped", err)
	return qerr.Kind
}

// singleOp imports a one-gate body over two variables a, b and
// returns the resulting operation.
func singleOp(t *testing.T, body string) *StandardOperation {
	t.Helper()
	c := parseReal(t,
		".numvars 2\n.variables a b\n.begin\n"+body+"\n.end\n")
	require.Len(t, c.Operations(), 1)

	op, ok := c.Operations()[0].(*StandardOperation)
	require.True(t, ok)
	return op
}

func TestImportToffoli(t *testing.T) {
	c := parseReal(t, toffoliReal)

	require.Equal(t, 3, c.Nqubits())
	require.Equal(t, 3, c.Nclassics())

	for i, name := range []string{"a", "b", "c"} {
		reg, ok := c.QuantumRegister("v_" + name)
		require.True(t, ok, "register v_%s missing", name)
		require.Equal(t, Register{Start: i, Count: 1}, reg)

		reg, ok = c.ClassicalRegister("c_v_" + name)
		require.True(t, ok, "register c_v_%s missing", name)
		require.Equal(t, Register{Start: i, Count: 1}, reg)
	}
	require.True(t, c.InputPermutation().IsBijection(3))
	require.True(t, c.OutputPermutation().IsBijection(3))

	require.Len(t, c.Operations(), 1)
	op, ok := c.Operations()[0].(*StandardOperation)
	require.True(t, ok)
	require.Equal(t, X, op.Gate())
	require.Equal(t, []Control{{Qubit: 0}, {Qubit: 1}}, op.Controls())
	require.Equal(t, []int{2}, op.Targets())
	require.Equal(t, 2, c.MaxControls())
}

func TestAngleCollapse(t *testing.T) {
	for _, test := range []struct {
		body   string
		gate   Gate
		lambda float64
	}{
		{"z2:1 a b", Z, 0},
		{"z2:-1 a b", Z, 0},
		{"z2:2 a b", S, 0},
		{"z2:-2 a b", Sdag, 0},
		{"z2:4 a b", T, 0},
		{"z2:-4 a b", Tdag, 0},
		{"z2:3 a b", RZ, math.Pi / 3},
		{"z2:4.0001 a b", RZ, math.Pi / 4.0001},
		{"q1:2 b", S, 0},
		{"rx1:2 b", RX, math.Pi / 2},
		{"ry1:4 b", RY, math.Pi / 4},
	} {
		op := singleOp(t, test.body)
		require.Equal(t, test.gate, op.Gate(), "gate of %q", test.body)
		require.InDelta(t, test.lambda, op.Lambda, 1e-12,
			"lambda of %q", test.body)
	}
}

func TestControlForcing(t *testing.T) {
	// v and c always take one control even without an arity suffix.
	op := singleOp(t, "v a b")
	require.Equal(t, V, op.Gate())
	require.Equal(t, []Control{{Qubit: 0}}, op.Controls())
	require.Equal(t, []int{1}, op.Targets())

	op = singleOp(t, "c a b")
	require.Equal(t, X, op.Gate())
	require.Equal(t, []Control{{Qubit: 0}}, op.Controls())
}

func TestTwoTargetGates(t *testing.T) {
	// The last control line becomes the second target.
	op := singleOp(t, "f2 a b")
	require.Equal(t, SWAP, op.Gate())
	require.Empty(t, op.Controls())
	require.Equal(t, []int{1, 0}, op.Targets())

	c := parseReal(t,
		".numvars 3\n.variables a b c\n.begin\np3 a b c\n.end\n")
	require.Len(t, c.Operations(), 1)
	op = c.Operations()[0].(*StandardOperation)
	require.Equal(t, P, op.Gate())
	require.Equal(t, []Control{{Qubit: 0}}, op.Controls())
	require.Equal(t, []int{2, 1}, op.Targets())

	c = parseReal(t,
		".numvars 3\n.variables a b c\n.begin\npi3 a b c\n.end\n")
	op = c.Operations()[0].(*StandardOperation)
	require.Equal(t, Pdag, op.Gate())
}

func TestNegativeControls(t *testing.T) {
	c := parseReal(t,
		".numvars 3\n.variables a b c\n.begin\nt3 -a b c\n.end\n")
	op := c.Operations()[0].(*StandardOperation)
	require.Equal(t, []Control{
		{Qubit: 0, Negative: true},
		{Qubit: 1},
	}, op.Controls())
}

func TestImportErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"header junk", "foo\n", FormatError},
		{"unknown command", ".foo\n.begin\n.end\n", FormatError},
		{"eof in header", ".numvars 2\n", FormatError},
		{"capacity", ".numvars 200\n.begin\n.end\n", CapacityError},
		{"duplicate variable",
			".numvars 2\n.variables a a\n.begin\n.end\n",
			StructuralError},
		{"too many controls",
			".numvars 2\n.variables a b\n.begin\nt3 a b b\n.end\n",
			ArityError},
		{"too few labels",
			".numvars 3\n.variables a b c\n.begin\nt3 a b\n.end\n",
			ArityError},
		{"swap without second qubit",
			".numvars 2\n.variables a b\n.begin\nf1 a\n.end\n",
			ArityError},
		{"unknown label",
			".numvars 2\n.variables a b\n.begin\nt2 a nope\n.end\n",
			LookupError},
		{"unsupported gate",
			".numvars 2\n.variables a b\n.begin\nzz1 a\n.end\n",
			FormatError},
		{"unknown identifier",
			".numvars 2\n.variables a b\n.begin\nw1 a\n.end\n",
			FormatError},
	} {
		kind := importKind(t, test.src)
		require.Equal(t, test.kind, kind, "error kind of %s", test.name)
	}
}

func TestImportOneShot(t *testing.T) {
	c := parseReal(t, toffoliReal)

	err := c.Import(strings.NewReader(toffoliReal), FormatReal, "test.real")
	require.Error(t, err)
	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	require.Equal(t, StructuralError, qerr.Kind)
}

func TestDefineWarning(t *testing.T) {
	var diag bytes.Buffer
	params := utils.NewParams()
	params.Diag = &diag

	c := New(params)
	src := `.numvars 2
.variables a b
.define
foo bar
.enddefine
.begin
t2 a b
.end
`
	err := c.Import(strings.NewReader(src), FormatReal, "test.real")
	require.NoError(t, err)
	require.Contains(t, diag.String(), "warning")
	require.Contains(t, diag.String(), "define")
	require.Len(t, c.Operations(), 1)
}

func TestEOFWithoutEnd(t *testing.T) {
	c := parseReal(t, ".numvars 2\n.variables a b\n.begin\nt2 a b\n")
	require.Len(t, c.Operations(), 1)
}

func TestImportFile(t *testing.T) {
	c := New(nil)
	err := c.ImportFile("circuit.xyz")
	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	require.Equal(t, FormatError, qerr.Kind)

	path := filepath.Join(t.TempDir(), "toffoli.real")
	require.NoError(t, os.WriteFile(path, []byte(toffoliReal), 0644))

	c = New(nil)
	require.NoError(t, c.ImportFile(path))
	require.Equal(t, "toffoli", c.Name)
	require.Len(t, c.Operations(), 1)
}

func TestUnregisteredFormat(t *testing.T) {
	c := New(nil)
	err := c.Import(strings.NewReader(""), FormatGRCS, "test.txt")
	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	require.Equal(t, FormatError, qerr.Kind)
}
