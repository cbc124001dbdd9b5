//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantum-eda/qfr/dd"
)

func TestRandomDeterministic(t *testing.T) {
	var seed [32]byte
	seed[0] = 1

	c1, err := Random(3, 32, seed)
	require.NoError(t, err)
	c2, err := Random(3, 32, seed)
	require.NoError(t, err)

	require.Len(t, c1.Operations(), 32)
	require.Len(t, c2.Operations(), 32)
	for i := range c1.Operations() {
		require.Equal(t, c1.Operations()[i].String(),
			c2.Operations()[i].String(), "operation %d", i)
	}

	seed[0] = 2
	c3, err := Random(3, 32, seed)
	require.NoError(t, err)
	var differs bool
	for i := range c1.Operations() {
		if c1.Operations()[i].String() != c3.Operations()[i].String() {
			differs = true
			break
		}
	}
	require.True(t, differs, "different seeds produced the same circuit")
}

func TestRandomIsUnitary(t *testing.T) {
	var seed [32]byte
	seed[0] = 7

	c, err := Random(2, 16, seed)
	require.NoError(t, err)
	for _, op := range c.Operations() {
		require.True(t, op.IsUnitary())
	}

	p := dd.New()
	e, err := c.BuildFunctionality(p)
	require.NoError(t, err)
	require.False(t, p.IsTerminal(e))
}

func TestRandomSingleQubit(t *testing.T) {
	var seed [32]byte
	seed[0] = 3

	c, err := Random(1, 16, seed)
	require.NoError(t, err)
	for _, op := range c.Operations() {
		require.Empty(t, op.Controls(), "single-qubit circuit has a CNOT")
	}
}
