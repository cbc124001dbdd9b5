//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package utils

import (
	"io"
	"os"
)

// Params specify importer and builder parameters.
type Params struct {
	Verbose bool

	// Diag receives warnings and error diagnostics.
	Diag io.Writer

	// Tolerance specifies the numeric tolerance for collapsing
	// rotation angles to discrete gates.
	Tolerance float64

	// GCInterval specifies after how many folded operations the
	// diagram engine garbage collection hook is invoked.
	GCInterval int

	// ExecuteSwaps realizes SWAP operations as an output permutation
	// relabeling instead of an explicit multiplication.
	ExecuteSwaps bool
}

// NewParams returns a new params object, initialized with the default
// values.
func NewParams() *Params {
	return &Params{
		Diag:       os.Stderr,
		Tolerance:  1e-10,
		GCInterval: 1,
	}
}
