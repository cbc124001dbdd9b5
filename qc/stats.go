//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"

	"github.com/quantum-eda/qfr/dd"
)

// GateCounts counts standard operations per gate kind.
func (c *Circuit) GateCounts() map[Gate]int {
	counts := make(map[Gate]int)
	for _, op := range c.ops {
		if std, ok := op.(*StandardOperation); ok {
			counts[std.Gate()]++
		}
	}
	return counts
}

// PrintStatistics renders a circuit statistics report.
func (c *Circuit) PrintStatistics(w io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Metric").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column("Qubits")
	row.Column(fmt.Sprintf("%d", c.nqubits))

	row = tab.Row()
	row.Column("Dimension")
	row.Column("2" + superscript.Itoa(c.nqubits))

	row = tab.Row()
	row.Column("Classical bits")
	row.Column(fmt.Sprintf("%d", c.nclassics))

	row = tab.Row()
	row.Column("Operations")
	row.Column(fmt.Sprintf("%d", len(c.ops)))

	row = tab.Row()
	row.Column("Individual operations")
	row.Column(fmt.Sprintf("%d", c.NIndividualOps()))

	row = tab.Row()
	row.Column("Max controls")
	row.Column(fmt.Sprintf("%d", c.maxControls))

	tab.Print(w)
}

// Print lists the operation sequence bracketed by the input and
// output permutations.
func (c *Circuit) Print(w io.Writer) {
	fmt.Fprintf(w, "%4s:", "i")
	for i := 0; i < c.nqubits; i++ {
		fmt.Fprintf(w, "\t%d", c.inputPerm[i])
	}
	fmt.Fprintln(w)

	for i, op := range c.ops {
		fmt.Fprintf(w, "%4d:\t%s\n", i+1, op)
	}

	fmt.Fprintf(w, "%4s:", "o")
	for i := 0; i < c.nqubits; i++ {
		fmt.Fprintf(w, "\t%d", c.outputPerm[i])
	}
	fmt.Fprintln(w)
}

// PrintMatrix prints the full matrix of a built functionality edge.
func (c *Circuit) PrintMatrix(eng Engine, e dd.Edge, w io.Writer) {
	dim := uint64(1) << uint(c.nqubits)
	for i := uint64(0); i < dim; i++ {
		for j := uint64(0); j < dim; j++ {
			v := c.Entry(eng, e, i, j)
			fmt.Fprintf(w, "%8.4f%+8.4fi\t", real(v), imag(v))
		}
		fmt.Fprintln(w)
	}
}

// PrintVector prints the amplitudes of a simulated state edge.
func (c *Circuit) PrintVector(eng Engine, e dd.Edge, w io.Writer) {
	dim := uint64(1) << uint(c.nqubits)
	for i := uint64(0); i < dim; i++ {
		v := c.Entry(eng, e, i, 0)
		fmt.Fprintf(w, "%0*b: %.4f%+.4fi\n", c.nqubits, i, real(v), imag(v))
	}
}
