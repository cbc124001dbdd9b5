//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantum-eda/qfr/utils"
)

// Format identifies a circuit description format.
type Format int

// Import formats.
const (
	FormatReal Format = iota
	FormatOpenQASM
	FormatGRCS
)

func (f Format) String() string {
	switch f {
	case FormatReal:
		return "real"
	case FormatOpenQASM:
		return "openqasm"
	case FormatGRCS:
		return "grcs"
	default:
		return fmt.Sprintf("{Format %d}", int(f))
	}
}

// ImportFunc is a format front-end. A front-end must allocate the
// registers it declares before appending any operation referencing
// them, and emit operations through the Circuit append API.
type ImportFunc func(c *Circuit, in io.Reader, source string) error

var importers = make(map[Format]ImportFunc)

// RegisterImporter registers a front-end for a format. The Real
// format is built in.
func RegisterImporter(f Format, fn ImportFunc) {
	importers[f] = fn
}

// ImportFile imports a circuit description, selecting the format from
// the file extension: .real, .qasm, or .txt.
func (c *Circuit) ImportFile(path string) error {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".real":
		format = FormatReal
	case ".qasm":
		format = FormatOpenQASM
	case ".txt":
		format = FormatGRCS
	default:
		return errf(FormatError, utils.Point{Source: path},
			filepath.Ext(path), "extension not recognized")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	base := filepath.Base(path)
	c.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return c.Import(f, format, path)
}

// Import imports a circuit description in the argument format. Import
// is one-shot: it requires a freshly constructed, empty circuit, and
// a circuit left over from a failed import is not usable.
func (c *Circuit) Import(in io.Reader, format Format, source string) error {
	if c.nqubits > 0 || c.nclassics > 0 || len(c.ops) > 0 {
		return errf(StructuralError, utils.Point{Source: source}, "",
			"import requires an empty circuit")
	}
	if format == FormatReal {
		return c.importReal(in, source)
	}
	fn, ok := importers[format]
	if !ok {
		return errf(FormatError, utils.Point{Source: source},
			format.String(), "no front-end registered for format")
	}
	return fn(c, in, source)
}
