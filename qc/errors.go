//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"fmt"

	"github.com/quantum-eda/qfr/utils"
)

// ErrorKind classifies circuit errors. All kinds are unrecoverable at
// the point of detection: importer and builder abort and no partial
// circuit or diagram edge remains valid.
type ErrorKind int

// Error kinds.
const (
	// FormatError reports malformed header or gate syntax and
	// unknown directives or gate identifiers.
	FormatError ErrorKind = iota

	// ArityError reports a control count exceeding the available
	// qubits or a wrong number of qubit labels for a gate.
	ArityError

	// LookupError reports an unknown register or qubit label.
	LookupError

	// StructuralError reports an illegal register re-declaration or
	// augmentation.
	StructuralError

	// CapacityError reports a qubit count exceeding the engine
	// limit.
	CapacityError

	// SemanticError reports a non-unitary operation where unitarity
	// is required.
	SemanticError
)

func (k ErrorKind) String() string {
	switch k {
	case FormatError:
		return "format error"
	case ArityError:
		return "arity error"
	case LookupError:
		return "lookup error"
	case StructuralError:
		return "structural error"
	case CapacityError:
		return "capacity error"
	case SemanticError:
		return "semantic error"
	default:
		return fmt.Sprintf("{ErrorKind %d}", k)
	}
}

// Error is a circuit error with its taxonomy kind, the offending
// token, and the input position where it was detected.
type Error struct {
	Kind  ErrorKind
	Point utils.Point
	Token string
	Msg   string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if len(e.Token) > 0 {
		msg += fmt.Sprintf(": '%s'", e.Token)
	}
	if !e.Point.Undefined() || len(e.Point.Source) > 0 {
		msg = fmt.Sprintf("%s: %s", e.Point, msg)
	}
	return msg
}

func errf(kind ErrorKind, loc utils.Point, token, format string,
	a ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		Point: loc,
		Token: token,
		Msg:   fmt.Sprintf(format, a...),
	}
}
