//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerErrorf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	loc := Point{
		Source: "circuit.real",
		Line:   3,
	}
	err := logger.Errorf(loc, "unknown gate: %s", "zz")
	if err == nil {
		t.Fatalf("Errorf did not return an error")
	}
	if err.Error() != "unknown gate: zz" {
		t.Errorf("unexpected error: %s", err)
	}
	if !strings.HasPrefix(buf.String(), "circuit.real:3: ") {
		t.Errorf("diagnostic missing input position: %s", buf.String())
	}
}

func TestLoggerWarningf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Warningf(Point{Source: "circuit.real", Line: 1}, "skipped")
	if !strings.Contains(buf.String(), "warning: skipped") {
		t.Errorf("unexpected warning: %s", buf.String())
	}
}
