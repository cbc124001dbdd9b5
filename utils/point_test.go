//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package utils

import (
	"testing"
)

func TestPoint(t *testing.T) {
	p := Point{}
	if !p.Undefined() {
		t.Errorf("Undefined point is not undefined")
	}
	p = Point{
		Source: "circuit.real",
		Line:   7,
	}
	if p.Undefined() {
		t.Errorf("point is undefined")
	}
	if p.String() != "circuit.real:7" {
		t.Errorf("unexpected point string: %s", p.String())
	}
}
