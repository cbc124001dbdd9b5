//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package utils

import (
	"fmt"
)

// Point specifies a position in an input file.
type Point struct {
	Source string
	Line   int // 1-based
}

func (p Point) String() string {
	if p.Undefined() {
		return p.Source
	}
	return fmt.Sprintf("%s:%d", p.Source, p.Line)
}

// Undefined tests if the input position is undefined.
func (p Point) Undefined() bool {
	return p.Line == 0
}
