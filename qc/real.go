//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/quantum-eda/qfr/dd"
	"github.com/quantum-eda/qfr/utils"
)

// reGate matches a gate token: identifier, optional 1-based arity,
// optional angle parameter after a colon.
var reGate = regexp.MustCompile(
	`^(r[xyz]|q|[0a-z](?:[+i])?)([0-9]+)?(?::([-+]?[0-9]+\.?[0-9]*(?:[eE][-+]?[0-9]+)?))?$`)

// realIdentifiers is the fixed identifier to gate kind mapping of the
// Real gate-description language. The alias t (toffoli) is handled
// separately.
var realIdentifiers = map[string]Gate{
	"0":  I,
	"i":  I,
	"h":  H,
	"n":  X,
	"c":  X,
	"x":  X,
	"y":  Y,
	"z":  RZ,
	"q":  U1,
	"s":  S,
	"si": Sdag,
	"s+": Sdag,
	"v":  V,
	"vi": Vdag,
	"v+": Vdag,
	"f":  SWAP,
	"p":  P,
	"pi": Pdag,
	"p+": Pdag,
	"rx": RX,
	"ry": RY,
	"rz": RZ,
}

type realParser struct {
	c     *Circuit
	in    *bufio.Reader
	point utils.Point
}

// importReal parses the two-phase Real format: header directives
// followed by gate descriptions.
func (c *Circuit) importReal(in io.Reader, source string) error {
	p := &realParser{
		c:     c,
		in:    bufio.NewReader(in),
		point: utils.Point{Source: source, Line: 1},
	}
	if err := p.header(); err != nil {
		return err
	}
	return p.gates()
}

// readToken skips whitespace and returns the next token. A newline
// terminating a token is left in the input for restOfLine.
func (p *realParser) readToken() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := p.in.ReadRune()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if unicode.IsSpace(r) {
			if sb.Len() > 0 {
				if r == '\n' {
					p.in.UnreadRune()
				}
				return sb.String(), nil
			}
			if r == '\n' {
				p.point.Line++
			}
			continue
		}
		sb.WriteRune(r)
	}
}

// restOfLine consumes and returns the remainder of the current line.
func (p *realParser) restOfLine() string {
	var sb strings.Builder
	for {
		r, _, err := p.in.ReadRune()
		if err != nil {
			break
		}
		if r == '\n' {
			p.point.Line++
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (p *realParser) readInt() (int, error) {
	tok, err := p.readToken()
	if err != nil {
		return 0, errf(FormatError, p.point, "", "expected integer")
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errf(FormatError, p.point, tok, "invalid integer")
	}
	return n, nil
}

func (p *realParser) header() error {
	c := p.c
	for {
		tok, err := p.readToken()
		if err != nil {
			return errf(FormatError, p.point, "",
				"unexpected end of file in header")
		}
		if strings.HasPrefix(tok, "#") {
			p.restOfLine()
			continue
		}
		cmd := strings.ToUpper(tok)
		if cmd[0] != '.' {
			return errf(FormatError, p.point, tok, "invalid file header")
		}

		switch cmd {
		case ".BEGIN":
			// Seed identity entries for any index the header did not
			// cover so both permutations are total bijections.
			for i := 0; i < c.nqubits; i++ {
				if _, ok := c.inputPerm[i]; !ok {
					c.inputPerm[i] = i
				}
				if _, ok := c.outputPerm[i]; !ok {
					c.outputPerm[i] = i
				}
			}
			return nil

		case ".NUMVARS":
			n, err := p.readInt()
			if err != nil {
				return err
			}
			if n > dd.MaxQubits {
				return errf(CapacityError, p.point, tok,
					"%d qubits exceed the engine limit of %d",
					n, dd.MaxQubits)
			}
			c.nqubits = n
			c.nclassics = n

		case ".VARIABLES":
			for i := 0; i < c.nqubits; i++ {
				v, err := p.readToken()
				if err != nil {
					return errf(FormatError, p.point, "",
						"too few variables: expected %d", c.nqubits)
				}
				if _, ok := c.qregs["v_"+v]; ok {
					return errf(StructuralError, p.point, v,
						"variable declared twice")
				}
				c.qregs["v_"+v] = Register{Start: i, Count: 1}
				c.cregs["c_v_"+v] = Register{Start: i, Count: 1}
				c.inputPerm[i] = i
				c.outputPerm[i] = i
			}

		case ".CONSTANTS", ".INPUTS", ".OUTPUTS", ".GARBAGE", ".VERSION",
			".INPUTBUS", ".OUTPUTBUS":
			// Recognized without semantic effect. Constant inputs
			// could be handled as X insertions; unimplemented.
			p.restOfLine()

		case ".DEFINE":
			c.logger.Warningf(p.point,
				"'.define' blocks are not supported and skipped")
			for cmd != ".ENDDEFINE" {
				p.restOfLine()
				tok, err = p.readToken()
				if err != nil {
					return errf(FormatError, p.point, "",
						"unexpected end of file in .define block")
				}
				cmd = strings.ToUpper(tok)
			}

		default:
			return errf(FormatError, p.point, tok, "unknown command")
		}
	}
}

func (p *realParser) gates() error {
	c := p.c
	for {
		tok, err := p.readToken()
		if err != nil {
			if err == io.EOF {
				// EOF without .end simply ends parsing.
				return nil
			}
			return errf(FormatError, p.point, "", "read error: %s", err)
		}
		if strings.HasPrefix(tok, "#") {
			p.restOfLine()
			continue
		}
		cmd := strings.ToLower(tok)
		if cmd == ".end" {
			return nil
		}

		m := reGate.FindStringSubmatch(cmd)
		if m == nil {
			return errf(FormatError, p.point, tok, "unsupported gate")
		}
		ident := m[1]

		var gate Gate
		if ident == "t" {
			// Historical alias: t(offoli) selects X on multi-control
			// lines.
			gate = X
		} else {
			g, ok := realIdentifiers[ident]
			if !ok {
				return errf(FormatError, p.point, ident,
					"unknown gate identifier")
			}
			gate = g
		}

		var ncontrols int
		if len(m[2]) > 0 {
			arity, err := strconv.Atoi(m[2])
			if err != nil {
				return errf(FormatError, p.point, tok, "invalid gate arity")
			}
			ncontrols = arity - 1
		}
		var lambda float64
		if len(m[3]) > 0 {
			lambda, err = strconv.ParseFloat(m[3], 64)
			if err != nil {
				return errf(FormatError, p.point, tok,
					"invalid gate parameter")
			}
		}

		if gate == V || gate == Vdag || ident == "c" {
			ncontrols = 1
		} else if gate == P || gate == Pdag {
			ncontrols = 2
		}
		if ncontrols >= c.nqubits {
			return errf(ArityError, p.point, tok,
				"gate acts on %d qubits, but only %d are available",
				ncontrols+1, c.nqubits)
		}

		labels := strings.Fields(p.restOfLine())
		if len(labels) < ncontrols+1 {
			return errf(ArityError, p.point, tok,
				"too few qubit labels: got %d, expected %d",
				len(labels), ncontrols+1)
		}

		var controls []Control
		for i := 0; i < ncontrols; i++ {
			label := labels[i]
			neg := strings.HasPrefix(label, "-")
			if neg {
				label = label[1:]
			}
			idx, err := p.resolve(label)
			if err != nil {
				return err
			}
			controls = append(controls, Control{Qubit: idx, Negative: neg})
		}
		target, err := p.resolve(labels[ncontrols])
		if err != nil {
			return err
		}

		c.updateMaxControls(ncontrols)
		if err := p.emit(gate, controls, target, lambda); err != nil {
			return err
		}
	}
}

// resolve maps a gate-line qubit label to its qubit index through the
// variable register namespace.
func (p *realParser) resolve(label string) (int, error) {
	reg, ok := p.c.qregs["v_"+label]
	if !ok {
		return 0, errf(LookupError, p.point, label, "label not found")
	}
	return reg.Start, nil
}

func (p *realParser) emit(gate Gate, controls []Control, target int,
	lambda float64) error {

	c := p.c
	n := c.nqubits

	switch gate {
	case I, H, Y, Z, S, Sdag, T, Tdag, V, Vdag, U3, U2:
		return c.Append(NewStandardOperation(n, controls, target, gate,
			lambda))

	case X:
		// Plain X and toffoli forms ignore the parameter.
		return c.Append(NewStandardOperation(n, controls, target, X))

	case RX, RY:
		return c.Append(NewStandardOperation(n, controls, target, gate,
			math.Pi/lambda))

	case RZ, U1:
		// Angles within tolerance of an integer collapse to the
		// cheaper discrete gate.
		x := math.Round(lambda)
		if math.Abs(lambda-x) < c.params.Tolerance {
			switch x {
			case 1, -1:
				return c.Append(NewStandardOperation(n, controls, target, Z))
			case 2:
				return c.Append(NewStandardOperation(n, controls, target, S))
			case -2:
				return c.Append(NewStandardOperation(n, controls, target,
					Sdag))
			case 4:
				return c.Append(NewStandardOperation(n, controls, target, T))
			case -4:
				return c.Append(NewStandardOperation(n, controls, target,
					Tdag))
			default:
				return c.Append(NewStandardOperation(n, controls, target,
					gate, math.Pi/x))
			}
		}
		return c.Append(NewStandardOperation(n, controls, target, gate,
			math.Pi/lambda))

	case SWAP, P, Pdag:
		// The last parsed control becomes the second target.
		if len(controls) == 0 {
			return errf(ArityError, p.point, gate.String(),
				"two-target gate needs a second qubit")
		}
		t1 := controls[len(controls)-1].Qubit
		controls = controls[:len(controls)-1]
		return c.Append(NewTwoTargetOperation(n, controls, target, t1, gate))

	default:
		return errf(FormatError, p.point, gate.String(),
			"'none' operation detected")
	}
}
