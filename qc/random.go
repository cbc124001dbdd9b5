//
// Copyright (c) 2024-2026 The qfr authors
//
// All rights reserved.
//

package qc

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// randomGates is the gate set pseudorandom circuits draw from.
var randomGates = []Gate{H, X, Y, Z, S, T}

// Random creates a deterministic pseudorandom circuit of the argument
// depth over a fixed single-qubit gate set plus CNOT. Identical seeds
// produce identical circuits.
func Random(nqubits, depth int, seed [32]byte) (*Circuit, error) {
	c := New(nil)
	if err := c.AddQubitRegister("q", nqubits); err != nil {
		return nil, err
	}
	if err := c.AddClassicalRegister("c", nqubits); err != nil {
		return nil, err
	}

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		return nil, err
	}
	buf := make([]byte, depth*8)
	cipher.XORKeyStream(buf, buf)

	for i := 0; i < depth; i++ {
		b := buf[i*8 : (i+1)*8]
		kind := int(b[0]) % (len(randomGates) + 1)
		target := int(binary.LittleEndian.Uint16(b[2:4])) % nqubits

		var op Operation
		if kind == len(randomGates) && nqubits > 1 {
			control := int(binary.LittleEndian.Uint16(b[4:6])) % (nqubits - 1)
			if control >= target {
				control++
			}
			op = NewStandardOperation(nqubits,
				[]Control{{Qubit: control}}, target, X)
		} else {
			op = NewStandardOperation(nqubits, nil, target,
				randomGates[kind%len(randomGates)])
		}
		if err := c.Append(op); err != nil {
			return nil, err
		}
	}
	return c, nil
}
