// Package export serializes an equality.Proof to bytes and ABI-encodes it
// as an ARC-4 byte array for on-chain or off-chain verifiers.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/algorand/avm-abi/abi"

	"github.com/nyxzk/plookup/equality"
)

// Marshal serializes a proof to a flat byte string: the six commitments in
// Proof field order, the ten evaluations in Evaluations field order, then
// the two batch opening proofs, each using gnark-crypto's own WriteTo
// encoding.
func Marshal(p *equality.Proof) ([]byte, error) {
	var buf bytes.Buffer

	writers := []io.WriterTo{&p.F, &p.T, &p.H1, &p.H2, &p.Z, &p.Q}
	for i, w := range writers {
		if _, err := w.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("export: writing commitment %d: %w", i, err)
		}
	}

	evaluations := []fieldBytes{
		&p.Evaluations.F,
		&p.Evaluations.T, &p.Evaluations.TOmega,
		&p.Evaluations.H1, &p.Evaluations.H1Omega,
		&p.Evaluations.H2, &p.Evaluations.H2Omega,
		&p.Evaluations.Z, &p.Evaluations.ZOmega,
		&p.Evaluations.Q,
	}
	for _, e := range evaluations {
		b := e.Bytes()
		buf.Write(b[:])
	}

	if _, err := p.OpeningZ.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: writing opening at z: %w", err)
	}
	if _, err := p.OpeningZOmega.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: writing opening at z*omega: %w", err)
	}

	return buf.Bytes(), nil
}

// fieldBytes is satisfied by *fr.Element; it avoids importing the curve's fr
// package here just to name the evaluation slice's element type.
type fieldBytes interface {
	Bytes() [32]byte
}

// AbiEncode wraps a serialized proof as the ARC-4 "byte[]" type, the
// encoding an opaque binary payload like this one (KZG commitments and
// opening proofs, not a fixed public-input layout) takes on the AVM ABI.
func AbiEncode(proofBytes []byte) ([]byte, error) {
	arcType, err := abi.TypeOf("byte[]")
	if err != nil {
		return nil, fmt.Errorf("export: defining ABI type: %w", err)
	}
	encoded, err := arcType.Encode(proofBytes)
	if err != nil {
		return nil, fmt.Errorf("export: ABI-encoding proof: %w", err)
	}
	return encoded, nil
}
