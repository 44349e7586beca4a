// Package transcript wraps gnark-crypto's Fiat-Shamir transcript with the
// typed append/challenge interface the multiset-equality argument is
// specified against: scalars and commitments are bound under fixed labels,
// and challenges are squeezed as field elements.
package transcript

import (
	"crypto/sha256"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// Transcript is a Fiat-Shamir transcript for the lookup protocol. Every
// challenge label it will ever squeeze must be declared at construction
// time; prover and verifier must declare (and later append to / challenge
// from) the identical sequence of labels or the proof will fail to verify.
type Transcript struct {
	inner fiatshamir.Transcript
}

// New creates a transcript bound to protocolLabel and pre-registers every
// challenge label the protocol will squeeze, in order. protocolLabel is bound
// into the first challenge, and through challenge chaining into every later
// one.
func New(protocolLabel string, challengeLabels ...string) *Transcript {
	inner := fiatshamir.NewTranscript(sha256.New(), challengeLabels...)
	if len(challengeLabels) > 0 {
		_ = inner.Bind(challengeLabels[0], []byte(protocolLabel))
	}
	return &Transcript{inner: inner}
}

// AppendScalar binds a field element under label.
func (t *Transcript) AppendScalar(label string, v fr.Element) error {
	b := v.Bytes()
	if err := t.inner.Bind(label, b[:]); err != nil {
		return fmt.Errorf("transcript: append scalar %q: %w", label, err)
	}
	return nil
}

// AppendCommitment binds a KZG commitment (a G1 point) under label.
func (t *Transcript) AppendCommitment(label string, c kzg.Digest) error {
	b := c.RawBytes()
	if err := t.inner.Bind(label, b[:]); err != nil {
		return fmt.Errorf("transcript: append commitment %q: %w", label, err)
	}
	return nil
}

// ChallengeScalar derives a field element challenge from every value bound
// so far, under label. label must have been declared to New.
func (t *Transcript) ChallengeScalar(label string) (fr.Element, error) {
	b, err := t.inner.ComputeChallenge(label)
	if err != nil {
		return fr.Element{}, fmt.Errorf("transcript: challenge %q: %w", label, err)
	}
	var e fr.Element
	e.SetBytes(b)
	return e, nil
}
