package transcript

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestChallengeDeterministic(t *testing.T) {
	var a fr.Element
	a.SetUint64(42)

	t1 := New("lookup", "alpha", "beta")
	if err := t1.AppendScalar("alpha", a); err != nil {
		t.Fatalf("append: %v", err)
	}
	c1, err := t1.ChallengeScalar("alpha")
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}

	t2 := New("lookup", "alpha", "beta")
	if err := t2.AppendScalar("alpha", a); err != nil {
		t.Fatalf("append: %v", err)
	}
	c2, err := t2.ChallengeScalar("alpha")
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}

	if !c1.Equal(&c2) {
		t.Errorf("expected identical transcripts to produce identical challenges")
	}
}

func TestChallengeDivergesOnDifferentAppends(t *testing.T) {
	var a, b fr.Element
	a.SetUint64(42)
	b.SetUint64(43)

	t1 := New("lookup", "alpha")
	_ = t1.AppendScalar("alpha", a)
	c1, _ := t1.ChallengeScalar("alpha")

	t2 := New("lookup", "alpha")
	_ = t2.AppendScalar("alpha", b)
	c2, _ := t2.ChallengeScalar("alpha")

	if c1.Equal(&c2) {
		t.Errorf("expected different appended values to produce different challenges")
	}
}

func TestChallengeDivergesOnLabelMismatch(t *testing.T) {
	// Prover appends under "beta", verifier challenges under the
	// differently-spelled "β" — the two transcripts must squeeze different
	// values even though the same bytes were bound.
	var a fr.Element
	a.SetUint64(7)

	prover := New("lookup", "beta")
	_ = prover.AppendScalar("beta", a)
	proverChallenge, _ := prover.ChallengeScalar("beta")

	verifier := New("lookup", "β")
	_ = verifier.AppendScalar("β", a)
	verifierChallenge, _ := verifier.ChallengeScalar("β")

	if proverChallenge.Equal(&verifierChallenge) {
		t.Errorf("transcripts using different labels must diverge")
	}
}
