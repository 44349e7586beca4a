package export

import (
	"testing"

	"github.com/nyxzk/plookup/equality"
	"github.com/nyxzk/plookup/kzgsrs"
	"github.com/nyxzk/plookup/multiset"
	"github.com/nyxzk/plookup/transcript"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func fe(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func sampleProof(t *testing.T) *equality.Proof {
	t.Helper()

	tbl := multiset.FromSlice([]fr.Element{fe(1), fe(2), fe(3), fe(4), fe(5), fe(6), fe(7), fe(8)})
	wit := multiset.FromSlice([]fr.Element{fe(2), fe(2), fe(4), fe(5), fe(5), fe(8), fe(1)})

	srs, err := kzgsrs.New(kzgsrs.Insecure, 64, []byte("export-test"))
	if err != nil {
		t.Fatalf("srs: %v", err)
	}
	tr := transcript.New("export-test", "beta", "gamma", "alpha_prime", "z")
	proof, err := equality.Prove(wit, tbl, srs, tr)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	return proof
}

func TestMarshalIsNonEmptyAndDeterministic(t *testing.T) {
	proof := sampleProof(t)

	b1, err := Marshal(proof)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(b1) == 0 {
		t.Fatalf("expected non-empty serialization")
	}

	b2, err := Marshal(proof)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b1) != string(b2) {
		t.Errorf("expected marshaling the same proof twice to produce identical bytes")
	}
}

func TestAbiEncodeIsNonEmpty(t *testing.T) {
	proof := sampleProof(t)

	raw, err := Marshal(proof)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	encoded, err := AbiEncode(raw)
	if err != nil {
		t.Fatalf("abi encode: %v", err)
	}
	if len(encoded) == 0 {
		t.Errorf("expected non-empty ABI encoding")
	}
}
