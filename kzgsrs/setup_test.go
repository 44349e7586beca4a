package kzgsrs

import (
	"bytes"
	"testing"
)

func TestInsecureSRSDeterministic(t *testing.T) {
	seed := []byte("insecure-test-seed")

	srs1, err := New(Insecure, 16, seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srs2, err := New(Insecure, 16, seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(srs1.Pk.G1) != 17 || len(srs2.Pk.G1) != 17 {
		t.Fatalf("expected 17 G1 elements, got %d and %d", len(srs1.Pk.G1), len(srs2.Pk.G1))
	}
	for i := range srs1.Pk.G1 {
		if !srs1.Pk.G1[i].Equal(&srs2.Pk.G1[i]) {
			t.Errorf("same seed must reproduce the same SRS at G1[%d]", i)
		}
	}
}

func TestInsecureSRSDiffersAcrossSeeds(t *testing.T) {
	srsA, err := New(Insecure, 8, []byte("seed-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srsB, err := New(Insecure, 8, []byte("seed-b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srsA.Pk.G1[1].Equal(&srsB.Pk.G1[1]) {
		t.Errorf("expected different seeds to produce different SRS")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	srs, err := New(Insecure, 8, []byte("round-trip-seed"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pkBuf, vkBuf bytes.Buffer
	if err := Save(&pkBuf, &vkBuf, srs); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(&pkBuf, &vkBuf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Pk.G1) != len(srs.Pk.G1) {
		t.Fatalf("expected %d G1 elements, got %d", len(srs.Pk.G1), len(loaded.Pk.G1))
	}
	for i := range srs.Pk.G1 {
		if !srs.Pk.G1[i].Equal(&loaded.Pk.G1[i]) {
			t.Errorf("round trip mismatch at G1[%d]", i)
		}
	}
}
