package multiset

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

func fe(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func msOf(vs ...uint64) *MultiSet {
	s := New()
	for _, v := range vs {
		s.Push(fe(v))
	}
	return s
}

func TestSort(t *testing.T) {
	unsorted := msOf(50, 20, 30, 40)
	expected := msOf(20, 30, 40, 50)

	sorted := unsorted.Sort()
	if !sorted.Equal(expected) {
		t.Errorf("sort mismatch: got %v want %v", sorted.Values(), expected.Values())
	}
	if sorted.Equal(unsorted) {
		t.Errorf("sorted set should differ from unsorted input")
	}

	// idempotent
	twice := sorted.Sort()
	if !twice.Equal(sorted) {
		t.Errorf("sort is not idempotent")
	}
}

func TestConcatenate(t *testing.T) {
	a := msOf(1, 2, 3)
	b := msOf(4, 5, 6)
	c := a.Concatenate(b)
	expected := msOf(1, 2, 3, 4, 5, 6)
	if !c.Equal(expected) {
		t.Errorf("concatenate mismatch: got %v want %v", c.Values(), expected.Values())
	}
}

func TestConcatenateThenSort(t *testing.T) {
	a := msOf(2, 2, 3, 1)
	b := msOf(6, 4, 4, 5)
	c := a.Concatenate(b).Sort()
	expected := msOf(1, 2, 2, 3, 4, 4, 5, 6)
	if !c.Equal(expected) {
		t.Errorf("concatenate+sort mismatch: got %v want %v", c.Values(), expected.Values())
	}
}

func TestHalve(t *testing.T) {
	a := msOf(1, 2, 3, 4, 5, 6, 7)
	h1, h2 := a.Halve()

	if h1.Len() != 4 || h2.Len() != 4 {
		t.Fatalf("expected halves of length 4, got %d and %d", h1.Len(), h2.Len())
	}
	if !h1.Equal(msOf(1, 2, 3, 4)) {
		t.Errorf("first half mismatch: %v", h1.Values())
	}
	if !h2.Equal(msOf(4, 5, 6, 7)) {
		t.Errorf("second half mismatch: %v", h2.Values())
	}
	if !h1.Last().Equal(&h2.Values()[0]) {
		t.Errorf("halve: last of first half must equal first of second half")
	}
}

func TestIsSubsetOf(t *testing.T) {
	a := msOf(1, 2, 3, 4, 5, 6, 7)
	b := msOf(1, 2)
	c := msOf(100)

	if !b.IsSubsetOf(a) {
		t.Errorf("expected b to be a subset of a")
	}
	if c.IsSubsetOf(a) {
		t.Errorf("expected c not to be a subset of a")
	}
}

func TestSortedBy(t *testing.T) {
	a := msOf(50, 20, 20, 30, 30, 40)
	b := msOf(50, 20, 30, 40, 10)
	if !a.SortedBy(b) {
		t.Errorf("expected a to be sorted-by b")
	}

	c := msOf(50, 20)
	d := msOf(20, 50)
	if c.SortedBy(d) {
		t.Errorf("expected c not to be sorted-by d")
	}
	if d.SortedBy(c) {
		t.Errorf("expected d not to be sorted-by c")
	}

	e := msOf(50, 20, 20)
	f := msOf(50, 20, 30)
	if !e.SortedBy(f) {
		t.Errorf("expected e to be sorted-by f")
	}
	if f.SortedBy(e) {
		t.Errorf("expected f not to be sorted-by e")
	}

	empty := New()
	if !empty.SortedBy(f) {
		t.Errorf("empty set must be sorted-by anything")
	}
	if f.SortedBy(empty) {
		t.Errorf("non-empty set cannot be sorted-by empty")
	}
}

func TestAggregateIdentity(t *testing.T) {
	a := msOf(1, 2, 3)
	var one fr.Element
	one.SetOne()

	agg := Aggregate([]*MultiSet{a}, one)
	if !agg.Equal(a) {
		t.Errorf("aggregate([s],1) must equal s")
	}
}

func TestAggregateTwoSets(t *testing.T) {
	a := msOf(1, 2, 3)
	b := msOf(4, 5, 6)
	alpha := fe(7)

	agg := Aggregate([]*MultiSet{a, b}, alpha)

	expected := New()
	for i := 0; i < 3; i++ {
		var v fr.Element
		v.Mul(&b.values[i], &alpha)
		v.Add(&v, &a.values[i])
		expected.Push(v)
	}
	if !agg.Equal(expected) {
		t.Errorf("aggregate([a,b],alpha) mismatch: got %v want %v", agg.Values(), expected.Values())
	}
}

func TestAggregatePadsShorterSets(t *testing.T) {
	a := msOf(1, 2, 3, 4, 5)
	b := msOf(9, 9)
	alpha := fe(3)

	agg := Aggregate([]*MultiSet{a, b}, alpha)
	if agg.Len() != 5 {
		t.Fatalf("expected aggregate length 5, got %d", agg.Len())
	}

	// third element onward: b contributes zero, so agg[i] == a[i]
	if !agg.Values()[2].Equal(&a.values[2]) {
		t.Errorf("expected zero-padding for missing tail of shorter set")
	}
}

func TestToPolynomialRoundTrips(t *testing.T) {
	a := msOf(1, 2, 3, 4, 5, 6, 7, 8)
	domain := fft.NewDomain(uint64(a.Len()))

	coeffs := a.ToPolynomial(domain)

	// evaluating the interpolated polynomial back at the domain points must
	// reproduce the original sequence: forward FFT (DIF, natural input) is
	// the inverse of ToPolynomial's IFFT(DIF)+BitReverse.
	evals := make([]fr.Element, len(coeffs))
	copy(evals, coeffs)
	domain.FFT(evals, fft.DIF)
	fft.BitReverse(evals)

	for i := range evals {
		if !evals[i].Equal(&a.values[i]) {
			t.Errorf("round trip mismatch at %d: got %v want %v", i, evals[i], a.values[i])
		}
	}
}
