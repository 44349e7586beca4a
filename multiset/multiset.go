// Package multiset implements the Fr-valued sequence algebra the
// multiset-equality lookup argument is built on: aggregation under a random
// challenge, sorting, halving, and interpolation over a multiplicative
// subgroup of the BLS12-381 scalar field.
package multiset

import (
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// MultiSet is an ordered sequence of field elements. Unlike a Set, the same
// value may occur more than once; order matters for sorted_by but not for
// set-equality style checks such as is_subset_of.
type MultiSet struct {
	values []fr.Element
}

// New returns an empty MultiSet.
func New() *MultiSet {
	return &MultiSet{}
}

// FromSlice wraps an existing slice of elements as a MultiSet without
// copying. Callers must not mutate the slice afterwards through other means.
func FromSlice(values []fr.Element) *MultiSet {
	return &MultiSet{values: values}
}

// Push appends a single value.
func (s *MultiSet) Push(v fr.Element) {
	s.values = append(s.values, v)
}

// Extend appends n copies of v. n must be non-negative.
func (s *MultiSet) Extend(n int, v fr.Element) {
	for i := 0; i < n; i++ {
		s.values = append(s.values, v)
	}
}

// Len returns the number of elements.
func (s *MultiSet) Len() int {
	return len(s.values)
}

// Values exposes the underlying slice. Callers must treat it as read-only.
func (s *MultiSet) Values() []fr.Element {
	return s.values
}

// Last returns the final element. It panics on an empty set, mirroring the
// reference implementation's behaviour: the lookup driver's padding calls
// Last only once every wire sequence holds at least one element (a recorded
// read, or the table's first row when no read was recorded).
func (s *MultiSet) Last() fr.Element {
	return s.values[len(s.values)-1]
}

// Contains reports whether v occurs at least once, via a linear scan.
func (s *MultiSet) Contains(v fr.Element) bool {
	for _, x := range s.values {
		if x.Equal(&v) {
			return true
		}
	}
	return false
}

// Concatenate returns a new MultiSet with other's elements appended after
// self's, preserving order. Neither operand is modified.
func (s *MultiSet) Concatenate(other *MultiSet) *MultiSet {
	result := make([]fr.Element, 0, len(s.values)+len(other.values))
	result = append(result, s.values...)
	result = append(result, other.values...)
	return &MultiSet{values: result}
}

// Sort returns a copy ordered ascending by the canonical integer
// representative of each element. Ties are broken arbitrarily (sort is not
// required to be stable).
func (s *MultiSet) Sort() *MultiSet {
	cloned := make([]fr.Element, len(s.values))
	copy(cloned, s.values)
	sort.Slice(cloned, func(i, j int) bool {
		return cloned[i].Cmp(&cloned[j]) < 0
	})
	return &MultiSet{values: cloned}
}

// IsSubsetOf reports whether every element of self occurs at least once in
// other, ignoring multiplicity. It is O(|self|*|other|) and is intended for
// debugging/testing, not for the hot proving path.
func (s *MultiSet) IsSubsetOf(other *MultiSet) bool {
	for _, x := range s.values {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// SortedBy reports whether the elements of self, read left to right, can be
// matched to entries of t at non-decreasing positions. Consecutive equal
// elements of self may match the same entry of t, so [50, 20, 20] is
// sorted-by [50, 20, 30]. An empty self is trivially sorted-by any t.
func (s *MultiSet) SortedBy(t *MultiSet) bool {
	i := 0
	for _, v := range s.values {
		for i < len(t.values) && !t.values[i].Equal(&v) {
			i++
		}
		if i == len(t.values) {
			return false
		}
	}
	return true
}

// Halve splits a sequence of length 2n+1 into two overlapping halves of
// length n+1, whose common element is s[n].
func (s *MultiSet) Halve() (*MultiSet, *MultiSet) {
	length := len(s.values)
	mid := length / 2

	first := make([]fr.Element, mid+1)
	copy(first, s.values[:mid+1])

	second := make([]fr.Element, length-mid)
	copy(second, s.values[mid:])

	return &MultiSet{values: first}, &MultiSet{values: second}
}

// Add returns the elementwise sum of self and other, truncated to the
// shorter operand's length. Callers in this module only ever invoke Add on
// equal-length sequences, after explicit zero-padding via Aggregate.
func (s *MultiSet) Add(other *MultiSet) *MultiSet {
	n := len(s.values)
	if len(other.values) < n {
		n = len(other.values)
	}
	result := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		result[i].Add(&s.values[i], &other.values[i])
	}
	return &MultiSet{values: result}
}

// ScalarMul returns the elementwise product of self with a scalar.
func (s *MultiSet) ScalarMul(c fr.Element) *MultiSet {
	result := make([]fr.Element, len(s.values))
	for i := range s.values {
		result[i].Mul(&s.values[i], &c)
	}
	return &MultiSet{values: result}
}

// Aggregate computes the random linear combination
// sets[0] + challenge*sets[1] + challenge^2*sets[2] + ...,
// zero-padding every set to the length of the longest one before combining,
// so that the result always has length max(|sets[i]|).
func Aggregate(sets []*MultiSet, challenge fr.Element) *MultiSet {
	max := 0
	for _, s := range sets {
		if s.Len() > max {
			max = s.Len()
		}
	}

	result := &MultiSet{values: make([]fr.Element, max)}
	var power fr.Element
	power.SetOne()

	for _, s := range sets {
		padded := s.zeroPadded(max)
		scaled := padded.ScalarMul(power)
		result = result.Add(scaled)
		power.Mul(&power, &challenge)
	}

	return result
}

// zeroPadded returns a copy of s extended with zero elements to length n.
// Aggregate's result length is the longest input's, but Add truncates to
// the shorter operand, so every operand must already be padded before it
// reaches Add.
func (s *MultiSet) zeroPadded(n int) *MultiSet {
	if len(s.values) >= n {
		return &MultiSet{values: s.values[:n]}
	}
	padded := make([]fr.Element, n)
	copy(padded, s.values)
	return &MultiSet{values: padded}
}

// ToPolynomial interpolates self, read as evaluations over the
// multiplicative subgroup domain (in the domain's standard point order),
// returning the polynomial's coefficients. len(self) must equal the
// domain's cardinality.
func (s *MultiSet) ToPolynomial(domain *fft.Domain) []fr.Element {
	if uint64(len(s.values)) != domain.Cardinality {
		panic("multiset: ToPolynomial requires |s| == |domain|")
	}
	coeffs := make([]fr.Element, len(s.values))
	copy(coeffs, s.values)
	domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

// Equal reports whether two multisets hold the same elements in the same
// order.
func (s *MultiSet) Equal(other *MultiSet) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for i := range s.values {
		if !s.values[i].Equal(&other.values[i]) {
			return false
		}
	}
	return true
}
