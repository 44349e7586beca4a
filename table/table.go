// Package table defines the capability a lookup table must expose to the
// core argument: a pure read function and a preprocessing step that commits
// the table's three columns once, ahead of any proving.
package table

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/nyxzk/plookup/multiset"
)

// Table is the capability the LookUp driver is polymorphic over. A concrete
// table (e.g. a 4-bit XOR truth table) owns its own row data and knows how
// to answer reads and to preprocess itself; the core never looks inside.
type Table interface {
	// Read looks up (left, right) and returns the associated output and
	// true, or the zero value and false if the pair is not in the table.
	Read(left, right fr.Element) (fr.Element, bool)

	// Preprocess commits the table's three columns against srs, padding (or
	// requiring) the columns to size n, a power of two.
	Preprocess(srs *kzg.SRS, n uint64) (*PreProcessedTable, error)
}

// PreProcessedTable bundles the three committed column polynomials produced
// once at setup time and reused by every subsequent proof.
type PreProcessedTable struct {
	N int

	T1, T2, T3 *multiset.MultiSet
	C1, C2, C3 kzg.Digest
}

// Commit interpolates three equal-length columns over a size-n multiplicative
// subgroup and commits to each, returning the resulting PreProcessedTable.
// len(columns) must equal int(n) and n must be a power of two; concrete
// Table implementations call this from their own Preprocess method once
// they've materialized their row data.
func Commit(col1, col2, col3 *multiset.MultiSet, srs *kzg.SRS, n uint64) (*PreProcessedTable, error) {
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("table: size %d is not a power of two", n)
	}
	for name, col := range map[string]*multiset.MultiSet{"t1": col1, "t2": col2, "t3": col3} {
		if uint64(col.Len()) != n {
			return nil, fmt.Errorf("table: column %s has length %d, want %d", name, col.Len(), n)
		}
	}

	domain := fft.NewDomain(n)

	c1, err := commitColumn(col1, domain, srs)
	if err != nil {
		return nil, fmt.Errorf("table: committing column 1: %w", err)
	}
	c2, err := commitColumn(col2, domain, srs)
	if err != nil {
		return nil, fmt.Errorf("table: committing column 2: %w", err)
	}
	c3, err := commitColumn(col3, domain, srs)
	if err != nil {
		return nil, fmt.Errorf("table: committing column 3: %w", err)
	}

	return &PreProcessedTable{
		N:  int(n),
		T1: col1, T2: col2, T3: col3,
		C1: c1, C2: c2, C3: c3,
	}, nil
}

func commitColumn(col *multiset.MultiSet, domain *fft.Domain, srs *kzg.SRS) (kzg.Digest, error) {
	coeffs := col.ToPolynomial(domain)
	return kzg.Commit(coeffs, srs)
}
