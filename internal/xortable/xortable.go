// Package xortable is a concrete 4-bit XOR lookup table: every (a, b) pair
// in [0,15]x[0,15] maps to a^b. It exists to exercise the table.Table
// interface end to end; it is not part of the public API surface.
package xortable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/nyxzk/plookup/multiset"
	"github.com/nyxzk/plookup/table"
)

const width = 16 // 4-bit operands: [0, 15]

// Table is the 4-bit XOR truth table: 256 rows, one per (a, b) pair.
type Table struct{}

// New returns the 4-bit XOR table.
func New() Table {
	return Table{}
}

// Read returns a^b for left, right in [0,15], or false if either operand is
// out of range.
func (Table) Read(left, right fr.Element) (fr.Element, bool) {
	a, aOK := toNibble(left)
	b, bOK := toNibble(right)
	if !aOK || !bOK {
		return fr.Element{}, false
	}
	var out fr.Element
	out.SetUint64(uint64(a ^ b))
	return out, true
}

func toNibble(v fr.Element) (uint8, bool) {
	if !v.IsUint64() {
		return 0, false
	}
	u := v.Uint64()
	if u >= width {
		return 0, false
	}
	return uint8(u), true
}

// Preprocess materializes the table's three columns (left operand, right
// operand, output) in row-major (a, b) order and commits them.
func (t Table) Preprocess(srs *kzg.SRS, n uint64) (*table.PreProcessedTable, error) {
	if n != width*width {
		return nil, fmt.Errorf("xortable: size must be %d, got %d", width*width, n)
	}

	col1 := multiset.New()
	col2 := multiset.New()
	col3 := multiset.New()

	for a := uint64(0); a < width; a++ {
		for b := uint64(0); b < width; b++ {
			var left, right fr.Element
			left.SetUint64(a)
			right.SetUint64(b)
			out, _ := t.Read(left, right)

			col1.Push(left)
			col2.Push(right)
			col3.Push(out)
		}
	}

	return table.Commit(col1, col2, col3, srs, n)
}
