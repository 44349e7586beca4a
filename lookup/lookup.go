// Package lookup drives the multiset-equality argument over a concrete
// three-column table: it records (left, right, output) reads, aggregates
// both the witness and the preprocessed table into single sequences under a
// random challenge, and hands the result to the equality package.
package lookup

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/rs/zerolog/log"

	"github.com/nyxzk/plookup/equality"
	"github.com/nyxzk/plookup/multiset"
	"github.com/nyxzk/plookup/table"
	"github.com/nyxzk/plookup/transcript"
)

// ErrTooManyReads is returned by ToMultiset when more reads were recorded
// than the preprocessed table has room to pad a witness against.
var ErrTooManyReads = errors.New("lookup: too many reads for table capacity")

// ErrWitnessTooLarge is returned by ToMultiset when the aggregated witness
// is not strictly shorter than the aggregated table, violating the f
// sub-multiset of t size requirement equality.Prove depends on.
var ErrWitnessTooLarge = errors.New("lookup: witness is not strictly shorter than table")

// LookUp records reads against a table and builds the witness multiset the
// equality argument proves is a sub-multiset of the aggregated table.
type LookUp struct {
	table table.Table

	leftWires   *multiset.MultiSet
	rightWires  *multiset.MultiSet
	outputWires *multiset.MultiSet
}

// New returns a LookUp driving reads against table t.
func New(t table.Table) *LookUp {
	return &LookUp{
		table:       t,
		leftWires:   multiset.New(),
		rightWires:  multiset.New(),
		outputWires: multiset.New(),
	}
}

// Read looks up (left, right) in the underlying table. If found, the read
// and its output are recorded as witness wires and Read returns true;
// otherwise nothing is recorded and Read returns false.
func (l *LookUp) Read(left, right fr.Element) bool {
	output, ok := l.table.Read(left, right)
	if !ok {
		log.Debug().Stringer("left", &left).Stringer("right", &right).Msg("lookup: read missed table")
		return false
	}
	l.leftWires.Push(left)
	l.rightWires.Push(right)
	l.outputWires.Push(output)
	log.Debug().Stringer("left", &left).Stringer("right", &right).Stringer("output", &output).Msg("lookup: read recorded")
	return true
}

// ToMultiset aggregates the preprocessed table's three columns, and
// separately the witness's three wire sequences, under the single challenge
// alpha, padding the witness to one less than the table's size. It returns
// (witness, table) in the (f, t) order equality.Prove expects. An empty
// reads set is permitted and degenerates to a trivial proof rather than an
// error.
func (l *LookUp) ToMultiset(pp *table.PreProcessedTable, alpha fr.Element) (f, t *multiset.MultiSet, err error) {
	mergedTable := multiset.Aggregate([]*multiset.MultiSet{pp.T1, pp.T2, pp.T3}, alpha).Sort()

	if l.leftWires.Len() == 0 {
		// An empty reads set is permitted and degenerates to a trivial
		// witness: repeat the table's own first row, which is certainly a
		// valid entry, so Last() below always has something to pad with.
		l.leftWires.Push(pp.T1.Values()[0])
		l.rightWires.Push(pp.T2.Values()[0])
		l.outputWires.Push(pp.T3.Values()[0])
	}

	padBy := pp.N - 1 - l.leftWires.Len()
	if padBy < 0 {
		return nil, nil, fmt.Errorf("%w: %d reads exceed table capacity %d", ErrTooManyReads, l.leftWires.Len(), pp.N-1)
	}

	l.leftWires.Extend(padBy, l.leftWires.Last())
	l.rightWires.Extend(padBy, l.rightWires.Last())
	l.outputWires.Extend(padBy, l.outputWires.Last())

	mergedWitness := multiset.Aggregate([]*multiset.MultiSet{l.leftWires, l.rightWires, l.outputWires}, alpha)

	if mergedWitness.Len() >= mergedTable.Len() {
		return nil, nil, fmt.Errorf("%w: witness length %d, table length %d", ErrWitnessTooLarge, mergedWitness.Len(), mergedTable.Len())
	}

	return mergedWitness, mergedTable, nil
}

// Prove squeezes alpha from tr, aggregates witness and table under it, and
// produces a multiset-equality proof that the witness is a sub-multiset of
// the table.
//
// alpha is squeezed before any commitment exists in this transcript, unlike
// every later challenge (beta, gamma, alpha_prime, z), which are only
// squeezed after the values they must bind (F, H1, H2, ...) have been
// appended. This is a deliberate asymmetry, not an oversight: alpha folds
// the table and witness columns into the single sequences (f, t) that
// equality.Prove commits to, so it cannot itself depend on those
// commitments. Every challenge from beta onward binds the commitments that
// exist by the time it's squeezed, closing the one gap a premature squeeze
// would otherwise leave.
func (l *LookUp) Prove(srs *kzg.SRS, pp *table.PreProcessedTable, tr *transcript.Transcript) (*equality.Proof, error) {
	alpha, err := tr.ChallengeScalar("alpha")
	if err != nil {
		return nil, fmt.Errorf("lookup: squeezing alpha: %w", err)
	}
	if err := tr.AppendScalar("beta", alpha); err != nil {
		return nil, err
	}

	reads := l.leftWires.Len()

	f, t, err := l.ToMultiset(pp, alpha)
	if err != nil {
		return nil, err
	}

	log.Info().Int("n", pp.N).Int("reads", reads).Msg("lookup: proving reads are a sub-multiset of the table")

	return equality.Prove(f, t, srs, tr)
}
