// Package equality implements the multiset-equality argument: given a
// witness sequence f and a table sequence t with f a sub-multiset of t, it
// builds the grand-product polynomial Z, the quotient polynomial Q, commits
// everything with KZG, and produces a proof an independent verifier can
// check against the public commitments alone.
package equality

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// Evaluations collects every polynomial evaluation the verifier needs to
// recompute the quotient identity at the Fiat-Shamir point z, plus the
// "shifted" evaluations at z*omega the identity's rotation terms require.
type Evaluations struct {
	F fr.Element

	T      fr.Element
	TOmega fr.Element

	H1      fr.Element
	H1Omega fr.Element

	H2      fr.Element
	H2Omega fr.Element

	Z      fr.Element
	ZOmega fr.Element

	Q fr.Element
}

// Proof bundles commitments to F, T, H1, H2, Z and Q. T is committed in
// addition to F, H1, H2, Z and Q because, unlike the preprocessed table's
// per-column commitments, T is the *sorted* merged-table polynomial:
// sorting is not a linear operation, so the verifier cannot derive
// Commit(T) from the public per-column commitments the way it could for an
// unsorted linear combination. Without a commitment to T, T(z) and T(zw)
// could not be opened or checked.
type Proof struct {
	N uint64

	F, T, H1, H2, Z, Q kzg.Digest

	Evaluations Evaluations

	// OpeningZ batches F, T, H1, H2, Z, Q at z.
	OpeningZ kzg.BatchOpeningProof
	// OpeningZOmega batches T, H1, H2, Z at z*omega.
	OpeningZOmega kzg.BatchOpeningProof
}
