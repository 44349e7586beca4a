package equality

import (
	"crypto/sha256"
	"hash"
)

// newOpeningHash returns the hash KZG's batch-opening machinery uses to
// derive its own internal linear-combination randomness. It is independent
// of the protocol transcript: batching several polynomials into a single
// opening proof is an implementation detail of the commitment scheme, not a
// protocol challenge, so it does not need to be bound into the Fiat-Shamir
// transcript the two sides exchange.
func newOpeningHash() hash.Hash {
	return sha256.New()
}
