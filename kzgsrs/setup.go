// Package kzgsrs obtains the KZG10 structured reference string the core
// argument treats as an opaque external dependency, scoped to BLS12-381
// only.
package kzgsrs

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/rs/zerolog/log"
)

// Conf selects how a structured reference string is obtained.
type Conf int

const (
	// Insecure derives a deterministic SRS from a seed using a toxic-waste
	// scalar computed in-process. Suitable for tests and demos only: the
	// "trusted" secret is reconstructible by anyone who knows the seed.
	Insecure Conf = iota
	// External expects an SRS produced out of band (e.g. from a real
	// ceremony transcript) and only loads it; see Load.
	External
)

// New builds an SRS able to commit to polynomials of degree up to maxDegree.
// For Conf == Insecure, seed deterministically derives the toxic waste; for
// Conf == External, seed is ignored and callers should use Load instead.
func New(conf Conf, maxDegree uint64, seed []byte) (*kzg.SRS, error) {
	switch conf {
	case Insecure:
		secret := seedToScalar(seed)
		srs, err := kzg.NewSRS(maxDegree+1, secret)
		if err != nil {
			return nil, fmt.Errorf("kzgsrs: building insecure SRS: %w", err)
		}
		log.Debug().Uint64("maxDegree", maxDegree).Msg("kzgsrs: built deterministic insecure SRS")
		return srs, nil
	case External:
		return nil, fmt.Errorf("kzgsrs: External configuration requires Load, not New")
	default:
		return nil, fmt.Errorf("kzgsrs: unknown configuration %d", conf)
	}
}

// seedToScalar deterministically maps an arbitrary-length seed to a scalar
// usable as KZG toxic waste, so the same seed always yields the same SRS.
func seedToScalar(seed []byte) *big.Int {
	digest := sha256.Sum256(seed)
	return new(big.Int).SetBytes(digest[:])
}

// Load reads an SRS previously written with Save, or produced by any tool
// using gnark-crypto's own binary encoding of an SRS's proving and
// verifying halves as separate streams.
func Load(pk, vk io.Reader) (*kzg.SRS, error) {
	var srs kzg.SRS
	if _, err := srs.Pk.ReadFrom(pk); err != nil {
		return nil, fmt.Errorf("kzgsrs: reading proving key: %w", err)
	}
	if _, err := srs.Vk.ReadFrom(vk); err != nil {
		return nil, fmt.Errorf("kzgsrs: reading verifying key: %w", err)
	}
	return &srs, nil
}

// Save serializes an SRS's proving and verifying halves with gnark-crypto's
// own binary encoding.
func Save(pk, vk io.Writer, srs *kzg.SRS) error {
	if _, err := srs.Pk.WriteTo(pk); err != nil {
		return fmt.Errorf("kzgsrs: writing proving key: %w", err)
	}
	if _, err := srs.Vk.WriteTo(vk); err != nil {
		return fmt.Errorf("kzgsrs: writing verifying key: %w", err)
	}
	return nil
}
