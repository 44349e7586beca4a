package equality

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/nyxzk/plookup/transcript"
)

// ErrIdentityFailed is returned when the quotient identity does not hold at
// the Fiat-Shamir evaluation point, meaning f is not a sub-multiset of t (or
// the proof was tampered with).
var ErrIdentityFailed = errors.New("equality: quotient identity does not hold at z")

// Verify checks p against srs, replaying the same transcript sequence Prove
// used to derive beta, gamma, alpha_prime and z, then checks both KZG batch
// openings and the quotient identity itself.
func (p *Proof) Verify(srs *kzg.SRS, tr *transcript.Transcript) (bool, error) {
	if p.N == 0 || p.N&(p.N-1) != 0 {
		return false, fmt.Errorf("equality: proof size %d is not a power of two", p.N)
	}
	domain := fft.NewDomain(p.N)

	if err := tr.AppendCommitment("beta", p.F); err != nil {
		return false, err
	}
	if err := tr.AppendCommitment("beta", p.T); err != nil {
		return false, err
	}
	if err := tr.AppendCommitment("beta", p.H1); err != nil {
		return false, err
	}
	if err := tr.AppendCommitment("beta", p.H2); err != nil {
		return false, err
	}
	beta, err := tr.ChallengeScalar("beta")
	if err != nil {
		return false, err
	}
	if err := tr.AppendScalar("gamma", beta); err != nil {
		return false, err
	}
	gamma, err := tr.ChallengeScalar("gamma")
	if err != nil {
		return false, err
	}

	if err := tr.AppendCommitment("alpha_prime", p.Z); err != nil {
		return false, err
	}
	alphaPrime, err := tr.ChallengeScalar("alpha_prime")
	if err != nil {
		return false, err
	}

	if err := tr.AppendCommitment("z", p.Q); err != nil {
		return false, err
	}
	z, err := tr.ChallengeScalar("z")
	if err != nil {
		return false, err
	}

	var zOmega fr.Element
	zOmega.Mul(&z, &domain.Generator)

	hFunc := newOpeningHash()

	if err := kzg.BatchVerifySinglePoint(
		[]kzg.Digest{p.F, p.T, p.H1, p.H2, p.Z, p.Q},
		&p.OpeningZ,
		hFunc,
		srs,
	); err != nil {
		return false, fmt.Errorf("equality: batch opening at z: %w", err)
	}

	if err := kzg.BatchVerifySinglePoint(
		[]kzg.Digest{p.T, p.H1, p.H2, p.Z},
		&p.OpeningZOmega,
		hFunc,
		srs,
	); err != nil {
		return false, fmt.Errorf("equality: batch opening at z*omega: %w", err)
	}

	if !identityHolds(p.Evaluations, p.N, z, zOmega, beta, gamma, alphaPrime, domain) {
		return false, ErrIdentityFailed
	}

	return true, nil
}

// identityHolds checks the quotient identity at z:
//
//	L1(z)(Z(z)-1) + alphaPrime*middle(z) + alphaPrime^2*Ln(z)(H1(z)-H2(zw)) == Q(z)*(z^n-1)
func identityHolds(e Evaluations, n uint64, z, zOmega, beta, gamma, alphaPrime fr.Element, domain *fft.Domain) bool {
	var one fr.Element
	one.SetOne()

	var zn fr.Element
	zn.Exp(z, new(big.Int).SetUint64(n))
	var zhZ fr.Element
	zhZ.Sub(&zn, &one)

	var denFirst, denLast, lastPoint fr.Element
	denFirst.Sub(&z, &one)
	lastPoint.Exp(domain.Generator, new(big.Int).SetUint64(n-1))
	denLast.Sub(&z, &lastPoint)

	var l1, ln fr.Element
	l1.Div(&zhZ, &denFirst)
	ln.Div(&zhZ, &denLast)

	var term1 fr.Element
	term1.Sub(&e.Z, &one).Mul(&term1, &l1)

	var onePlusBeta, gammaTimesOnePlusBeta fr.Element
	onePlusBeta.Add(&one, &beta)
	gammaTimesOnePlusBeta.Mul(&onePlusBeta, &gamma)

	var m1, u fr.Element
	m1.Mul(&onePlusBeta, &e.Z)
	u.Add(&gamma, &e.F)
	m1.Mul(&m1, &u)
	u.Mul(&beta, &e.TOmega).Add(&u, &e.T).Add(&u, &gammaTimesOnePlusBeta)
	m1.Mul(&m1, &u)

	var n1 fr.Element
	n1.Mul(&beta, &e.H1Omega).Add(&n1, &e.H1).Add(&n1, &gammaTimesOnePlusBeta)
	u.Mul(&beta, &e.H2Omega).Add(&u, &e.H2).Add(&u, &gammaTimesOnePlusBeta)
	n1.Mul(&n1, &u).Mul(&n1, &e.ZOmega)

	var term2 fr.Element
	term2.Sub(&m1, &n1)

	var term3 fr.Element
	term3.Sub(&e.H1, &e.H2Omega).Mul(&term3, &ln)

	var lhs, alphaPrime2 fr.Element
	alphaPrime2.Mul(&alphaPrime, &alphaPrime)
	lhs.Mul(&term2, &alphaPrime)
	lhs.Add(&lhs, &term1)
	var scaledTerm3 fr.Element
	scaledTerm3.Mul(&term3, &alphaPrime2)
	lhs.Add(&lhs, &scaledTerm3)

	var rhs fr.Element
	rhs.Mul(&e.Q, &zhZ)

	return lhs.Equal(&rhs)
}
