package equality

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/nyxzk/plookup/multiset"
	"github.com/nyxzk/plookup/transcript"
)

// grandProduct computes Z in Lagrange basis (natural order), the running
// product of ratios of the two halves of the sorted f||t concatenation. Z[0]
// is always 1; Z[i] telescopes the partial products so that, if f truly is a
// sub-multiset of t, the accumulated product over the whole domain closes
// back to 1 by the time the identity wraps at the domain's last point.
func grandProduct(lf, lt, lh1, lh2 []fr.Element, beta, gamma fr.Element) []fr.Element {
	n := len(lt)
	z := make([]fr.Element, n)

	var onePlusBeta, gammaTimesOnePlusBeta fr.Element
	onePlusBeta.SetOne().Add(&onePlusBeta, &beta)
	gammaTimesOnePlusBeta.Mul(&onePlusBeta, &gamma)

	denom := make([]fr.Element, n-1)
	var u fr.Element
	for i := 0; i < n-1; i++ {
		denom[i].Mul(&beta, &lh1[i+1]).
			Add(&denom[i], &lh1[i]).
			Add(&denom[i], &gammaTimesOnePlusBeta)

		u.Mul(&beta, &lh2[i+1]).
			Add(&u, &lh2[i]).
			Add(&u, &gammaTimesOnePlusBeta)

		denom[i].Mul(&denom[i], &u)
	}
	denom = fr.BatchInvert(denom)

	z[0].SetOne()
	var a, b fr.Element
	for i := 0; i < n-1; i++ {
		a.Add(&gamma, &lf[i])

		b.Mul(&beta, &lt[i+1]).
			Add(&b, &lt[i]).
			Add(&b, &gammaTimesOnePlusBeta)

		a.Mul(&a, &b).Mul(&a, &onePlusBeta)

		z[i+1].Mul(&z[i], &a).Mul(&z[i+1], &denom[i])
	}

	return z
}

func interpolate(values []fr.Element, domain *fft.Domain) []fr.Element {
	return multiset.FromSlice(values).ToPolynomial(domain)
}

func evalPoly(coeffs []fr.Element, x fr.Element) fr.Element {
	var result fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// Prove builds a multiset-equality proof that f is a sub-multiset of t. f
// must have length n-1 and t length n, n a power of two, matching the
// padding convention the lookup driver's to_multiset step produces.
func Prove(f, t *multiset.MultiSet, srs *kzg.SRS, tr *transcript.Transcript) (*Proof, error) {
	n := t.Len()
	if f.Len() != n-1 {
		return nil, fmt.Errorf("equality: len(f)=%d must equal len(t)-1=%d", f.Len(), n-1)
	}
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("equality: len(t)=%d is not a power of two", n)
	}

	domain := fft.NewDomain(uint64(n))

	padded := make([]fr.Element, 0, n)
	padded = append(padded, f.Values()...)
	padded = append(padded, f.Last())
	fPadded := multiset.FromSlice(padded)

	s := f.Concatenate(t).Sort()
	h1, h2 := s.Halve()

	cF := fPadded.ToPolynomial(domain)
	cT := t.ToPolynomial(domain)
	cH1 := h1.ToPolynomial(domain)
	cH2 := h2.ToPolynomial(domain)

	commitF, err := kzg.Commit(cF, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing F: %w", err)
	}
	commitT, err := kzg.Commit(cT, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing T: %w", err)
	}
	commitH1, err := kzg.Commit(cH1, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing H1: %w", err)
	}
	commitH2, err := kzg.Commit(cH2, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing H2: %w", err)
	}

	if err := tr.AppendCommitment("beta", commitF); err != nil {
		return nil, err
	}
	if err := tr.AppendCommitment("beta", commitT); err != nil {
		return nil, err
	}
	if err := tr.AppendCommitment("beta", commitH1); err != nil {
		return nil, err
	}
	if err := tr.AppendCommitment("beta", commitH2); err != nil {
		return nil, err
	}
	beta, err := tr.ChallengeScalar("beta")
	if err != nil {
		return nil, err
	}
	if err := tr.AppendScalar("gamma", beta); err != nil {
		return nil, err
	}
	gamma, err := tr.ChallengeScalar("gamma")
	if err != nil {
		return nil, err
	}

	lz := grandProduct(fPadded.Values(), t.Values(), h1.Values(), h2.Values(), beta, gamma)
	cZ := interpolate(lz, domain)
	commitZ, err := kzg.Commit(cZ, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing Z: %w", err)
	}

	if err := tr.AppendCommitment("alpha_prime", commitZ); err != nil {
		return nil, err
	}
	alphaPrime, err := tr.ChallengeScalar("alpha_prime")
	if err != nil {
		return nil, err
	}

	cQ := buildQuotient(cF, cT, cH1, cH2, cZ, uint64(n), beta, gamma, alphaPrime, domain)
	commitQ, err := kzg.Commit(cQ, srs)
	if err != nil {
		return nil, fmt.Errorf("equality: committing Q: %w", err)
	}

	if err := tr.AppendCommitment("z", commitQ); err != nil {
		return nil, err
	}
	z, err := tr.ChallengeScalar("z")
	if err != nil {
		return nil, err
	}

	var zOmega fr.Element
	zOmega.Mul(&z, &domain.Generator)

	evals := Evaluations{
		F:       evalPoly(cF, z),
		T:       evalPoly(cT, z),
		TOmega:  evalPoly(cT, zOmega),
		H1:      evalPoly(cH1, z),
		H1Omega: evalPoly(cH1, zOmega),
		H2:      evalPoly(cH2, z),
		H2Omega: evalPoly(cH2, zOmega),
		Z:       evalPoly(cZ, z),
		ZOmega:  evalPoly(cZ, zOmega),
		Q:       evalPoly(cQ, z),
	}

	hFunc := newOpeningHash()

	openingZ, err := kzg.BatchOpenSinglePoint(
		[][]fr.Element{cF, cT, cH1, cH2, cZ, cQ},
		[]kzg.Digest{commitF, commitT, commitH1, commitH2, commitZ, commitQ},
		&z,
		hFunc,
		domain,
		srs,
	)
	if err != nil {
		return nil, fmt.Errorf("equality: opening at z: %w", err)
	}

	openingZOmega, err := kzg.BatchOpenSinglePoint(
		[][]fr.Element{cT, cH1, cH2, cZ},
		[]kzg.Digest{commitT, commitH1, commitH2, commitZ},
		&zOmega,
		hFunc,
		domain,
		srs,
	)
	if err != nil {
		return nil, fmt.Errorf("equality: opening at z*omega: %w", err)
	}

	return &Proof{
		N:             uint64(n),
		F:             commitF,
		T:             commitT,
		H1:            commitH1,
		H2:            commitH2,
		Z:             commitZ,
		Q:             commitQ,
		Evaluations:   evals,
		OpeningZ:      openingZ,
		OpeningZOmega: openingZOmega,
	}, nil
}
