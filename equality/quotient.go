package equality

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// quotientExpansionFactor is how many times larger the coset domain is than
// the protocol's domain H. The quotient identity's numerator has degree
// below 4n (a linear factor, two degree-(n-1) Lagrange selectors, and
// products of up to three degree-(n-1) polynomials), so a coset of size 4n
// samples it without aliasing.
const quotientExpansionFactor = 4

// toCosetLagrange evaluates a degree-<n polynomial, given in canonical form
// over H, at every point of a coset of domainBig. The result is in
// bit-reversed order, matching domainBig.FFT's coset convention.
func toCosetLagrange(canonical []fr.Element, domainBig *fft.Domain) []fr.Element {
	out := make([]fr.Element, domainBig.Cardinality)
	copy(out, canonical)
	domainBig.FFT(out, fft.DIF, true)
	return out
}

func bitReversedIndex(i int, nn uint64) int {
	return int(bits.Reverse64(uint64(i)) >> nn)
}

// vanishingOnCoset returns (x_i^n - 1) for i = 0..expansionFactor-1, the
// expansionFactor distinct values x^n takes as x ranges over the coset
// FrMultiplicativeGen * domainBig (the cardinality of H divides
// domainBig.Cardinality, so x^n cycles with period expansionFactor).
func vanishingOnCoset(domainBig *fft.Domain, n uint64) []fr.Element {
	ef := domainBig.Cardinality / n
	vals := make([]fr.Element, ef)
	vals[0].Exp(domainBig.FrMultiplicativeGen, new(big.Int).SetUint64(n))
	ratio := new(fr.Element).Exp(domainBig.Generator, new(big.Int).SetUint64(n))
	for k := uint64(1); k < ef; k++ {
		vals[k].Mul(&vals[k-1], ratio)
	}
	var one fr.Element
	one.SetOne()
	for k := range vals {
		vals[k].Sub(&vals[k], &one)
	}
	return vals
}

// invLinearFactors returns 1/(x_i - root) for every point x_i of the coset,
// for a fixed root (either 1, for the first-point selector, or the domain's
// last point, for the last-point selector).
func invLinearFactors(domainBig *fft.Domain, root fr.Element) []fr.Element {
	m := int(domainBig.Cardinality)
	den := make([]fr.Element, m)
	x := domainBig.FrMultiplicativeGen
	for i := 0; i < m; i++ {
		den[i].Sub(&x, &root)
		x.Mul(&x, &domainBig.Generator)
	}
	return fr.BatchInvert(den)
}

// quotientNumerator builds, in bit-reversed Lagrange form over domainBig,
// the numerator of the quotient identity:
//
//	L1(X)*(Z(X)-1)
//	  + alphaPrime*( Z(X)(1+beta)(gamma+F(X))(gamma(1+beta)+T(X)+beta*T(Xw))
//	                 - Z(Xw)(gamma(1+beta)+H1(X)+beta*H1(Xw))(gamma(1+beta)+H2(X)+beta*H2(Xw)) )
//	  + alphaPrime^2*Ln(X)*(H1(X)-H2(Xw))
//
// lastPoint is the small domain's last element, g^(n-1), used both as the
// root of the Ln selector and to locate shifted (Xw) evaluations.
func quotientNumerator(cF, cT, cH1, cH2, cZ []fr.Element, n uint64, beta, gamma, alphaPrime fr.Element, domainSmall *fft.Domain) []fr.Element {
	domainBig := fft.NewDomain(n * quotientExpansionFactor)
	m := int(domainBig.Cardinality)
	shift := int(quotientExpansionFactor)
	nn := uint64(64 - bits.TrailingZeros64(domainBig.Cardinality))

	lF := toCosetLagrange(cF, domainBig)
	lT := toCosetLagrange(cT, domainBig)
	lH1 := toCosetLagrange(cH1, domainBig)
	lH2 := toCosetLagrange(cH2, domainBig)
	lZ := toCosetLagrange(cZ, domainBig)

	var one fr.Element
	one.SetOne()
	var onePlusBeta, gammaTimesOnePlusBeta fr.Element
	onePlusBeta.Add(&one, &beta)
	gammaTimesOnePlusBeta.Mul(&onePlusBeta, &gamma)

	lastPoint := new(fr.Element).Exp(domainSmall.Generator, new(big.Int).SetUint64(n-1))

	xn := vanishingOnCoset(domainBig, n)
	invFirst := invLinearFactors(domainBig, one)
	invLast := invLinearFactors(domainBig, *lastPoint)

	numerator := make([]fr.Element, m)

	var m1, u, n1 fr.Element
	for i := 0; i < m; i++ {
		idx := bitReversedIndex(i, nn)
		shiftedIdx := bitReversedIndex((i+shift)%m, nn)

		// m1 = Z*(1+beta)*(gamma+F)*(gamma(1+beta)+T+beta*T(Xw))
		m1.Mul(&onePlusBeta, &lZ[idx])
		u.Add(&gamma, &lF[idx])
		m1.Mul(&m1, &u)
		u.Mul(&beta, &lT[shiftedIdx]).
			Add(&u, &lT[idx]).
			Add(&u, &gammaTimesOnePlusBeta)
		m1.Mul(&m1, &u)

		// n1 = Z(Xw)*(gamma(1+beta)+H1+beta*H1(Xw))*(gamma(1+beta)+H2+beta*H2(Xw))
		n1.Mul(&beta, &lH1[shiftedIdx]).
			Add(&n1, &lH1[idx]).
			Add(&n1, &gammaTimesOnePlusBeta)
		u.Mul(&beta, &lH2[shiftedIdx]).
			Add(&u, &lH2[idx]).
			Add(&u, &gammaTimesOnePlusBeta)
		n1.Mul(&n1, &u).
			Mul(&n1, &lZ[shiftedIdx])

		middle := new(fr.Element).Sub(&m1, &n1)

		var l1 fr.Element
		l1.Sub(&lZ[idx], &one).
			Mul(&l1, &xn[i%quotientExpansionFactor]).
			Mul(&l1, &invFirst[i])

		var lnH1H2 fr.Element
		lnH1H2.Sub(&lH1[idx], &lH2[shiftedIdx]).
			Mul(&lnH1H2, &xn[i%quotientExpansionFactor]).
			Mul(&lnH1H2, &invLast[i])

		var res fr.Element
		res.Mul(&lnH1H2, &alphaPrime).
			Add(&res, middle).
			Mul(&res, &alphaPrime).
			Add(&res, &l1)

		numerator[idx] = res
	}

	return numerator
}

// buildQuotient divides quotientNumerator's result by the vanishing
// polynomial X^n-1 pointwise on the coset and returns Q in canonical basis.
func buildQuotient(cF, cT, cH1, cH2, cZ []fr.Element, n uint64, beta, gamma, alphaPrime fr.Element, domainSmall *fft.Domain) []fr.Element {
	domainBig := fft.NewDomain(n * quotientExpansionFactor)
	m := int(domainBig.Cardinality)
	nn := uint64(64 - bits.TrailingZeros64(domainBig.Cardinality))

	numerator := quotientNumerator(cF, cT, cH1, cH2, cZ, n, beta, gamma, alphaPrime, domainSmall)

	xn := vanishingOnCoset(domainBig, n)
	invXn := make([]fr.Element, quotientExpansionFactor)
	for k := range xn {
		invXn[k].Inverse(&xn[k])
	}

	quotient := make([]fr.Element, m)
	for i := 0; i < m; i++ {
		idx := bitReversedIndex(i, nn)
		quotient[idx].Mul(&numerator[idx], &invXn[i%quotientExpansionFactor])
	}

	domainBig.FFTInverse(quotient, fft.DIT, true)
	return quotient
}
