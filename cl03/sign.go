package cl03

import (
	"io"
	"math/big"
)

// computeQ computes a_0 * Prod(a_i^m_i) * b^s mod N, the value whose
// e-th root a signature's v must equal, per spec.md 4.2.2. When
// commitment is non-nil its value is folded in as a pre-committed factor,
// matching the blind-signing variant of the same equation.
func computeQ(pk *PublicKey, messages []*big.Int, s *big.Int, commitment *big.Int) *big.Int {
	q := new(big.Int).Set(pk.A0)
	for i, m := range messages {
		if m == nil {
			continue
		}
		q.Mul(q, new(big.Int).Exp(pk.A[i], m, pk.N))
		q.Mod(q, pk.N)
	}
	q.Mul(q, new(big.Int).Exp(pk.B, s, pk.N))
	q.Mod(q, pk.N)
	if commitment != nil {
		q.Mul(q, commitment)
		q.Mod(q, pk.N)
	}
	return q
}

// Sign issues a CL03 signature over messages, per spec.md 4.2.2: draw a
// prime exponent e in the ciphersuite's range, a randomizer s, compute
// Q = a_0 * Prod(a_i^m_i) * b^s mod N, then v = Q^(e^-1 mod phi(N)/4).
func Sign(cs *Ciphersuite, sk *PrivateKey, pk *PublicKey, messages []*big.Int, rng io.Reader) (*Signature, error) {
	if len(messages) != pk.MessageCount {
		return nil, ErrInconsistentLength
	}
	rng = defaultRNG(rng)

	e, err := randomPrimeExponent(cs, rng)
	if err != nil {
		return nil, err
	}
	s, err := randomBits(rng, cs.LS)
	if err != nil {
		return nil, err
	}

	phi := phiOver4(halve(sk.P), halve(sk.Q))
	eInv, err := modInverse(e, phi)
	if err != nil {
		return nil, err
	}

	q := computeQ(pk, messages, s, nil)
	v := new(big.Int).Exp(q, eInv, pk.N)

	return &Signature{E: e, S: s, V: v}, nil
}

// halve returns (x-1)/2, recovering p' from p = 2p'+1.
func halve(x *big.Int) *big.Int {
	t := new(big.Int).Sub(x, big1)
	return t.Rsh(t, 1)
}

// randomPrimeExponent draws a prime e in [2^(LE-1), 2^(LE-1)+2^LZero), per
// spec.md 4.2.2 step 1.
func randomPrimeExponent(cs *Ciphersuite, rng io.Reader) (*big.Int, error) {
	lo := new(big.Int).Lsh(big1, uint(cs.LE-1))
	span := new(big.Int).Lsh(big1, uint(cs.LZero))
	hi := new(big.Int).Add(lo, span)

	for {
		candidate, err := randomRange(rng, lo, hi)
		if err != nil {
			return nil, err
		}
		candidate.SetBit(candidate, 0, 1)
		if candidate.Cmp(lo) >= 0 && candidate.Cmp(hi) < 0 && candidate.ProbablyPrime(20) {
			return candidate, nil
		}
	}
}

// Verify checks a CL03 signature against messages, per spec.md 4.2.2:
// v^e == Q (mod N) and e is in the ciphersuite's allowed range.
func Verify(cs *Ciphersuite, pk *PublicKey, sig *Signature, messages []*big.Int) error {
	return VerifyMultiAttr(cs, pk, sig, messages)
}

// VerifyMultiAttr checks a CL03 signature over the full set of message
// attributes; it is the same check as Verify, named to mirror the
// original API's distinction between single- and multi-attribute
// verification entry points.
func VerifyMultiAttr(cs *Ciphersuite, pk *PublicKey, sig *Signature, messages []*big.Int) error {
	if len(messages) != pk.MessageCount {
		return ErrInconsistentLength
	}

	lo := new(big.Int).Lsh(big1, uint(cs.LE-1))
	hi := new(big.Int).Add(lo, new(big.Int).Lsh(big1, uint(cs.LZero)))
	if sig.E.Cmp(lo) < 0 || sig.E.Cmp(hi) >= 0 {
		return ErrInvalidSignature
	}

	q := computeQ(pk, messages, sig.S, nil)
	ve := new(big.Int).Exp(sig.V, sig.E, pk.N)
	if ve.Cmp(q) != 0 {
		return ErrInvalidSignature
	}
	return nil
}
