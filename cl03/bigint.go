package cl03

import (
	"crypto/rand"
	"io"
	"math/big"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big4 = big.NewInt(4)
)

// randomBits draws a uniform random integer in [0, 2^bits) from rng.
func randomBits(rng io.Reader, bits int) (*big.Int, error) {
	byteLen := (bits + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf)
	excess := byteLen*8 - bits
	if excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v, nil
}

// randomRange draws a uniform integer in [lo, hi) by over-reading entropy
// and reducing, matching bbsplus.ConstantTimeRandom's approach to avoid
// variable-time rejection sampling.
func randomRange(rng io.Reader, lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	if span.Sign() <= 0 {
		return nil, ErrInvalidScalar
	}
	byteLen := (span.BitLen() + 64 + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf)
	v.Mod(v, span)
	v.Add(v, lo)
	return v, nil
}

// safePrime draws a prime p = 2p'+1 of the given bit length such that p'
// is also prime, retrying until the Miller-Rabin test at rounds
// certainty passes for both. This is CPU-bound and, per spec.md 5, the
// only operation expected to take seconds.
func safePrime(rng io.Reader, bits, rounds int) (p, pPrime *big.Int, err error) {
	for {
		candidate, err := randomBits(rng, bits-1)
		if err != nil {
			return nil, nil, err
		}
		candidate.SetBit(candidate, bits-2, 1) // force top bit: p' has exactly bits-1 bits
		candidate.SetBit(candidate, 0, 1)       // force odd

		if !candidate.ProbablyPrime(rounds) {
			continue
		}
		p := new(big.Int).Lsh(candidate, 1)
		p.Add(p, big1)
		if !p.ProbablyPrime(rounds) {
			continue
		}
		return p, candidate, nil
	}
}

// randomQR draws a uniform element of QR_N (the quadratic residues mod N)
// by squaring a uniform unit: x <- [2, n), a = x^2 mod n.
func randomQR(rng io.Reader, n *big.Int) (*big.Int, error) {
	x, err := randomRange(rng, big2, n)
	if err != nil {
		return nil, err
	}
	a := new(big.Int).Exp(x, big2, n)
	if a.Sign() == 0 {
		return randomQR(rng, n)
	}
	return a, nil
}

func defaultRNG(rng io.Reader) io.Reader {
	if rng == nil {
		return rand.Reader
	}
	return rng
}

// phiOver4 computes phi(N)/4 = p'*q' for N = (2p'+1)(2q'+1).
func phiOver4(pPrime, qPrime *big.Int) *big.Int {
	return new(big.Int).Mul(pPrime, qPrime)
}

// modInverse computes a^-1 mod n via the extended Euclidean algorithm.
// Unlike bbsplus's Fermat-based inverse, n here (phi(N)/4) is not prime,
// so Fermat's little theorem doesn't apply; math/big's ModInverse is the
// only available path for a composite modulus.
func modInverse(a, n *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, n)
	if inv == nil {
		return nil, ErrInvalidKeyMaterial
	}
	return inv, nil
}
