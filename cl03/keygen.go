package cl03

import (
	"io"
	"math/big"
)

// GenerateKeyPair draws two distinct safe primes p = 2p'+1, q = 2q'+1,
// each of bit length cs.LN/2, and derives the public base generators
// (a_0, a_1..a_messageCount, b, c) as random quadratic residues mod
// N = pq, per spec.md 4.2.1. Safe-prime generation is the only CPU-bound
// operation in this package and can take seconds at cs.LN = 2048.
func GenerateKeyPair(cs *Ciphersuite, messageCount int, rng io.Reader) (*KeyPair, error) {
	if messageCount < 1 {
		return nil, ErrInvalidKeyMaterial
	}
	rng = defaultRNG(rng)

	p, _, err := safePrime(rng, cs.LN/2, cs.MillerRabinRounds)
	if err != nil {
		return nil, err
	}
	var q *big.Int
	for {
		q, _, err = safePrime(rng, cs.LN/2, cs.MillerRabinRounds)
		if err != nil {
			return nil, err
		}
		if q.Cmp(p) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p, q)

	a0, err := randomQR(rng, n)
	if err != nil {
		return nil, err
	}
	a := make([]*big.Int, messageCount)
	for i := range a {
		a[i], err = randomQR(rng, n)
		if err != nil {
			return nil, err
		}
	}
	b, err := randomQR(rng, n)
	if err != nil {
		return nil, err
	}
	c, err := randomQR(rng, n)
	if err != nil {
		return nil, err
	}

	pk := &PublicKey{
		N:            n,
		A0:           a0,
		A:            a,
		B:            b,
		C:            c,
		MessageCount: messageCount,
		Ciphersuite:  cs,
	}
	return &KeyPair{
		PrivateKey: &PrivateKey{P: p, Q: q},
		PublicKey:  pk,
	}, nil
}
