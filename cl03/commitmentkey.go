package cl03

import (
	"io"
	"math/big"
)

// GenerateCommitmentKey derives a verifier-side commitment-public-key
// independent of the issuer's (N, a_0..a_L, b, c): a fresh safe-RSA
// modulus N' and a fresh set of quadratic-residue bases (g_1..g_L, h).
// SPoK verification (spec.md 4.2.4) is checked against this key, never
// against the issuer's PublicKey, so a malicious issuer cannot bias the
// group the proof's Sigma-protocol runs in.
func GenerateCommitmentKey(cs *Ciphersuite, messageCount int, rng io.Reader) (*CommitmentKey, error) {
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

	g := make([]*big.Int, messageCount)
	for i := range g {
		g[i], err = randomQR(rng, n)
		if err != nil {
			return nil, err
		}
	}
	h, err := randomQR(rng, n)
	if err != nil {
		return nil, err
	}

	return &CommitmentKey{N: n, G: g, H: h, MessageCount: messageCount}, nil
}
