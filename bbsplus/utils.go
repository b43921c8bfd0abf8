package bbsplus

import (
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// I2OSP encodes a non-negative integer as a big-endian octet string of
// exactly length bytes, as used throughout the ciphersuite's domain
// separation (I2OSP(L,2), I2OSP(len,8), ...).
func I2OSP(x int, length int) []byte {
	out := make([]byte, length)
	v := x
	for i := length - 1; i >= 0 && v > 0; i-- {
		out[i] = byte(v & 0xff)
		v >>= 8
	}
	return out
}

// RandomScalar draws a uniform element of [1, Order-1] using rejection
// sampling over constant-sized reads, so the number of reads does not leak
// the sampled value beyond the usual negligible rejection probability.
func RandomScalar(rng io.Reader) (*big.Int, error) {
	for {
		s, err := ConstantTimeRandom(rng, Order)
		if err != nil {
			return nil, err
		}
		if s.Sign() != 0 {
			return s, nil
		}
	}
}

// ConstantTimeRandom draws a uniform value in [0, max) by over-reading 64
// extra bits of entropy and reducing, which keeps the modulo bias
// cryptographically negligible without needing rejection sampling on the
// full-width value.
func ConstantTimeRandom(rng io.Reader, max *big.Int) (*big.Int, error) {
	byteLen := (max.BitLen() + 64 + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("bbsplus: reading randomness: %w", err)
	}
	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, max), nil
}

// ConstantTimeModInverse computes a^-1 mod n for prime n via Fermat's
// little theorem (a^(n-2) mod n), avoiding the variable-time extended
// Euclidean path big.Int.ModInverse takes internally.
func ConstantTimeModInverse(a, n *big.Int) *big.Int {
	e := new(big.Int).Sub(n, big.NewInt(2))
	return new(big.Int).Exp(a, e, n)
}

func g1JacToAffine(p *bls12381.G1Jac) bls12381.G1Affine {
	var r bls12381.G1Affine
	r.FromJacobian(p)
	return r
}

func g2JacToAffine(p *bls12381.G2Jac) bls12381.G2Affine {
	var r bls12381.G2Affine
	r.FromJacobian(p)
	return r
}

func g1ScalarMul(base *bls12381.G1Affine, scalar *big.Int) bls12381.G1Jac {
	var j bls12381.G1Jac
	j.FromAffine(base)
	j.ScalarMultiplication(&j, scalar)
	return j
}

func g2ScalarMul(base *bls12381.G2Affine, scalar *big.Int) bls12381.G2Jac {
	var j bls12381.G2Jac
	j.FromAffine(base)
	j.ScalarMultiplication(&j, scalar)
	return j
}
