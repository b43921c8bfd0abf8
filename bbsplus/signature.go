package bbsplus

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// calculateDomain computes the domain-separation scalar that binds a
// signature to the issuer's full generator set, the ciphersuite, and an
// application-chosen header, per spec.md 4.1.2.
func calculateDomain(pk *PublicKey, header []byte) (*big.Int, error) {
	var buf []byte
	buf = append(buf, I2OSP(pk.MessageCount, 8)...)
	buf = append(buf, pk.Q1.Marshal()...)
	buf = append(buf, pk.Q2.Marshal()...)
	for _, h := range pk.H {
		buf = append(buf, h.Marshal()...)
	}
	buf = append(buf, pk.W.Marshal()...)
	buf = append(buf, []byte(pk.Ciphersuite.ID)...)
	buf = append(buf, I2OSP(len(header), 8)...)
	buf = append(buf, header...)

	return hashToScalar(pk.Ciphersuite, buf, pk.Ciphersuite.DomainDST)
}

// computeB computes B = P1 + Q1*s + Q2*domain + sum(H_i*m_i), the point
// that Sign raises to the (x+e)^-1 power and Verify must reproduce.
func computeB(pk *PublicKey, messages []*big.Int, s, domain *big.Int) bls12381.G1Affine {
	points := make([]bls12381.G1Affine, 0, len(messages)+3)
	scalars := make([]*big.Int, 0, len(messages)+3)

	points = append(points, pk.G1)
	scalars = append(scalars, big.NewInt(1))

	points = append(points, pk.Q1)
	scalars = append(scalars, s)

	points = append(points, pk.Q2)
	scalars = append(scalars, domain)

	for i, m := range messages {
		points = append(points, pk.H[i])
		scalars = append(scalars, m)
	}

	bJac, _ := MultiScalarMulG1(points, scalars)
	return g1JacToAffine(&bJac)
}

// Sign produces a BBS+ signature over messages under the legacy (A, e, s)
// profile (spec.md 3, 4.1.2). e is drawn deterministically from the secret
// key, domain and messages so that signing never needs fresh randomness
// beyond s; s is drawn from rng (crypto/rand.Reader if nil).
func Sign(cs *Ciphersuite, sk *PrivateKey, pk *PublicKey, messages []*big.Int, header []byte, rng io.Reader) (*Signature, error) {
	if len(messages) != pk.MessageCount {
		return nil, ErrInvalidMessageCount
	}
	if rng == nil {
		rng = rand.Reader
	}

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return nil, err
	}

	s, err := RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("bbsplus: generating s: %w", err)
	}

	e, err := deterministicE(cs, sk, domain, messages)
	if err != nil {
		return nil, err
	}

	b := computeB(pk, messages, s, domain)

	denom := new(big.Int).Add(sk.X, e)
	denom.Mod(denom, Order)
	if denom.Sign() == 0 {
		return nil, fmt.Errorf("bbsplus: x+e is zero, resample")
	}
	inv := ConstantTimeModInverse(denom, Order)

	aJac := g1ScalarMul(&b, inv)
	a := g1JacToAffine(&aJac)

	return &Signature{A: a, E: e, S: s}, nil
}

// deterministicE derives e = hash_to_scalar(SK || dom || msg_scalars,
// sign_DST), per spec.md 4.1.2.
func deterministicE(cs *Ciphersuite, sk *PrivateKey, domain *big.Int, messages []*big.Int) (*big.Int, error) {
	var buf []byte
	buf = append(buf, sk.X.Bytes()...)
	buf = append(buf, domain.Bytes()...)
	for _, m := range messages {
		buf = append(buf, I2OSP(len(m.Bytes()), 2)...)
		buf = append(buf, m.Bytes()...)
	}
	return hashToScalar(cs, buf, cs.SignDST)
}

// Verify checks a BBS+ signature against messages and header, per
// spec.md 4.1.2: e(A, W + P2*e) == e(B, P2).
func Verify(pk *PublicKey, sig *Signature, messages []*big.Int, header []byte) error {
	if len(messages) != pk.MessageCount {
		return ErrInvalidMessageCount
	}

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return err
	}
	b := computeB(pk, messages, sig.S, domain)

	wPlusG2eJac := g2ScalarMul(&pk.G2, sig.E)
	var wJac bls12381.G2Jac
	wJac.FromAffine(&pk.W)
	wJac.AddAssign(&wPlusG2eJac)
	wPlusG2e := g2JacToAffine(&wJac)

	var negG2Jac bls12381.G2Jac
	negG2Jac.FromAffine(&pk.G2)
	negG2Jac.Neg(&negG2Jac)
	negG2 := g2JacToAffine(&negG2Jac)

	result, err := bls12381.Pair(
		[]bls12381.G1Affine{sig.A, b},
		[]bls12381.G2Affine{wPlusG2e, negG2},
	)
	if err != nil {
		return ErrPairingFailed
	}
	if !result.IsOne() {
		return ErrInvalidSignature
	}
	return nil
}
