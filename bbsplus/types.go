package bbsplus

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// PrivateKey is a BBS+ secret scalar x in F_r \ {0}.
type PrivateKey struct {
	X *big.Int
}

// PublicKey bundles the issuer's public point W = x*P2 together with the
// generator tuple (P1, Q1, Q2, H_1..H_L) the signature equations are
// defined over, per spec.md 3 "Generators (BBS+)".
type PublicKey struct {
	W  bls12381.G2Affine
	G1 bls12381.G1Affine
	G2 bls12381.G2Affine

	Q1 bls12381.G1Affine // blinds the signature randomness s
	Q2 bls12381.G1Affine // blinds the domain scalar

	H []bls12381.G1Affine // one generator per message slot

	MessageCount int
	Ciphersuite  *Ciphersuite
}

// KeyPair is the (sk, pk) pair returned by GenerateKeyPair.
type KeyPair struct {
	PrivateKey *PrivateKey
	PublicKey  *PublicKey
}

// Signature is a BBS+ signature under the legacy (A, e, s) profile.
type Signature struct {
	A bls12381.G1Affine
	E *big.Int
	S *big.Int
}

// Commitment is the holder's Pedersen-style commitment to the messages at
// UndisclosedIndices, produced by Commit and sent to the issuer during
// blind issuance.
type Commitment struct {
	C                  bls12381.G1Affine
	UndisclosedIndices []int
}

// CommitmentSecrets holds the holder-side opening of a Commitment: the
// blinding scalar and the committed messages. It must never be sent to the
// issuer; only the Commitment and a CommitmentProof derived from it are.
type CommitmentSecrets struct {
	SPrime   *big.Int
	Messages map[int]*big.Int // keyed by the same UndisclosedIndices as the Commitment
}

// CommitmentProof is a non-interactive Schnorr-style zero-knowledge proof
// of knowledge of a Commitment's opening (s' and the committed messages),
// bound to a verifier-supplied nonce (spec.md 4.1.4 "Commit").
type CommitmentProof struct {
	Tbar      bls12381.G1Affine
	Challenge *big.Int
	SHat      *big.Int
	MHat      map[int]*big.Int
}

// Proof is a non-interactive signature proof of knowledge (SPoK) with
// selective disclosure, per spec.md 4.1.3.
type Proof struct {
	APrime bls12381.G1Affine
	ABar   bls12381.G1Affine
	D      bls12381.G1Affine
	C      *big.Int
	EHat   *big.Int
	SHat   *big.Int
	MHat   map[int]*big.Int // responses for undisclosed messages, keyed by index
}
