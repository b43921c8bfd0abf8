package cl03

import "math/big"

// PrivateKey is the issuer's factorization of the public modulus.
type PrivateKey struct {
	P, Q *big.Int
}

// PublicKey bundles the RSA modulus and the base generators the CL03
// signature and commitment equations are defined over: a zero-slot base
// A0, one base per message slot, and blinding bases B and C, per
// spec.md 4.2.1.
type PublicKey struct {
	N  *big.Int
	A0 *big.Int
	A  []*big.Int // one base per message slot
	B  *big.Int
	C  *big.Int

	MessageCount int
	Ciphersuite  *Ciphersuite
}

// KeyPair is the (sk, pk) pair returned by GenerateKeyPair.
type KeyPair struct {
	PrivateKey *PrivateKey
	PublicKey  *PublicKey
}

// Signature is a CL03 signature (e, s, v) over a message vector, per
// spec.md 4.2.2.
type Signature struct {
	E *big.Int
	S *big.Int
	V *big.Int
}

// CommitmentKey is the verifier's independently generated commitment
// parameters (N', g_1..g_L, h), used only by SPoK generation and
// verification (spec.md 4.2.4) and never by the issuer.
type CommitmentKey struct {
	N            *big.Int
	G            []*big.Int
	H            *big.Int
	MessageCount int
}

// Commitment is the holder's Pedersen-style commitment to the messages at
// UndisclosedIndices, produced by Commit and sent to the issuer during
// blind issuance (spec.md 4.2.3).
type Commitment struct {
	C                  *big.Int
	UndisclosedIndices []int
}

// CommitmentSecrets holds the holder-side opening of a Commitment; it must
// never be sent to the issuer.
type CommitmentSecrets struct {
	SPrime   *big.Int
	Messages map[int]*big.Int
}

// CommitmentProof is a non-interactive Sigma-protocol proof of knowledge
// of a Commitment's opening, bound to a verifier-supplied nonce
// (spec.md 4.2.3).
type CommitmentProof struct {
	TBar      *big.Int
	Challenge *big.Int
	SHat      *big.Int
	MHat      map[int]*big.Int
}

// Proof is a NISP5-MultiAttr signature proof of knowledge: it convinces a
// verifier that the holder possesses a valid CL03 signature over a hidden
// subset of messages without revealing them, the signature's randomizer,
// (e, s), or the undisclosed messages (spec.md 4.2.4).
//
// ABar is a rerandomized copy of the signature's v, living in the
// issuer's group (pk.N); Cm commits to the same undisclosed messages in
// the verifier's independently generated commitment group (ck.N), so a
// malicious issuer's choice of N can't undermine the proof's soundness.
// Of the Sigma-protocol responses, MHat enters both groups' verification
// equations; EHat and VHat enter only the issuer-group equation and R1Hat
// only the commitment-group equation.
type Proof struct {
	ABar *big.Int
	Cm   *big.Int

	Challenge *big.Int
	EHat      *big.Int
	VHat      *big.Int
	R1Hat     *big.Int
	MHat      map[int]*big.Int
}
