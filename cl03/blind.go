package cl03

import (
	"io"
	"math/big"
)

// BlindSign issues a signature over a commitment plus the issuer's own
// disclosed messages, per spec.md 4.2.5. The issuer must first verify the
// holder's ZKPoK of the commitment opening against nonce; a missing nonce
// or a proof that fails to verify aborts issuance with ErrNonceRequired or
// ErrInvalidProof before any signing work happens. It never learns the
// undisclosed messages or s'; it folds commitment.C in as a pre-committed
// factor of Q, and the holder completes the signature with Unblind by
// adding its own s' into s.
func BlindSign(cs *Ciphersuite, sk *PrivateKey, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte, disclosedMessages map[int]*big.Int, rng io.Reader) (*Signature, error) {
	rng = defaultRNG(rng)
	if len(nonce) == 0 {
		return nil, ErrNonceRequired
	}
	if err := VerifyCommitmentOpening(cs, pk, commitment, proof, nonce); err != nil {
		return nil, ErrInvalidProof
	}
	for idx := range disclosedMessages {
		if idx < 0 || idx >= pk.MessageCount {
			return nil, ErrIndexOutOfRange
		}
	}
	for _, idx := range commitment.UndisclosedIndices {
		if _, ok := disclosedMessages[idx]; ok {
			return nil, ErrInconsistentLength
		}
	}
	if len(disclosedMessages)+len(commitment.UndisclosedIndices) != pk.MessageCount {
		return nil, ErrInconsistentLength
	}

	e, err := randomPrimeExponent(cs, rng)
	if err != nil {
		return nil, err
	}
	s, err := randomBits(rng, cs.LS)
	if err != nil {
		return nil, err
	}

	full := make([]*big.Int, pk.MessageCount)
	for idx, m := range disclosedMessages {
		full[idx] = m
	}

	phi := phiOver4(halve(sk.P), halve(sk.Q))
	eInv, err := modInverse(e, phi)
	if err != nil {
		return nil, err
	}

	q := computeQ(pk, full, s, commitment.C)
	v := new(big.Int).Exp(q, eInv, pk.N)

	return &Signature{E: e, S: s, V: v}, nil
}

// Unblind folds the holder's blinding scalar s' into a signature returned
// by BlindSign, producing a Signature that verifies against the full
// message vector as an ordinary signature would (spec.md 4.2.5).
func Unblind(sig *Signature, secrets *CommitmentSecrets) *Signature {
	s := new(big.Int).Add(sig.S, secrets.SPrime)
	return &Signature{E: sig.E, S: s, V: sig.V}
}
