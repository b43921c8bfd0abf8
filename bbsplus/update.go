package bbsplus

import "math/big"

// UpdateSignature recomputes A for a signature whose message at index i
// changes from oldMessage to newMessage, without drawing fresh randomness
// for e or s. This is an issuer-side-only primitive: it requires the
// secret key and is not part of the published BBS+ draft this package
// otherwise follows (spec.md 9, open question (a)). It lets an issuer
// rotate one attribute without a full re-signing round trip, but callers
// must not expose it to holders or treat its output as anything other than
// an issuer-trusted rotation: unlike Sign, it reveals that the two
// signatures share (e, s), which a holder or verifier comparing signatures
// across time could use to link presentations. Use only where that linkage
// is acceptable.
//
// messages must be the full, current message vector (the one the existing
// signature was issued over); newMessage replaces messages[index].
func UpdateSignature(pk *PublicKey, sk *PrivateKey, sig *Signature, messages []*big.Int, index int, newMessage *big.Int, header []byte) (*Signature, error) {
	if len(messages) != pk.MessageCount {
		return nil, ErrInvalidMessageCount
	}
	if index < 0 || index >= pk.MessageCount {
		return nil, ErrIndexOutOfRange
	}

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return nil, err
	}

	updated := make([]*big.Int, len(messages))
	copy(updated, messages)
	updated[index] = newMessage

	b := computeB(pk, updated, sig.S, domain)

	denom := new(big.Int).Add(sk.X, sig.E)
	denom.Mod(denom, Order)
	if denom.Sign() == 0 {
		return nil, ErrInvalidKeyMaterial
	}
	inv := ConstantTimeModInverse(denom, Order)

	aJac := g1ScalarMul(&b, inv)
	return &Signature{A: g1JacToAffine(&aJac), E: sig.E, S: sig.S}, nil
}
