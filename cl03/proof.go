package cl03

import (
	"io"
	"math/big"
	"sort"
)

// ProveSignatureKnowledge generates a NISP5-MultiAttr non-interactive proof
// that the holder possesses a valid CL03 signature over messages, revealing
// only the messages at disclosedIndices, per spec.md 4.2.4. ck is the
// verifier's independently generated commitment-public-key, never the
// issuer's PublicKey; presentationHeader binds the proof to a particular
// verifier/session the way a nonce binds ProveCommitmentOpening.
//
// It returns the proof together with the disclosed messages the verifier
// needs to check it.
func ProveSignatureKnowledge(cs *Ciphersuite, pk *PublicKey, ck *CommitmentKey, sig *Signature, messages map[int]*big.Int, disclosedIndices []int, presentationHeader []byte, rng io.Reader) (*Proof, map[int]*big.Int, error) {
	rng = defaultRNG(rng)

	disclosed := make(map[int]bool, len(disclosedIndices))
	for _, idx := range disclosedIndices {
		if idx < 0 || idx >= pk.MessageCount || disclosed[idx] {
			return nil, nil, ErrIndexOutOfRange
		}
		disclosed[idx] = true
	}
	if len(messages) != pk.MessageCount {
		return nil, nil, ErrInconsistentLength
	}

	var undisclosed []int
	disclosedMessages := make(map[int]*big.Int, len(disclosedIndices))
	for idx := 0; idx < pk.MessageCount; idx++ {
		m, ok := messages[idx]
		if !ok {
			return nil, nil, ErrInconsistentLength
		}
		if disclosed[idx] {
			disclosedMessages[idx] = m
		} else {
			undisclosed = append(undisclosed, idx)
		}
	}
	sort.Ints(undisclosed)

	// Rerandomize v: ABar = v * b^r mod N, vPrime = s + e*r (plain
	// integer, never reduced). ABar^e * b^-vPrime * Prod(a_i^-m_i) = a0
	// holds exactly, so a Sigma protocol over (e, vPrime, undisclosed m_i)
	// proves possession of the original signature without revealing it.
	r, err := randomBits(rng, cs.LN+cs.LZero)
	if err != nil {
		return nil, nil, err
	}
	aBar := new(big.Int).Exp(pk.B, r, pk.N)
	aBar.Mul(aBar, sig.V)
	aBar.Mod(aBar, pk.N)

	vPrime := new(big.Int).Mul(sig.E, r)
	vPrime.Add(vPrime, sig.S)

	// Cross-group commitment to the same undisclosed messages, in the
	// verifier's own commitment group, so the proof's soundness doesn't
	// depend on the issuer's choice of N.
	r1, err := randomBits(rng, cs.LN+cs.LZero)
	if err != nil {
		return nil, nil, err
	}
	cm := new(big.Int).Exp(ck.H, r1, ck.N)
	for _, idx := range undisclosed {
		cm.Mul(cm, new(big.Int).Exp(ck.G[idx], messages[idx], ck.N))
		cm.Mod(cm, ck.N)
	}

	eTilde, err := randomBits(rng, blindLen(cs, cs.LE))
	if err != nil {
		return nil, nil, err
	}
	vPrimeTilde, err := randomBits(rng, blindLen(cs, cs.LE+cs.LN+cs.LZero))
	if err != nil {
		return nil, nil, err
	}
	r1Tilde, err := randomBits(rng, blindLen(cs, cs.LN+cs.LZero))
	if err != nil {
		return nil, nil, err
	}
	mTilde := make(map[int]*big.Int, len(undisclosed))
	for _, idx := range undisclosed {
		t, err := randomBits(rng, blindLen(cs, cs.LM))
		if err != nil {
			return nil, nil, err
		}
		mTilde[idx] = t
	}

	t1 := signatureCommitment(pk, aBar, eTilde, vPrimeTilde, undisclosed, mTilde)
	t2 := new(big.Int).Exp(ck.H, r1Tilde, ck.N)
	for _, idx := range undisclosed {
		t2.Mul(t2, new(big.Int).Exp(ck.G[idx], mTilde[idx], ck.N))
		t2.Mod(t2, ck.N)
	}

	challenge := signatureChallenge(cs, aBar, cm, t1, t2, disclosedMessages, presentationHeader)

	eHat := new(big.Int).Mul(challenge, sig.E)
	eHat.Add(eHat, eTilde)

	vHat := new(big.Int).Mul(challenge, vPrime)
	vHat.Add(vHat, vPrimeTilde)

	r1Hat := new(big.Int).Mul(challenge, r1)
	r1Hat.Add(r1Hat, r1Tilde)

	mHat := make(map[int]*big.Int, len(undisclosed))
	for _, idx := range undisclosed {
		h := new(big.Int).Mul(challenge, messages[idx])
		h.Add(h, mTilde[idx])
		mHat[idx] = h
	}

	return &Proof{
		ABar:      aBar,
		Cm:        cm,
		Challenge: challenge,
		EHat:      eHat,
		VHat:      vHat,
		R1Hat:     r1Hat,
		MHat:      mHat,
	}, disclosedMessages, nil
}

// VerifySignatureKnowledge checks a Proof produced by ProveSignatureKnowledge
// against the verifier's own commitment-public-key ck and the disclosed
// messages, per spec.md 4.2.4.
func VerifySignatureKnowledge(cs *Ciphersuite, pk *PublicKey, ck *CommitmentKey, proof *Proof, disclosedMessages map[int]*big.Int, presentationHeader []byte) error {
	if proof.ABar.Sign() == 0 || new(big.Int).GCD(nil, nil, proof.ABar, pk.N).Cmp(big1) != 0 {
		return ErrInvalidProof
	}

	var undisclosed []int
	for idx := range proof.MHat {
		undisclosed = append(undisclosed, idx)
	}
	sort.Ints(undisclosed)
	if len(undisclosed)+len(disclosedMessages) != pk.MessageCount {
		return ErrInvalidProof
	}

	zPub := new(big.Int).Set(pk.A0)
	for idx, m := range disclosedMessages {
		if idx < 0 || idx >= pk.MessageCount {
			return ErrIndexOutOfRange
		}
		zPub.Mul(zPub, new(big.Int).Exp(pk.A[idx], m, pk.N))
		zPub.Mod(zPub, pk.N)
	}
	zPubInv := new(big.Int).ModInverse(zPub, pk.N)
	if zPubInv == nil {
		return ErrInvalidProof
	}

	t1 := signatureCommitment(pk, proof.ABar, proof.EHat, proof.VHat, undisclosed, proof.MHat)
	t1.Mul(t1, new(big.Int).Exp(zPubInv, proof.Challenge, pk.N))
	t1.Mod(t1, pk.N)

	cmInv := new(big.Int).ModInverse(proof.Cm, ck.N)
	if cmInv == nil {
		return ErrInvalidProof
	}
	t2 := new(big.Int).Exp(ck.H, proof.R1Hat, ck.N)
	for _, idx := range undisclosed {
		t2.Mul(t2, new(big.Int).Exp(ck.G[idx], proof.MHat[idx], ck.N))
		t2.Mod(t2, ck.N)
	}
	t2.Mul(t2, new(big.Int).Exp(cmInv, proof.Challenge, ck.N))
	t2.Mod(t2, ck.N)

	challenge := signatureChallenge(cs, proof.ABar, proof.Cm, t1, t2, disclosedMessages, presentationHeader)
	if challenge.Cmp(proof.Challenge) != 0 {
		return ErrInvalidProof
	}
	return nil
}

// signatureCommitment computes ABar^e * b^-v * Prod_{undisclosed}(a_i^-m_i)
// mod N, the shared shape of both the prover's T1 and the verifier's
// recomputed equivalent (spec.md 4.2.4).
func signatureCommitment(pk *PublicKey, aBar, e, v *big.Int, undisclosed []int, m map[int]*big.Int) *big.Int {
	t := new(big.Int).Exp(aBar, e, pk.N)
	bInv := new(big.Int).ModInverse(pk.B, pk.N)
	t.Mul(t, new(big.Int).Exp(bInv, v, pk.N))
	t.Mod(t, pk.N)
	for _, idx := range undisclosed {
		aInv := new(big.Int).ModInverse(pk.A[idx], pk.N)
		t.Mul(t, new(big.Int).Exp(aInv, m[idx], pk.N))
		t.Mod(t, pk.N)
	}
	return t
}

// signatureChallenge derives the Fiat-Shamir challenge binding both
// groups' commitments, the disclosed messages, and the presentation
// header (spec.md 4.2.4).
func signatureChallenge(cs *Ciphersuite, aBar, cm, t1, t2 *big.Int, disclosedMessages map[int]*big.Int, presentationHeader []byte) *big.Int {
	indices := make([]int, 0, len(disclosedMessages))
	for idx := range disclosedMessages {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var buf []byte
	buf = append(buf, []byte(cs.ID)...)
	buf = append(buf, aBar.Bytes()...)
	buf = append(buf, cm.Bytes()...)
	buf = append(buf, t1.Bytes()...)
	buf = append(buf, t2.Bytes()...)
	for _, idx := range indices {
		buf = append(buf, disclosedMessages[idx].Bytes()...)
	}
	buf = append(buf, presentationHeader...)
	return hashToChallenge(cs, buf)
}
