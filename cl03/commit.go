package cl03

import (
	"io"
	"math/big"
	"sort"
)

// Commit produces a Pedersen-style commitment to the messages at
// undisclosedIndices, blinded by a fresh s' drawn from a range wide
// enough to statistically hide it, per spec.md 4.2.3. The caller keeps
// CommitmentSecrets and sends only the returned Commitment to the issuer.
func Commit(cs *Ciphersuite, pk *PublicKey, messages map[int]*big.Int, undisclosedIndices []int, rng io.Reader) (*Commitment, *CommitmentSecrets, error) {
	rng = defaultRNG(rng)
	seen := make(map[int]bool, len(undisclosedIndices))
	for _, idx := range undisclosedIndices {
		if idx < 0 || idx >= pk.MessageCount || seen[idx] {
			return nil, nil, ErrIndexOutOfRange
		}
		seen[idx] = true
		if _, ok := messages[idx]; !ok {
			return nil, nil, ErrInconsistentLength
		}
	}

	sPrime, err := randomBits(rng, cs.LN+cs.LZero)
	if err != nil {
		return nil, nil, err
	}

	sorted := append([]int(nil), undisclosedIndices...)
	sort.Ints(sorted)

	c := new(big.Int).Exp(pk.B, sPrime, pk.N)
	for _, idx := range sorted {
		c.Mul(c, new(big.Int).Exp(pk.A[idx], messages[idx], pk.N))
		c.Mod(c, pk.N)
	}

	secretMessages := make(map[int]*big.Int, len(messages))
	for idx, m := range messages {
		secretMessages[idx] = new(big.Int).Set(m)
	}

	return &Commitment{C: c, UndisclosedIndices: sorted},
		&CommitmentSecrets{SPrime: sPrime, Messages: secretMessages}, nil
}

// blindLen returns the bit length a Sigma-protocol blinding factor needs
// to statistically hide a secret of secretBits bits under a challenge of
// cs.LC bits, per spec.md 4.2.3's "randomness growth of l-empty bits".
func blindLen(cs *Ciphersuite, secretBits int) int {
	return secretBits + cs.LC + cs.LZero
}

// ProveCommitmentOpening generates a non-interactive Sigma-protocol proof
// that the holder knows (s', {m_i}) opening commitment, bound to the
// issuer's nonce (spec.md 4.2.3).
func ProveCommitmentOpening(cs *Ciphersuite, pk *PublicKey, commitment *Commitment, secrets *CommitmentSecrets, nonce []byte, rng io.Reader) (*CommitmentProof, error) {
	if len(nonce) == 0 {
		return nil, ErrNonceRequired
	}
	rng = defaultRNG(rng)

	sTilde, err := randomBits(rng, blindLen(cs, cs.LN+cs.LZero))
	if err != nil {
		return nil, err
	}
	mTilde := make(map[int]*big.Int, len(commitment.UndisclosedIndices))
	tBar := new(big.Int).Exp(pk.B, sTilde, pk.N)
	for _, idx := range commitment.UndisclosedIndices {
		t, err := randomBits(rng, blindLen(cs, cs.LM))
		if err != nil {
			return nil, err
		}
		mTilde[idx] = t
		tBar.Mul(tBar, new(big.Int).Exp(pk.A[idx], t, pk.N))
		tBar.Mod(tBar, pk.N)
	}

	challenge := commitmentChallenge(cs, commitment.C, tBar, nonce)

	sHat := new(big.Int).Mul(challenge, secrets.SPrime)
	sHat.Add(sHat, sTilde)

	mHat := make(map[int]*big.Int, len(commitment.UndisclosedIndices))
	for _, idx := range commitment.UndisclosedIndices {
		h := new(big.Int).Mul(challenge, secrets.Messages[idx])
		h.Add(h, mTilde[idx])
		mHat[idx] = h
	}

	return &CommitmentProof{TBar: tBar, Challenge: challenge, SHat: sHat, MHat: mHat}, nil
}

// VerifyCommitmentOpening checks a CommitmentProof by recomputing TBar
// from the responses and comparing the Fiat-Shamir challenge
// (spec.md 4.2.3).
func VerifyCommitmentOpening(cs *Ciphersuite, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte) error {
	if len(nonce) == 0 {
		return ErrNonceRequired
	}

	cInv := new(big.Int).ModInverse(commitment.C, pk.N)
	if cInv == nil {
		return ErrInvalidProof
	}

	recomputed := new(big.Int).Exp(pk.B, proof.SHat, pk.N)
	for _, idx := range commitment.UndisclosedIndices {
		mHat, ok := proof.MHat[idx]
		if !ok {
			return ErrInvalidProof
		}
		recomputed.Mul(recomputed, new(big.Int).Exp(pk.A[idx], mHat, pk.N))
		recomputed.Mod(recomputed, pk.N)
	}
	recomputed.Mul(recomputed, new(big.Int).Exp(cInv, proof.Challenge, pk.N))
	recomputed.Mod(recomputed, pk.N)

	challenge := commitmentChallenge(cs, commitment.C, recomputed, nonce)
	if challenge.Cmp(proof.Challenge) != 0 {
		return ErrInvalidProof
	}
	return nil
}

// commitmentChallenge hashes (C, TBar, nonce) down to cs.LC bits, giving
// each ciphersuite its own challenge width per spec.md 9 open question (b).
func commitmentChallenge(cs *Ciphersuite, c, tBar *big.Int, nonce []byte) *big.Int {
	var buf []byte
	buf = append(buf, []byte(cs.ID)...)
	buf = append(buf, c.Bytes()...)
	buf = append(buf, tBar.Bytes()...)
	buf = append(buf, nonce...)
	return hashToChallenge(cs, buf)
}
