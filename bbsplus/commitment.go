package bbsplus

import (
	"crypto/rand"
	"io"
	"math/big"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Commit produces a Pedersen-style commitment to the messages at
// undisclosedIndices, blinded by a fresh s', per spec.md 4.1.4. The caller
// keeps CommitmentSecrets and sends only the returned Commitment to the
// issuer.
func Commit(pk *PublicKey, messages map[int]*big.Int, undisclosedIndices []int, rng io.Reader) (*Commitment, *CommitmentSecrets, error) {
	if rng == nil {
		rng = rand.Reader
	}
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

	sPrime, err := RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}

	sorted := append([]int(nil), undisclosedIndices...)
	sort.Ints(sorted)

	points := make([]bls12381.G1Affine, 0, len(sorted)+1)
	scalars := make([]*big.Int, 0, len(sorted)+1)
	points = append(points, pk.Q1)
	scalars = append(scalars, sPrime)
	for _, idx := range sorted {
		points = append(points, pk.H[idx])
		scalars = append(scalars, messages[idx])
	}

	cJac, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		return nil, nil, err
	}

	secretMessages := make(map[int]*big.Int, len(sorted))
	for _, idx := range sorted {
		secretMessages[idx] = new(big.Int).Set(messages[idx])
	}

	return &Commitment{
			C:                  g1JacToAffine(&cJac),
			UndisclosedIndices: sorted,
		}, &CommitmentSecrets{
			SPrime:   sPrime,
			Messages: secretMessages,
		}, nil
}

// ProveCommitmentOpening generates a non-interactive Schnorr proof that the
// holder knows (s', {m_i}) opening commitment C, bound to the issuer's
// nonce so the proof cannot be replayed against a different issuance
// session (spec.md 4.1.4).
func ProveCommitmentOpening(cs *Ciphersuite, pk *PublicKey, commitment *Commitment, secrets *CommitmentSecrets, nonce []byte, rng io.Reader) (*CommitmentProof, error) {
	if len(nonce) == 0 {
		return nil, ErrNonceRequired
	}
	if rng == nil {
		rng = rand.Reader
	}

	sTilde, err := RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	mTilde := make(map[int]*big.Int, len(commitment.UndisclosedIndices))
	points := make([]bls12381.G1Affine, 0, len(commitment.UndisclosedIndices)+1)
	scalars := make([]*big.Int, 0, len(commitment.UndisclosedIndices)+1)
	points = append(points, pk.Q1)
	scalars = append(scalars, sTilde)
	for _, idx := range commitment.UndisclosedIndices {
		t, err := RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		mTilde[idx] = t
		points = append(points, pk.H[idx])
		scalars = append(scalars, t)
	}

	tBarJac, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		return nil, err
	}
	tBar := g1JacToAffine(&tBarJac)

	challenge, err := commitmentChallenge(cs, pk, commitment, &tBar, nonce)
	if err != nil {
		return nil, err
	}

	sHat := new(big.Int).Mul(challenge, secrets.SPrime)
	sHat.Add(sHat, sTilde)
	sHat.Mod(sHat, Order)

	mHat := make(map[int]*big.Int, len(commitment.UndisclosedIndices))
	for _, idx := range commitment.UndisclosedIndices {
		h := new(big.Int).Mul(challenge, secrets.Messages[idx])
		h.Add(h, mTilde[idx])
		h.Mod(h, Order)
		mHat[idx] = h
	}

	return &CommitmentProof{
		Tbar:      tBar,
		Challenge: challenge,
		SHat:      sHat,
		MHat:      mHat,
	}, nil
}

// VerifyCommitmentOpening checks a CommitmentProof against the commitment
// it was produced for, recomputing Tbar from the responses and comparing
// the Fiat-Shamir challenge (spec.md 4.1.4).
func VerifyCommitmentOpening(cs *Ciphersuite, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte) error {
	if len(nonce) == 0 {
		return ErrNonceRequired
	}

	points := make([]bls12381.G1Affine, 0, len(commitment.UndisclosedIndices)+2)
	scalars := make([]*big.Int, 0, len(commitment.UndisclosedIndices)+2)

	points = append(points, pk.Q1)
	scalars = append(scalars, proof.SHat)
	for _, idx := range commitment.UndisclosedIndices {
		mHat, ok := proof.MHat[idx]
		if !ok {
			return ErrInvalidProof
		}
		points = append(points, pk.H[idx])
		scalars = append(scalars, mHat)
	}
	negC := negateG1Affine(commitment.C)
	points = append(points, negC)
	scalars = append(scalars, proof.Challenge)

	recomputedJac, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		return err
	}
	recomputed := g1JacToAffine(&recomputedJac)

	challenge, err := commitmentChallenge(cs, pk, commitment, &recomputed, nonce)
	if err != nil {
		return err
	}
	if challenge.Cmp(proof.Challenge) != 0 {
		return ErrInvalidProof
	}
	return nil
}

func commitmentChallenge(cs *Ciphersuite, pk *PublicKey, commitment *Commitment, tBar *bls12381.G1Affine, nonce []byte) (*big.Int, error) {
	var buf []byte
	buf = append(buf, commitment.C.Marshal()...)
	buf = append(buf, tBar.Marshal()...)
	buf = append(buf, nonce...)
	return hashToScalar(cs, buf, cs.ChallengeDST)
}

func negateG1Affine(p bls12381.G1Affine) bls12381.G1Affine {
	var j bls12381.G1Jac
	j.FromAffine(&p)
	j.Neg(&j)
	return g1JacToAffine(&j)
}
