package bbsplus

import (
	"crypto/rand"
	"io"
	"math/big"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// BlindSign issues a signature over a commitment plus the issuer's own
// disclosed messages, per spec.md 4.1.4. The issuer must first verify the
// holder's ZKPoK of the commitment opening against nonce; a missing nonce
// or a proof that fails to verify aborts issuance with ErrNonceRequired or
// ErrInvalidProof before any signing work happens. On success it signs
// B' = commitment.C + P1 + Q1*s + Q2*dom + sum(H_i*m_i) over its disclosed set,
// and the holder completes the signature with Unblind by folding in its
// own s' contribution.
func BlindSign(cs *Ciphersuite, sk *PrivateKey, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte, disclosedMessages map[int]*big.Int, header []byte, rng io.Reader) (*Signature, error) {
	if rng == nil {
		rng = rand.Reader
	}
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
		return nil, ErrInvalidMessageCount
	}

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return nil, err
	}

	s, err := RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	e, err := blindDeterministicE(cs, sk, domain, commitment, disclosedMessages)
	if err != nil {
		return nil, err
	}

	bPartial, err := blindB(pk, commitment, disclosedMessages, s, domain)
	if err != nil {
		return nil, err
	}

	denom := new(big.Int).Add(sk.X, e)
	denom.Mod(denom, Order)
	if denom.Sign() == 0 {
		return nil, ErrInvalidKeyMaterial
	}
	inv := ConstantTimeModInverse(denom, Order)

	aJac := g1ScalarMul(&bPartial, inv)
	return &Signature{A: g1JacToAffine(&aJac), E: e, S: s}, nil
}

// blindB computes the issuer's partial B: P1 + commitment.C + Q2*domain +
// Q1*s + sum over disclosed H_i*m_i. The holder's undisclosed contribution
// (Q1*s' + sum H_i*m_i for i undisclosed) already lives inside commitment.C.
func blindB(pk *PublicKey, commitment *Commitment, disclosedMessages map[int]*big.Int, s, domain *big.Int) (bls12381.G1Affine, error) {
	indices := sortedKeys(disclosedMessages)
	points := make([]bls12381.G1Affine, 0, len(indices)+3)
	scalars := make([]*big.Int, 0, len(indices)+3)

	points = append(points, pk.G1)
	scalars = append(scalars, big.NewInt(1))

	points = append(points, pk.Q1)
	scalars = append(scalars, s)

	points = append(points, pk.Q2)
	scalars = append(scalars, domain)

	for _, idx := range indices {
		points = append(points, pk.H[idx])
		scalars = append(scalars, disclosedMessages[idx])
	}

	sumJac, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	sum := g1JacToAffine(&sumJac)

	var cJac bls12381.G1Jac
	cJac.FromAffine(&commitment.C)
	var sumAsJac bls12381.G1Jac
	sumAsJac.FromAffine(&sum)
	cJac.AddAssign(&sumAsJac)

	return g1JacToAffine(&cJac), nil
}

func sortedKeys(m map[int]*big.Int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func blindDeterministicE(cs *Ciphersuite, sk *PrivateKey, domain *big.Int, commitment *Commitment, disclosedMessages map[int]*big.Int) (*big.Int, error) {
	var buf []byte
	buf = append(buf, sk.X.Bytes()...)
	buf = append(buf, domain.Bytes()...)
	buf = append(buf, commitment.C.Marshal()...)
	for _, idx := range sortedKeys(disclosedMessages) {
		buf = append(buf, I2OSP(idx, 8)...)
		buf = append(buf, disclosedMessages[idx].Bytes()...)
	}
	return hashToScalar(cs, buf, cs.SignDST)
}

// Unblind folds the holder's blinding scalar s' into a signature returned
// by BlindSign, producing a Signature that verifies against the full
// message vector as an ordinary signature would (spec.md 4.1.4).
func Unblind(sig *Signature, secrets *CommitmentSecrets) *Signature {
	s := new(big.Int).Add(sig.S, secrets.SPrime)
	s.Mod(s, Order)
	return &Signature{A: sig.A, E: sig.E, S: s}
}
