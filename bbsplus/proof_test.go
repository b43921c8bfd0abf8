package bbsplus

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitBlindSignUnblindVerify(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 4)

	disclosed := map[int]*big.Int{0: big.NewInt(10), 2: big.NewInt(30)}
	undisclosedIdx := []int{1, 3}
	undisclosed := map[int]*big.Int{1: big.NewInt(20), 3: big.NewInt(40)}

	commitment, secrets, err := Commit(kp.PublicKey, undisclosed, undisclosedIdx, nil)
	require.NoError(t, err)

	nonce := []byte("issuer-session-nonce")
	openingProof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nonce, nil)
	require.NoError(t, err)
	require.NoError(t, VerifyCommitmentOpening(cs, kp.PublicKey, commitment, openingProof, nonce))

	blindSig, err := BlindSign(cs, kp.PrivateKey, kp.PublicKey, commitment, openingProof, nonce, disclosed, nil, nil)
	require.NoError(t, err)

	sig := Unblind(blindSig, secrets)

	full := make([]*big.Int, kp.PublicKey.MessageCount)
	full[0] = disclosed[0]
	full[2] = disclosed[2]
	full[1] = undisclosed[1]
	full[3] = undisclosed[3]

	require.NoError(t, Verify(kp.PublicKey, sig, full, nil))
}

func TestVerifyCommitmentOpeningRejectsWrongNonce(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 2)
	undisclosed := map[int]*big.Int{0: big.NewInt(1), 1: big.NewInt(2)}

	commitment, secrets, err := Commit(kp.PublicKey, undisclosed, []int{0, 1}, nil)
	require.NoError(t, err)

	nonce := []byte("nonce-a")
	proof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nonce, nil)
	require.NoError(t, err)

	err = VerifyCommitmentOpening(cs, kp.PublicKey, commitment, proof, []byte("nonce-b"))
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestBlindSignRejectsProofOverWrongMessages(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 2)
	disclosed := map[int]*big.Int{0: big.NewInt(10)}
	nonce := []byte("issuer-session-nonce")

	commitment, _, err := Commit(kp.PublicKey, map[int]*big.Int{1: big.NewInt(20)}, []int{1}, nil)
	require.NoError(t, err)

	// A ZKPoK generated over a commitment to the wrong scalar must not let
	// BlindSign succeed against a different commitment (spec.md 8 invariant 7).
	wrongCommitment, wrongSecrets, err := Commit(kp.PublicKey, map[int]*big.Int{1: big.NewInt(99)}, []int{1}, nil)
	require.NoError(t, err)
	wrongProof, err := ProveCommitmentOpening(cs, kp.PublicKey, wrongCommitment, wrongSecrets, nonce, nil)
	require.NoError(t, err)

	_, err = BlindSign(cs, kp.PrivateKey, kp.PublicKey, commitment, wrongProof, nonce, disclosed, nil, nil)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestProofGenVerifySelectiveDisclosure(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 5)
	messages := testMessages(5)
	header := []byte("issuance-header")
	presentationHeader := []byte("presentation-nonce")

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, header, nil)
	require.NoError(t, err)

	disclosedIndices := []int{0, 2, 4}
	proof, disclosedMessages, err := ProofGen(kp.PublicKey, sig, messages, disclosedIndices, header, presentationHeader, nil)
	require.NoError(t, err)
	require.Len(t, disclosedMessages, 3)

	err = ProofVerify(kp.PublicKey, proof, disclosedMessages, header, presentationHeader)
	require.NoError(t, err)
}

func TestProofVerifyRejectsTamperedDisclosedMessage(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)
	messages := testMessages(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	proof, disclosedMessages, err := ProofGen(kp.PublicKey, sig, messages, []int{0}, nil, nil, nil)
	require.NoError(t, err)

	disclosedMessages[0] = new(big.Int).Add(disclosedMessages[0], big.NewInt(1))

	err = ProofVerify(kp.PublicKey, proof, disclosedMessages, nil, nil)
	require.Error(t, err)
}

func TestProofVerifyRejectsWrongPresentationHeader(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)
	messages := testMessages(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	proof, disclosedMessages, err := ProofGen(kp.PublicKey, sig, messages, []int{0}, nil, []byte("ph1"), nil)
	require.NoError(t, err)

	err = ProofVerify(kp.PublicKey, proof, disclosedMessages, nil, []byte("ph2"))
	require.Error(t, err)
}

func TestProofMarshalRoundTrip(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 4)
	messages := testMessages(4)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	proof, disclosedMessages, err := ProofGen(kp.PublicKey, sig, messages, []int{1, 3}, nil, nil, nil)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var decoded Proof
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.NoError(t, ProofVerify(kp.PublicKey, &decoded, disclosedMessages, nil, nil))
}

func TestBatchVerifyProofs(t *testing.T) {
	cs := &BLS12381SHA256
	const n = 3

	pks := make([]*PublicKey, n)
	proofs := make([]*Proof, n)
	disclosedList := make([]map[int]*big.Int, n)

	for i := 0; i < n; i++ {
		kp := testKeyPair(t, cs, 3)
		messages := testMessages(3)
		sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
		require.NoError(t, err)

		proof, disclosed, err := ProofGen(kp.PublicKey, sig, messages, []int{0}, nil, nil, nil)
		require.NoError(t, err)

		pks[i] = kp.PublicKey
		proofs[i] = proof
		disclosedList[i] = disclosed
	}

	err := BatchVerifyProofs(pks, proofs, disclosedList, nil, nil)
	require.NoError(t, err)
}

func TestBatchVerifyProofsRejectsOneBadProof(t *testing.T) {
	cs := &BLS12381SHA256
	const n = 3

	pks := make([]*PublicKey, n)
	proofs := make([]*Proof, n)
	disclosedList := make([]map[int]*big.Int, n)

	for i := 0; i < n; i++ {
		kp := testKeyPair(t, cs, 3)
		messages := testMessages(3)
		sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
		require.NoError(t, err)

		proof, disclosed, err := ProofGen(kp.PublicKey, sig, messages, []int{0}, nil, nil, nil)
		require.NoError(t, err)

		pks[i] = kp.PublicKey
		proofs[i] = proof
		disclosedList[i] = disclosed
	}

	disclosedList[1][0] = new(big.Int).Add(disclosedList[1][0], big.NewInt(1))

	err := BatchVerifyProofs(pks, proofs, disclosedList, nil, nil)
	require.Error(t, err)
}
