package cl03

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitBlindSignUnblindVerify(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 4)

	allMessages := testCL03Messages(4)
	undisclosedIdx := []int{1, 3}
	disclosed := map[int]*big.Int{0: allMessages[0], 2: allMessages[2]}
	toCommit := map[int]*big.Int{1: allMessages[1], 3: allMessages[3]}

	commitment, secrets, err := Commit(cs, kp.PublicKey, toCommit, undisclosedIdx, nil)
	require.NoError(t, err)

	nonce := []byte("issuer-session-nonce")
	openingProof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nonce, nil)
	require.NoError(t, err)

	blindSig, err := BlindSign(cs, kp.PrivateKey, kp.PublicKey, commitment, openingProof, nonce, disclosed, nil)
	require.NoError(t, err)

	sig := Unblind(blindSig, secrets)

	full := testCL03MessageSlice(4)
	require.NoError(t, Verify(cs, kp.PublicKey, sig, full))
}

func TestProveCommitmentOpeningVerify(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)
	messages := map[int]*big.Int{1: big.NewInt(42), 2: big.NewInt(43)}
	undisclosed := []int{1, 2}

	commitment, secrets, err := Commit(cs, kp.PublicKey, messages, undisclosed, nil)
	require.NoError(t, err)

	nonce := []byte("issuer-nonce")
	proof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nonce, nil)
	require.NoError(t, err)

	require.NoError(t, VerifyCommitmentOpening(cs, kp.PublicKey, commitment, proof, nonce))
}

func TestVerifyCommitmentOpeningRejectsWrongNonce(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 2)
	messages := map[int]*big.Int{0: big.NewInt(7)}
	undisclosed := []int{0}

	commitment, secrets, err := Commit(cs, kp.PublicKey, messages, undisclosed, nil)
	require.NoError(t, err)

	proof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, []byte("nonce-a"), nil)
	require.NoError(t, err)

	err = VerifyCommitmentOpening(cs, kp.PublicKey, commitment, proof, []byte("nonce-b"))
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestProveCommitmentOpeningRequiresNonce(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 1)
	messages := map[int]*big.Int{0: big.NewInt(1)}

	commitment, secrets, err := Commit(cs, kp.PublicKey, messages, []int{0}, nil)
	require.NoError(t, err)

	_, err = ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nil, nil)
	require.ErrorIs(t, err, ErrNonceRequired)
}

func TestBlindSignRejectsProofOverWrongMessages(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 2)
	disclosed := map[int]*big.Int{0: big.NewInt(10)}
	nonce := []byte("issuer-session-nonce")

	commitment, _, err := Commit(cs, kp.PublicKey, map[int]*big.Int{1: big.NewInt(20)}, []int{1}, nil)
	require.NoError(t, err)

	// A ZKPoK generated over a commitment to the wrong scalar must not let
	// BlindSign succeed against a different commitment (spec.md 8 invariant 7).
	wrongCommitment, wrongSecrets, err := Commit(cs, kp.PublicKey, map[int]*big.Int{1: big.NewInt(99)}, []int{1}, nil)
	require.NoError(t, err)
	wrongProof, err := ProveCommitmentOpening(cs, kp.PublicKey, wrongCommitment, wrongSecrets, nonce, nil)
	require.NoError(t, err)

	_, err = BlindSign(cs, kp.PrivateKey, kp.PublicKey, commitment, wrongProof, nonce, disclosed, nil)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestProveVerifySignatureKnowledge(t *testing.T) {
	for _, cs := range []*Ciphersuite{&testCiphersuite, &testCiphersuiteShake} {
		kp := testCL03KeyPair(t, cs, 4)
		ck, err := GenerateCommitmentKey(cs, 4, nil)
		require.NoError(t, err)

		messages := testCL03Messages(4)
		full := testCL03MessageSlice(4)
		sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, full, nil)
		require.NoError(t, err)

		disclosedIdx := []int{0, 2}
		header := []byte("presentation-header")

		proof, disclosedMessages, err := ProveSignatureKnowledge(cs, kp.PublicKey, ck, sig, messages, disclosedIdx, header, nil)
		require.NoError(t, err)
		require.Len(t, disclosedMessages, 2)

		require.NoError(t, VerifySignatureKnowledge(cs, kp.PublicKey, ck, proof, disclosedMessages, header))
	}
}

func TestVerifySignatureKnowledgeRejectsTamperedDisclosedMessage(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)
	ck, err := GenerateCommitmentKey(cs, 3, nil)
	require.NoError(t, err)

	messages := testCL03Messages(3)
	full := testCL03MessageSlice(3)
	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, full, nil)
	require.NoError(t, err)

	header := []byte("session-1")
	proof, disclosedMessages, err := ProveSignatureKnowledge(cs, kp.PublicKey, ck, sig, messages, []int{1}, header, nil)
	require.NoError(t, err)

	tampered := map[int]*big.Int{1: new(big.Int).Add(disclosedMessages[1], big1)}
	err = VerifySignatureKnowledge(cs, kp.PublicKey, ck, proof, tampered, header)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestVerifySignatureKnowledgeRejectsWrongPresentationHeader(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)
	ck, err := GenerateCommitmentKey(cs, 3, nil)
	require.NoError(t, err)

	messages := testCL03Messages(3)
	full := testCL03MessageSlice(3)
	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, full, nil)
	require.NoError(t, err)

	proof, disclosedMessages, err := ProveSignatureKnowledge(cs, kp.PublicKey, ck, sig, messages, []int{0}, []byte("h1"), nil)
	require.NoError(t, err)

	err = VerifySignatureKnowledge(cs, kp.PublicKey, ck, proof, disclosedMessages, []byte("h2"))
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestProofMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)
	ck, err := GenerateCommitmentKey(cs, 3, nil)
	require.NoError(t, err)

	messages := testCL03Messages(3)
	full := testCL03MessageSlice(3)
	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, full, nil)
	require.NoError(t, err)

	header := []byte("marshal-test")
	proof, disclosedMessages, err := ProveSignatureKnowledge(cs, kp.PublicKey, ck, sig, messages, []int{2}, header, nil)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var decoded Proof
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, 0, decoded.Challenge.Cmp(proof.Challenge))
	require.NoError(t, VerifySignatureKnowledge(cs, kp.PublicKey, ck, &decoded, disclosedMessages, header))
}

func TestCommitmentProofMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 2)
	messages := map[int]*big.Int{0: big.NewInt(5), 1: big.NewInt(6)}

	commitment, secrets, err := Commit(cs, kp.PublicKey, messages, []int{0, 1}, nil)
	require.NoError(t, err)

	nonce := []byte("marshal-nonce")
	proof, err := ProveCommitmentOpening(cs, kp.PublicKey, commitment, secrets, nonce, nil)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var decoded CommitmentProof
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.NoError(t, VerifyCommitmentOpening(cs, kp.PublicKey, commitment, &decoded, nonce))
}

func TestCommitmentKeyMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	ck, err := GenerateCommitmentKey(cs, 2, nil)
	require.NoError(t, err)

	data, err := ck.MarshalBinary()
	require.NoError(t, err)

	var decoded CommitmentKey
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, 0, decoded.N.Cmp(ck.N))
	require.Equal(t, 2, decoded.MessageCount)
}

func TestCommitmentMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 2)
	messages := map[int]*big.Int{0: big.NewInt(1), 1: big.NewInt(2)}

	commitment, _, err := Commit(cs, kp.PublicKey, messages, []int{0, 1}, nil)
	require.NoError(t, err)

	data, err := commitment.MarshalBinary()
	require.NoError(t, err)

	var decoded Commitment
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, 0, decoded.C.Cmp(commitment.C))
	require.Equal(t, commitment.UndisclosedIndices, decoded.UndisclosedIndices)
}
