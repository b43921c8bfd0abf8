package bbsplus

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMessages(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = big.NewInt(int64(1000 + i))
	}
	return out
}

func testKeyPair(t *testing.T, cs *Ciphersuite, messageCount int) *KeyPair {
	t.Helper()
	ikm := bytes.Repeat([]byte{0x42}, 32)
	kp, err := GenerateKeyPair(cs, ikm, []byte("test-key-info"), messageCount)
	require.NoError(t, err)
	return kp
}

func TestGenerateKeyPairDeterministic(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x01}, 32)
	kp1, err := GenerateKeyPair(&BLS12381SHA256, ikm, nil, 4)
	require.NoError(t, err)
	kp2, err := GenerateKeyPair(&BLS12381SHA256, ikm, nil, 4)
	require.NoError(t, err)

	require.Equal(t, 0, kp1.PrivateKey.X.Cmp(kp2.PrivateKey.X))
	require.True(t, kp1.PublicKey.W.Equal(&kp2.PublicKey.W))
}

func TestGenerateKeyPairRejectsShortIKM(t *testing.T) {
	_, err := GenerateKeyPair(&BLS12381SHA256, []byte("too-short"), nil, 2)
	require.ErrorIs(t, err, ErrInvalidKeyMaterial)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, cs := range []*Ciphersuite{&BLS12381SHA256, &BLS12381SHAKE256} {
		kp := testKeyPair(t, cs, 5)
		messages := testMessages(5)
		header := []byte("application-header")

		sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, header, nil)
		require.NoError(t, err)

		err = Verify(kp.PublicKey, sig, messages, header)
		require.NoError(t, err)
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)
	messages := testMessages(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	tampered := append([]*big.Int(nil), messages...)
	tampered[1] = new(big.Int).Add(tampered[1], big.NewInt(1))

	err = Verify(kp.PublicKey, sig, tampered, nil)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsWrongHeader(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 2)
	messages := testMessages(2)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, []byte("h1"), nil)
	require.NoError(t, err)

	err = Verify(kp.PublicKey, sig, messages, []byte("h2"))
	require.Error(t, err)
}

func TestSignRejectsWrongMessageCount(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)

	_, err := Sign(cs, kp.PrivateKey, kp.PublicKey, testMessages(2), nil, nil)
	require.ErrorIs(t, err, ErrInvalidMessageCount)
}

func TestSignatureMarshalRoundTrip(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)
	messages := testMessages(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	data, err := sig.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 48+32+32)

	var decoded Signature
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, decoded.A.Equal(&sig.A))
	require.Equal(t, 0, decoded.E.Cmp(sig.E))
	require.Equal(t, 0, decoded.S.Cmp(sig.S))

	require.NoError(t, Verify(kp.PublicKey, &decoded, messages, nil))
}

func TestPublicKeyPrivateKeyMarshalRoundTrip(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 2)

	pkBytes, err := kp.PublicKey.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, pkBytes, 96)

	var pk PublicKey
	require.NoError(t, pk.UnmarshalBinary(pkBytes))
	require.True(t, pk.W.Equal(&kp.PublicKey.W))

	skBytes, err := kp.PrivateKey.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, skBytes, 32)

	var sk PrivateKey
	require.NoError(t, sk.UnmarshalBinary(skBytes))
	require.Equal(t, 0, sk.X.Cmp(kp.PrivateKey.X))
}

func TestUpdateSignature(t *testing.T) {
	cs := &BLS12381SHA256
	kp := testKeyPair(t, cs, 3)
	messages := testMessages(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil, nil)
	require.NoError(t, err)

	newMsg := big.NewInt(9999)
	updated, err := UpdateSignature(kp.PublicKey, kp.PrivateKey, sig, messages, 1, newMsg, nil)
	require.NoError(t, err)

	newMessages := append([]*big.Int(nil), messages...)
	newMessages[1] = newMsg
	require.NoError(t, Verify(kp.PublicKey, updated, newMessages, nil))

	// the old message vector should no longer verify against the updated signature.
	require.Error(t, Verify(kp.PublicKey, updated, messages, nil))
}
