package cl03

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// testCiphersuite uses parameter sizes far below CL03SHA256's 2048-bit
// modulus so safe-prime generation in tests finishes in milliseconds
// instead of seconds, while keeping every exponent-range relationship
// (LE, LS, LZero, LC) proportioned the same way.
var testCiphersuite = Ciphersuite{
	ID:                "CL03-TEST-SHA256-",
	LN:                256,
	LM:                64,
	LE:                80,
	LS:                400,
	LR:                400,
	LZero:             16,
	LC:                32,
	MillerRabinRounds: 10,
}

var testCiphersuiteShake = Ciphersuite{
	ID:                "CL03-TEST-SHAKE256-",
	LN:                256,
	LM:                64,
	LE:                80,
	LS:                400,
	LR:                400,
	LZero:             16,
	LC:                32,
	MillerRabinRounds: 10,
	HashShake256:      true,
}

func testCL03Messages(n int) map[int]*big.Int {
	out := make(map[int]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = big.NewInt(int64(100 + i))
	}
	return out
}

func testCL03MessageSlice(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = big.NewInt(int64(100 + i))
	}
	return out
}

func testCL03KeyPair(t *testing.T, cs *Ciphersuite, messageCount int) *KeyPair {
	t.Helper()
	kp, err := GenerateKeyPair(cs, messageCount, nil)
	require.NoError(t, err)
	return kp
}

func TestGenerateKeyPairProducesDistinctPrimes(t *testing.T) {
	kp := testCL03KeyPair(t, &testCiphersuite, 3)
	require.NotEqual(t, 0, kp.PrivateKey.P.Cmp(kp.PrivateKey.Q))
	n := new(big.Int).Mul(kp.PrivateKey.P, kp.PrivateKey.Q)
	require.Equal(t, 0, n.Cmp(kp.PublicKey.N))
	require.Len(t, kp.PublicKey.A, 3)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, cs := range []*Ciphersuite{&testCiphersuite, &testCiphersuiteShake} {
		kp := testCL03KeyPair(t, cs, 4)
		messages := testCL03MessageSlice(4)

		sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil)
		require.NoError(t, err)
		require.NoError(t, Verify(cs, kp.PublicKey, sig, messages))
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)
	messages := testCL03MessageSlice(3)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil)
	require.NoError(t, err)

	tampered := append([]*big.Int(nil), messages...)
	tampered[0] = new(big.Int).Add(tampered[0], big1)

	require.ErrorIs(t, Verify(cs, kp.PublicKey, sig, tampered), ErrInvalidSignature)
}

func TestSignRejectsWrongMessageCount(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)

	_, err := Sign(cs, kp.PrivateKey, kp.PublicKey, testCL03MessageSlice(2), nil)
	require.ErrorIs(t, err, ErrInconsistentLength)
}

func TestSignatureMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 2)
	messages := testCL03MessageSlice(2)

	sig, err := Sign(cs, kp.PrivateKey, kp.PublicKey, messages, nil)
	require.NoError(t, err)

	data, err := sig.MarshalBinary()
	require.NoError(t, err)

	var decoded Signature
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, 0, decoded.E.Cmp(sig.E))
	require.Equal(t, 0, decoded.S.Cmp(sig.S))
	require.Equal(t, 0, decoded.V.Cmp(sig.V))
	require.NoError(t, Verify(cs, kp.PublicKey, &decoded, messages))
}

func TestPublicKeyPrivateKeyMarshalRoundTrip(t *testing.T) {
	cs := &testCiphersuite
	kp := testCL03KeyPair(t, cs, 3)

	pkBytes, err := kp.PublicKey.MarshalBinary()
	require.NoError(t, err)
	var pk PublicKey
	require.NoError(t, pk.UnmarshalBinary(pkBytes))
	pk.Ciphersuite = cs
	require.Equal(t, 0, pk.N.Cmp(kp.PublicKey.N))
	require.Equal(t, 3, pk.MessageCount)

	skBytes, err := kp.PrivateKey.MarshalBinary()
	require.NoError(t, err)
	var sk PrivateKey
	require.NoError(t, sk.UnmarshalBinary(skBytes))
	require.Equal(t, 0, sk.P.Cmp(kp.PrivateKey.P))
	require.Equal(t, 0, sk.Q.Cmp(kp.PrivateKey.Q))
}
