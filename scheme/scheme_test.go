package scheme

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/anupsv/anoncred/bbsplus"
	"github.com/anupsv/anoncred/cl03"
	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"
)

// schemeTestCL03 mirrors cl03_test.go's testCiphersuite: a
// modulus far below CL03SHA256's 2048 bits so safe-prime generation in
// the façade's own tests finishes in milliseconds.
var schemeTestCL03 = cl03.Ciphersuite{
	ID:                "CL03-FACADE-TEST-",
	LN:                256,
	LM:                64,
	LE:                80,
	LS:                400,
	LR:                400,
	LZero:             16,
	LC:                32,
	MillerRabinRounds: 10,
}

// TestFacadeBBSPlusSignVerify exercises spec.md 8 scenario S1-S3 and
// invariant 3 through the generic Scheme façade rather than the bbsplus
// package directly.
func TestFacadeBBSPlusSignVerify(t *testing.T) {
	cs := &Ciphersuite{Kind: BBSPlus, BBSPlus: &bbsplus.BLS12381SHA256}
	sch, err := New(cs, 3, nil)
	require.NoError(t, err)

	kp, err := GenerateKeyPair(sch, nil, bytes.Repeat([]byte{0x11}, 32), []byte("facade-test"))
	require.NoError(t, err)
	pk, sk := PublicKeyOf(kp), PrivateKeyOf(kp)

	messages := Messages{0: big.NewInt(1), 1: big.NewInt(2), 2: big.NewInt(3)}
	header := []byte("facade-header")

	sig, err := Sign(sch, sk, pk, messages, header, nil)
	require.NoError(t, err)
	require.NoError(t, Verify(sch, pk, sig, messages, header))

	tampered := Messages{0: big.NewInt(9), 1: big.NewInt(2), 2: big.NewInt(3)}
	require.Error(t, Verify(sch, pk, sig, tampered, header))
}

// TestFacadeBBSPlusSelectiveDisclosure exercises S4 and invariant 5
// through the façade's bitset-based disclosed/undisclosed index sets.
func TestFacadeBBSPlusSelectiveDisclosure(t *testing.T) {
	cs := &Ciphersuite{Kind: BBSPlus, BBSPlus: &bbsplus.BLS12381SHA256}
	sch, err := New(cs, 3, nil)
	require.NoError(t, err)

	kp, err := GenerateKeyPair(sch, nil, bytes.Repeat([]byte{0x22}, 32), nil)
	require.NoError(t, err)
	pk, sk := PublicKeyOf(kp), PrivateKeyOf(kp)

	messages := Messages{0: big.NewInt(10), 1: big.NewInt(20), 2: big.NewInt(30)}
	header := []byte("issuance-header")
	ph := []byte("presentation-header")

	sig, err := Sign(sch, sk, pk, messages, header, nil)
	require.NoError(t, err)

	disclosed := bitset.New(0).Set(0).Set(2)
	proof, revealed, err := ProofGen(sch, pk, sig, messages, disclosed, header, ph, nil)
	require.NoError(t, err)
	require.Len(t, revealed, 2)

	require.NoError(t, ProofVerify(sch, pk, proof, revealed, header, ph))

	revealed[0] = new(big.Int).Add(revealed[0], big.NewInt(1))
	require.Error(t, ProofVerify(sch, pk, proof, revealed, header, ph))
}

// TestFacadeBBSPlusBlindIssuance exercises S5: commit -> ZKPoK -> blind
// sign -> unblind -> verify, plus the invariant-7 rejection when the
// ZKPoK was generated against the wrong committed scalars.
func TestFacadeBBSPlusBlindIssuance(t *testing.T) {
	cs := &Ciphersuite{Kind: BBSPlus, BBSPlus: &bbsplus.BLS12381SHA256}
	sch, err := New(cs, 3, nil)
	require.NoError(t, err)

	kp, err := GenerateKeyPair(sch, nil, bytes.Repeat([]byte{0x33}, 32), nil)
	require.NoError(t, err)
	pk, sk := PublicKeyOf(kp), PrivateKeyOf(kp)

	undisclosed := bitset.New(0).Set(1)
	hidden := Messages{1: big.NewInt(20)}
	disclosed := Messages{0: big.NewInt(10), 2: big.NewInt(30)}

	commitment, secrets, err := Commit(sch, pk, hidden, undisclosed, nil)
	require.NoError(t, err)

	nonce := []byte("aaaa")
	zkpok, err := ZKPoKProve(sch, pk, commitment, secrets, nonce, nil)
	require.NoError(t, err)
	require.NoError(t, ZKPoKVerify(sch, pk, commitment, zkpok, nonce))

	blindSig, err := BlindSign(sch, sk, pk, commitment, zkpok, nonce, disclosed, nil, nil)
	require.NoError(t, err)

	sig, err := Unblind(sch, blindSig, secrets)
	require.NoError(t, err)

	full := Messages{0: big.NewInt(10), 1: big.NewInt(20), 2: big.NewInt(30)}
	require.NoError(t, Verify(sch, pk, sig, full, nil))

	// Swapping the unrevealed message and re-running ZKPoK must make
	// BlindSign fail (spec.md 8 invariant 7 / scenario S5).
	wrongHidden := Messages{1: big.NewInt(21)}
	wrongCommitment, wrongSecrets, err := Commit(sch, pk, wrongHidden, undisclosed, nil)
	require.NoError(t, err)
	wrongZKPoK, err := ZKPoKProve(sch, pk, wrongCommitment, wrongSecrets, nonce, nil)
	require.NoError(t, err)

	_, err = BlindSign(sch, sk, pk, commitment, wrongZKPoK, nonce, disclosed, nil, nil)
	require.Error(t, err)
}

// TestFacadeCL03EndToEnd exercises S6: key-gen -> commit -> ZKPoK ->
// blind-sign -> unblind -> verify -> SPoK -> SPoK-verify, all through the
// generic façade against a CL03 ciphersuite.
func TestFacadeCL03EndToEnd(t *testing.T) {
	cs := &Ciphersuite{Kind: CL03, CL03: &schemeTestCL03}
	sch, err := New(cs, 3, nil)
	require.NoError(t, err)

	kp, err := GenerateKeyPair(sch, nil, nil, nil)
	require.NoError(t, err)
	pk, sk := PublicKeyOf(kp), PrivateKeyOf(kp)

	undisclosed := bitset.New(0).Set(0)
	hidden := Messages{0: big.NewInt(7)}
	disclosed := Messages{1: big.NewInt(11), 2: big.NewInt(13)}

	commitment, secrets, err := Commit(sch, pk, hidden, undisclosed, nil)
	require.NoError(t, err)

	nonce := []byte("cl03-session-nonce")
	zkpok, err := ZKPoKProve(sch, pk, commitment, secrets, nonce, nil)
	require.NoError(t, err)
	require.NoError(t, ZKPoKVerify(sch, pk, commitment, zkpok, nonce))

	blindSig, err := BlindSign(sch, sk, pk, commitment, zkpok, nonce, disclosed, nil, nil)
	require.NoError(t, err)

	sig, err := Unblind(sch, blindSig, secrets)
	require.NoError(t, err)

	full := Messages{0: big.NewInt(7), 1: big.NewInt(11), 2: big.NewInt(13)}
	require.NoError(t, Verify(sch, pk, sig, full, nil))

	spokDisclosed := bitset.New(0).Set(1).Set(2)
	ph := []byte("cl03-presentation-header")
	proof, revealed, err := ProofGen(sch, pk, sig, full, spokDisclosed, nil, ph, nil)
	require.NoError(t, err)
	require.Len(t, revealed, 2)

	require.NoError(t, ProofVerify(sch, pk, proof, revealed, nil, ph))
}

// TestFacadeRejectsMixedSchemeValues checks spec.md 4.3's requirement
// that mixing objects from different ciphersuites is rejected rather
// than silently mishandled.
func TestFacadeRejectsMixedSchemeValues(t *testing.T) {
	bbsCS := &Ciphersuite{Kind: BBSPlus, BBSPlus: &bbsplus.BLS12381SHA256}
	bbsSch, err := New(bbsCS, 2, nil)
	require.NoError(t, err)
	bbsKP, err := GenerateKeyPair(bbsSch, nil, bytes.Repeat([]byte{0x44}, 32), nil)
	require.NoError(t, err)

	cl03CS := &Ciphersuite{Kind: CL03, CL03: &schemeTestCL03}
	cl03Sch, err := New(cl03CS, 2, nil)
	require.NoError(t, err)
	cl03KP, err := GenerateKeyPair(cl03Sch, nil, nil, nil)
	require.NoError(t, err)

	messages := Messages{0: big.NewInt(1), 1: big.NewInt(2)}
	_, err = Sign(bbsSch, PrivateKeyOf(cl03KP), PublicKeyOf(bbsKP), messages, nil, nil)
	require.ErrorIs(t, err, ErrCiphersuiteMismatch)
}
