package bbsplus

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/crypto/hkdf"
)

const minIKMLength = 32

// hkdfKeyGen derives a secret scalar from input keying material following
// spec.md 4.1.1 "hkdf_key_gen": salt starts at H("BBS-SIG-KEYGEN-SALT-" ||
// ciphersuite_id) and is re-hashed each time HKDF-Expand's output reduces to
// zero mod r, which for a uniform PRF output happens with negligible
// probability but is handled explicitly to keep the function total.
func hkdfKeyGen(cs *Ciphersuite, ikm, keyInfo []byte, messageCount int) (*big.Int, error) {
	if len(ikm) < minIKMLength {
		return nil, ErrInvalidKeyMaterial
	}

	saltSeed := sha256.Sum256(append([]byte("BBS-SIG-KEYGEN-SALT-"), cs.ID...))
	salt := saltSeed[:]

	info := make([]byte, 0, len(cs.ID)+len(keyInfo)+1+2)
	info = append(info, cs.ID...)
	info = append(info, keyInfo...)
	info = append(info, 0x00)
	info = append(info, I2OSP(messageCount, 2)...)

	for attempt := 0; attempt < 256; attempt++ {
		reader := hkdf.New(sha256.New, ikm, salt, info)
		out := make([]byte, 48)
		if _, err := io.ReadFull(reader, out); err != nil {
			return nil, fmt.Errorf("bbsplus: hkdf expand: %w", err)
		}
		sk := new(big.Int).SetBytes(out)
		sk.Mod(sk, Order)
		if sk.Sign() != 0 {
			return sk, nil
		}
		next := sha256.Sum256(salt)
		salt = next[:]
	}
	return nil, ErrInvalidKeyMaterial
}

// GenerateKeyPair derives a BBS+ key pair from input keying material,
// following spec.md 4.1.1. messageCount fixes how many H_i generators the
// resulting PublicKey carries.
func GenerateKeyPair(cs *Ciphersuite, ikm, keyInfo []byte, messageCount int) (*KeyPair, error) {
	if messageCount < 0 {
		return nil, ErrInvalidMessageCount
	}
	x, err := hkdfKeyGen(cs, ikm, keyInfo, messageCount)
	if err != nil {
		return nil, err
	}
	return keyPairFromScalar(cs, x, messageCount)
}

// GenerateKeyPairRandom draws fresh random IKM from rng (crypto/rand.Reader
// if nil) and derives a key pair from it, for callers that don't need
// IKM-level reproducibility.
func GenerateKeyPairRandom(cs *Ciphersuite, rng io.Reader, messageCount int) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	ikm := make([]byte, 48)
	if _, err := io.ReadFull(rng, ikm); err != nil {
		return nil, fmt.Errorf("bbsplus: reading IKM: %w", err)
	}
	return GenerateKeyPair(cs, ikm, nil, messageCount)
}

func keyPairFromScalar(cs *Ciphersuite, x *big.Int, messageCount int) (*KeyPair, error) {
	_, _, g1, g2 := bls12381.Generators()

	wJac := g2ScalarMul(&g2, x)
	w := g2JacToAffine(&wJac)

	gens, err := CreateGenerators(cs, messageCount+2)
	if err != nil {
		return nil, err
	}

	pk := &PublicKey{
		W:            w,
		G1:           g1,
		G2:           g2,
		Q1:           gens[0],
		Q2:           gens[1],
		H:            gens[2:],
		MessageCount: messageCount,
		Ciphersuite:  cs,
	}
	return &KeyPair{
		PrivateKey: &PrivateKey{X: x},
		PublicKey:  pk,
	}, nil
}
