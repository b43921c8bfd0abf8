package cl03

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// challengeDigest hashes buf under the ciphersuite's selected hash
// function, truncated to outLen bytes. SHA-256 ciphersuites read the
// fixed digest directly (outLen must be <= 32); SHAKE-256 ciphersuites
// squeeze exactly outLen bytes from the XOF.
func challengeDigest(cs *Ciphersuite, buf []byte, outLen int) []byte {
	if cs.HashShake256 {
		xof := sha3.NewShake256()
		xof.Write(buf)
		out := make([]byte, outLen)
		xof.Read(out)
		return out
	}
	h := sha256.Sum256(buf)
	if outLen > len(h) {
		outLen = len(h)
	}
	return h[:outLen]
}

// hashToChallenge reduces a domain-separated hash of buf to a value in
// [0, 2^LC), per spec.md 9 open question (b).
func hashToChallenge(cs *Ciphersuite, buf []byte) *big.Int {
	outLen := (cs.LC + 7) / 8
	digest := challengeDigest(cs, buf, outLen)
	v := new(big.Int).SetBytes(digest)
	mod := new(big.Int).Lsh(big1, uint(cs.LC))
	return v.Mod(v, mod)
}
