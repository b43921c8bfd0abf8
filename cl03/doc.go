// Package cl03 implements the Camenisch-Lysyanskaya (2003) strong-RSA
// signature scheme: key generation over a safe-RSA modulus, signing and
// verification of multiple message attributes, Pedersen-style commitments
// over QR_N, blind issuance, and a NISP5-MultiAttr signature proof of
// knowledge with selective disclosure. It mirrors the shape of the
// bbsplus package (same operation names, same RNG-injection convention)
// but every value lives in math/big rather than on an elliptic curve.
//
// Every randomized operation takes an io.Reader, defaulting to
// crypto/rand.Reader when nil, so tests can substitute a deterministic
// source. A Ciphersuite fixes the RSA modulus bit-length and every other
// security parameter (message, challenge and statistical-hiding bit
// lengths); two parties that agree on a Ciphersuite derive compatible key
// material.
package cl03
