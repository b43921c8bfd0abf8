// Package bbsplus implements the BBS+ multi-message signature scheme over
// the BLS12-381 pairing-friendly curve, following the shape of the IRTF
// draft-irtf-cfrg-bbs-signatures family: keypair generation, deterministic
// generator derivation, signing and verification, Pedersen-style
// commitment to a subset of messages with a zero-knowledge proof of
// opening, blind signature issuance over that commitment, and a
// non-interactive proof of knowledge of a signature with selective
// disclosure (SPoK).
//
// Every randomized operation except BatchVerifyProofs takes an io.Reader
// so callers can supply a deterministic source for reproducible test
// vectors; nil defaults to crypto/rand.Reader. BatchVerifyProofs always
// draws its batching scalars from crypto/rand.Reader. All exported types
// are immutable value types once constructed and are safe to share across
// goroutines.
//
// This package implements the legacy (A, e, s) signature profile from the
// draft's history rather than the newer (A, e) profile; see DESIGN.md for
// the rationale. A Ciphersuite value carries every parameter (hash
// algorithm, domain-separation tags, expand-message backend) needed to
// reproduce a given deployment's outputs bit-for-bit; it is never read
// from ambient global state.
package bbsplus
