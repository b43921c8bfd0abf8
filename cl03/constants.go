package cl03

import "errors"

var (
	// ErrInvalidKeyMaterial is returned when safe-prime generation or key
	// derivation fails to meet the ciphersuite's security target.
	ErrInvalidKeyMaterial = errors.New("cl03: invalid key material")

	// ErrInvalidSignature is returned when a signature fails to verify.
	ErrInvalidSignature = errors.New("cl03: invalid signature")

	// ErrInvalidProof is returned when a ZKPoK or SPoK fails its
	// Fiat-Shamir or algebraic check.
	ErrInvalidProof = errors.New("cl03: invalid proof")

	// ErrIndexOutOfRange is returned when a disclosed/undisclosed index is
	// out of bounds or duplicated.
	ErrIndexOutOfRange = errors.New("cl03: index out of range")

	// ErrInconsistentLength is returned when a message vector's length
	// doesn't match the key's message-slot count.
	ErrInconsistentLength = errors.New("cl03: inconsistent message length")

	// ErrNonceRequired is returned when blind issuance is invoked without
	// a nonce.
	ErrNonceRequired = errors.New("cl03: nonce required for blind issuance")

	// ErrInvalidScalar is returned when a decoded integer falls outside
	// its expected range.
	ErrInvalidScalar = errors.New("cl03: invalid integer value")
)
