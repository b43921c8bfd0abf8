package bbsplus

import (
	"errors"
	"math/big"
)

var (
	// ErrInvalidMessageCount is returned when the number of messages doesn't match the key parameters.
	ErrInvalidMessageCount = errors.New("bbsplus: invalid message count")

	// ErrInvalidSignature is returned when a signature fails to parse or verify.
	ErrInvalidSignature = errors.New("bbsplus: invalid signature")

	// ErrInvalidProof is returned when a proof's Fiat-Shamir challenge does not match
	// or its algebraic check fails.
	ErrInvalidProof = errors.New("bbsplus: invalid proof")

	// ErrInvalidKeyMaterial is returned when IKM is too short or key derivation
	// never produces a non-zero scalar.
	ErrInvalidKeyMaterial = errors.New("bbsplus: invalid key material")

	// ErrInvalidPoint is returned when an octet string does not decode to a
	// valid prime-order-subgroup point.
	ErrInvalidPoint = errors.New("bbsplus: invalid curve point")

	// ErrInvalidScalar is returned when scalar octets encode a value >= the group order.
	ErrInvalidScalar = errors.New("bbsplus: invalid scalar")

	// ErrIndexOutOfRange is returned when a disclosed/undisclosed index is out of bounds
	// or duplicated.
	ErrIndexOutOfRange = errors.New("bbsplus: index out of range")

	// ErrInconsistentLength is returned when the messages handed to Commit or
	// BlindSign do not line up with the index sets: a committed index has no
	// message, or an index is both committed and disclosed.
	ErrInconsistentLength = errors.New("bbsplus: inconsistent generator/message length")

	// ErrNonceRequired is returned when blind issuance is invoked without a nonce.
	ErrNonceRequired = errors.New("bbsplus: nonce required for blind issuance")

	// ErrPairingFailed is returned when the underlying pairing computation errors out.
	ErrPairingFailed = errors.New("bbsplus: pairing computation failed")

	// ErrMismatchedLengths is returned by the MSM helper when points and scalars disagree in length.
	ErrMismatchedLengths = errors.New("bbsplus: mismatched points/scalars length")

	// Order is the order r of the BLS12-381 G1/G2 prime-order subgroups.
	Order, _ = new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)
)
