package bbsplus

// ExpandMode selects the variable-output-length PRF backend used by
// expand_message (RFC 9380): XMD wraps a plain digest (SHA-256), XOF
// consumes an extendable-output function (SHAKE-256) directly.
type ExpandMode int

const (
	ExpandModeXMD ExpandMode = iota
	ExpandModeXOF
)

// Profile selects which signature shape a Ciphersuite produces. Only
// ProfileLegacy is implemented; see DESIGN.md for why.
type Profile int

const (
	// ProfileLegacy signs (A, e, s): B = P1 + Q1*s + Q2*dom + sum(H_i*m_i).
	ProfileLegacy Profile = iota
)

// Ciphersuite is an immutable, compile-time-style parameter bundle: the
// identifier octets, expand-message backend, and domain-separation tags
// that fix every hash-based choice a BBS+ operation makes. Two parties
// that agree on a Ciphersuite and a message count derive identical
// generators and reproduce identical signatures for identical inputs.
type Ciphersuite struct {
	// ID is the ciphersuite_id octet string, e.g.
	// "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_". It is prefixed onto every DST below.
	ID string

	Expand ExpandMode

	Profile Profile

	// GeneratorSeedDST seeds create_generators.
	GeneratorSeedDST []byte

	// MessageDST seeds map_message_to_scalar.
	MessageDST []byte

	// ChallengeDST seeds hash_to_scalar for Fiat-Shamir challenges.
	ChallengeDST []byte

	// SignDST seeds the deterministic derivation of e during Sign.
	SignDST []byte

	// DomainDST seeds the domain-scalar computation shared by sign, verify
	// and proof generation/verification.
	DomainDST []byte
}

// BLS12381SHA256 is the "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_" ciphersuite.
var BLS12381SHA256 = Ciphersuite{
	ID:               "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_",
	Expand:           ExpandModeXMD,
	Profile:          ProfileLegacy,
	GeneratorSeedDST: []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_SIG_GENERATOR_SEED_"),
	MessageDST:       []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_MAP_MSG_TO_SCALAR_AS_HASH_"),
	ChallengeDST:     []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_H2S_"),
	SignDST:          []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_SIG_DET_"),
	DomainDST:        []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_DOM_"),
}

// BLS12381SHAKE256 is the "BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_" ciphersuite.
var BLS12381SHAKE256 = Ciphersuite{
	ID:               "BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_",
	Expand:           ExpandModeXOF,
	Profile:          ProfileLegacy,
	GeneratorSeedDST: []byte("BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_SIG_GENERATOR_SEED_"),
	MessageDST:       []byte("BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_MAP_MSG_TO_SCALAR_AS_HASH_"),
	ChallengeDST:     []byte("BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_H2S_"),
	SignDST:          []byte("BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_SIG_DET_"),
	DomainDST:        []byte("BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_DOM_"),
}
