package cl03

// Ciphersuite bundles every CL03 security parameter, named after the bit
// lengths in spec.md 4.2: LN (modulus), LM (message), LE (signature
// exponent prime), LS (signature randomizer), LR (blinding randomizer),
// LZero (statistical zero-knowledge slack, written l-empty), and LC (the
// Fiat-Shamir challenge length, which spec.md 9 open question (b) calls
// out as non-uniform across fixtures and therefore a ciphersuite field
// rather than a constant).
type Ciphersuite struct {
	// ID is the ciphersuite identifier octet string, e.g. "CL03-SHA256-",
	// fed into every domain-separated hash this package computes.
	ID string

	LN    int // modulus bit length; p, q each LN/2 bits
	LM    int // message bit length
	LE    int // signature prime exponent e's bit length
	LS    int // signature randomizer s's bit length
	LR    int // commitment/proof randomizer bit length
	LZero int // statistical hiding slack added to randomizer ranges
	LC    int // Fiat-Shamir challenge bit length

	// MillerRabinRounds fixes the safe-prime primality test's security
	// target; higher means slower key generation and lower false-positive
	// probability.
	MillerRabinRounds int

	// HashShake256 selects SHAKE-256 (golang.org/x/crypto/sha3) for every
	// Fiat-Shamir challenge this ciphersuite computes; when false, SHA-256
	// is used instead.
	HashShake256 bool
}

// CL03SHA256 is a reference parameter set: a 2048-bit modulus split
// across p, q, with message/challenge lengths typical of published CL03
// deployments. Key generation at this size takes seconds, so the tests
// use smaller parameter sets of their own.
var CL03SHA256 = Ciphersuite{
	ID:                "CL03-SHA256-",
	LN:                2048,
	LM:                256,
	LE:                597,
	LS:                2724,
	LR:                2724,
	LZero:             80,
	LC:                256,
	MillerRabinRounds: 20,
}

// CL03SHAKE256 mirrors CL03SHA256 but is domain-separated for the SHAKE
// hash family.
var CL03SHAKE256 = Ciphersuite{
	ID:                "CL03-SHAKE256-",
	LN:                2048,
	LM:                256,
	LE:                597,
	LS:                2724,
	LR:                2724,
	LZero:             80,
	LC:                256,
	MillerRabinRounds: 20,
	HashShake256:      true,
}
