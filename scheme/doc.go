// Package scheme is the generic façade over the library's two algebraic
// backends: bbsplus (pairing-based, BLS12-381) and cl03 (strong-RSA). It
// exposes one uniform operation set — key generation, commitment, ZKPoK of
// a commitment opening, blind issuance, signing, verification, and
// selective-disclosure proof generation/verification — and dispatches each
// call to whichever backend a Scheme value was constructed with.
//
// Every exported value (KeyPair, Signature, Commitment, Proof, ...) is a
// tagged union: a Kind field plus two mutually exclusive payload fields,
// never both populated. This mirrors how the backends' own algebra
// differs too much to share a common struct layout, while still letting
// callers write backend-agnostic code against a single Go type.
package scheme
