package scheme

import (
	"io"

	"github.com/anupsv/anoncred/bbsplus"
	"github.com/anupsv/anoncred/cl03"
)

// Scheme binds a Ciphersuite and a message-slot count, and is the value
// every façade operation in this package is dispatched through. Mixing a
// Scheme constructed for one backend with a value tagged for the other is
// rejected by every operation below, not just at construction, since
// values can outlive the Scheme that produced them.
type Scheme struct {
	Kind         Kind
	Ciphersuite  *Ciphersuite
	MessageCount int

	// cl03CommitmentKey is the verifier's independently generated
	// commitment-public-key (N', g_1..g_L, h), required by
	// ProveSignatureKnowledge/VerifySignatureKnowledge but unused by
	// bbsplus, whose selective-disclosure proof needs no analogous
	// second group.
	cl03CommitmentKey *cl03.CommitmentKey
}

// New constructs a Scheme for cs and messageCount. For a CL03 Ciphersuite
// it also generates the verifier-side CommitmentKey eagerly, since every
// SPoK operation needs one and it is independent of any signing key.
func New(cs *Ciphersuite, messageCount int, rng io.Reader) (*Scheme, error) {
	if cs == nil || messageCount < 1 {
		return nil, ErrCiphersuiteMismatch
	}
	switch cs.Kind {
	case BBSPlus:
		if cs.BBSPlus == nil {
			return nil, ErrCiphersuiteMismatch
		}
		return &Scheme{Kind: BBSPlus, Ciphersuite: cs, MessageCount: messageCount}, nil
	case CL03:
		if cs.CL03 == nil {
			return nil, ErrCiphersuiteMismatch
		}
		ck, err := cl03.GenerateCommitmentKey(cs.CL03, messageCount, rng)
		if err != nil {
			return nil, err
		}
		return &Scheme{Kind: CL03, Ciphersuite: cs, MessageCount: messageCount, cl03CommitmentKey: ck}, nil
	default:
		return nil, ErrCiphersuiteMismatch
	}
}

// checkKind returns ErrCiphersuiteMismatch unless every given Kind equals
// sch.Kind, the guard every operation below runs before touching payloads.
func (sch *Scheme) checkKind(kinds ...Kind) error {
	for _, k := range kinds {
		if k != sch.Kind {
			return ErrCiphersuiteMismatch
		}
	}
	return nil
}

// GenerateKeyPair draws a fresh (sk, pk) pair for sch's backend. ikm and
// keyInfo are used only by the BBS+ backend's deterministic HKDF
// derivation (spec.md 4.1.1); CL03 draws its safe-prime modulus directly
// from rng and ignores them.
func GenerateKeyPair(sch *Scheme, rng io.Reader, ikm, keyInfo []byte) (*KeyPair, error) {
	switch sch.Kind {
	case BBSPlus:
		kp, err := bbsplus.GenerateKeyPair(sch.Ciphersuite.BBSPlus, ikm, keyInfo, sch.MessageCount)
		if err != nil {
			return nil, err
		}
		return &KeyPair{Kind: BBSPlus, BBSPlus: kp}, nil
	case CL03:
		kp, err := cl03.GenerateKeyPair(sch.Ciphersuite.CL03, sch.MessageCount, rng)
		if err != nil {
			return nil, err
		}
		return &KeyPair{Kind: CL03, CL03: kp}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// PublicKeyOf and PrivateKeyOf split a tagged KeyPair into its two tagged
// halves, the shape every other operation below accepts.
func PublicKeyOf(kp *KeyPair) *PublicKey {
	switch kp.Kind {
	case BBSPlus:
		return &PublicKey{Kind: BBSPlus, BBSPlus: kp.BBSPlus.PublicKey}
	case CL03:
		return &PublicKey{Kind: CL03, CL03: kp.CL03.PublicKey}
	default:
		return nil
	}
}

func PrivateKeyOf(kp *KeyPair) *PrivateKey {
	switch kp.Kind {
	case BBSPlus:
		return &PrivateKey{Kind: BBSPlus, BBSPlus: kp.BBSPlus.PrivateKey}
	case CL03:
		return &PrivateKey{Kind: CL03, CL03: kp.CL03.PrivateKey}
	default:
		return nil
	}
}
