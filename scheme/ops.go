package scheme

import (
	"io"
	"math/big"

	"github.com/anupsv/anoncred/bbsplus"
	"github.com/anupsv/anoncred/cl03"
	"github.com/bits-and-blooms/bitset"
)

// Sign issues a signature over messages under sk/pk, per spec.md 4.1.2 /
// 4.2.2.
func Sign(sch *Scheme, sk *PrivateKey, pk *PublicKey, messages Messages, header []byte, rng io.Reader) (*Signature, error) {
	if err := sch.checkKind(sk.Kind, pk.Kind); err != nil {
		return nil, err
	}
	slice, err := toSlice(messages, sch.MessageCount)
	if err != nil {
		return nil, err
	}
	switch sch.Kind {
	case BBSPlus:
		sig, err := bbsplus.Sign(sch.Ciphersuite.BBSPlus, sk.BBSPlus, pk.BBSPlus, slice, header, rng)
		if err != nil {
			return nil, err
		}
		return &Signature{Kind: BBSPlus, BBSPlus: sig}, nil
	case CL03:
		sig, err := cl03.Sign(sch.Ciphersuite.CL03, sk.CL03, pk.CL03, slice, rng)
		if err != nil {
			return nil, err
		}
		return &Signature{Kind: CL03, CL03: sig}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Verify checks a signature over messages under pk, per spec.md 4.1.2 /
// 4.2.2. CL03 has no header concept; header is ignored for that backend.
func Verify(sch *Scheme, pk *PublicKey, sig *Signature, messages Messages, header []byte) error {
	if err := sch.checkKind(pk.Kind, sig.Kind); err != nil {
		return err
	}
	slice, err := toSlice(messages, sch.MessageCount)
	if err != nil {
		return err
	}
	switch sch.Kind {
	case BBSPlus:
		return bbsplus.Verify(pk.BBSPlus, sig.BBSPlus, slice, header)
	case CL03:
		return cl03.Verify(sch.Ciphersuite.CL03, pk.CL03, sig.CL03, slice)
	default:
		return ErrUnknownKind
	}
}

// Commit produces a commitment to the messages at the bits set in
// undisclosed, per spec.md 4.1.4 / 4.2.3.
func Commit(sch *Scheme, pk *PublicKey, messages Messages, undisclosed *bitset.BitSet, rng io.Reader) (*Commitment, *CommitmentSecrets, error) {
	if err := sch.checkKind(pk.Kind); err != nil {
		return nil, nil, err
	}
	indices := disclosedIndices(undisclosed)
	switch sch.Kind {
	case BBSPlus:
		c, s, err := bbsplus.Commit(pk.BBSPlus, messages, indices, rng)
		if err != nil {
			return nil, nil, err
		}
		return &Commitment{Kind: BBSPlus, BBSPlus: c}, &CommitmentSecrets{Kind: BBSPlus, BBSPlus: s}, nil
	case CL03:
		c, s, err := cl03.Commit(sch.Ciphersuite.CL03, pk.CL03, messages, indices, rng)
		if err != nil {
			return nil, nil, err
		}
		return &Commitment{Kind: CL03, CL03: c}, &CommitmentSecrets{Kind: CL03, CL03: s}, nil
	default:
		return nil, nil, ErrUnknownKind
	}
}

// ZKPoKProve generates a non-interactive proof of knowledge of a
// commitment's opening, bound to nonce, per spec.md 4.1.4 / 4.2.3.
func ZKPoKProve(sch *Scheme, pk *PublicKey, commitment *Commitment, secrets *CommitmentSecrets, nonce []byte, rng io.Reader) (*CommitmentProof, error) {
	if err := sch.checkKind(pk.Kind, commitment.Kind, secrets.Kind); err != nil {
		return nil, err
	}
	switch sch.Kind {
	case BBSPlus:
		p, err := bbsplus.ProveCommitmentOpening(sch.Ciphersuite.BBSPlus, pk.BBSPlus, commitment.BBSPlus, secrets.BBSPlus, nonce, rng)
		if err != nil {
			return nil, err
		}
		return &CommitmentProof{Kind: BBSPlus, BBSPlus: p}, nil
	case CL03:
		p, err := cl03.ProveCommitmentOpening(sch.Ciphersuite.CL03, pk.CL03, commitment.CL03, secrets.CL03, nonce, rng)
		if err != nil {
			return nil, err
		}
		return &CommitmentProof{Kind: CL03, CL03: p}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ZKPoKVerify checks a CommitmentProof against commitment and nonce.
func ZKPoKVerify(sch *Scheme, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte) error {
	if err := sch.checkKind(pk.Kind, commitment.Kind, proof.Kind); err != nil {
		return err
	}
	switch sch.Kind {
	case BBSPlus:
		return bbsplus.VerifyCommitmentOpening(sch.Ciphersuite.BBSPlus, pk.BBSPlus, commitment.BBSPlus, proof.BBSPlus, nonce)
	case CL03:
		return cl03.VerifyCommitmentOpening(sch.Ciphersuite.CL03, pk.CL03, commitment.CL03, proof.CL03, nonce)
	default:
		return ErrUnknownKind
	}
}

// BlindSign issues a signature over a commitment plus the issuer's own
// disclosed messages, per spec.md 4.1.4 / 4.2.5. It first verifies the
// holder's ZKPoK of the commitment opening against nonce and, before
// signing anything, fails with the backend's ErrNonceRequired if nonce is
// empty or with its ErrInvalidProof if the proof does not verify.
func BlindSign(sch *Scheme, sk *PrivateKey, pk *PublicKey, commitment *Commitment, proof *CommitmentProof, nonce []byte, disclosedMessages Messages, header []byte, rng io.Reader) (*Signature, error) {
	if err := sch.checkKind(sk.Kind, pk.Kind, commitment.Kind, proof.Kind); err != nil {
		return nil, err
	}
	switch sch.Kind {
	case BBSPlus:
		sig, err := bbsplus.BlindSign(sch.Ciphersuite.BBSPlus, sk.BBSPlus, pk.BBSPlus, commitment.BBSPlus, proof.BBSPlus, nonce, disclosedMessages, header, rng)
		if err != nil {
			return nil, err
		}
		return &Signature{Kind: BBSPlus, BBSPlus: sig}, nil
	case CL03:
		sig, err := cl03.BlindSign(sch.Ciphersuite.CL03, sk.CL03, pk.CL03, commitment.CL03, proof.CL03, nonce, disclosedMessages, rng)
		if err != nil {
			return nil, err
		}
		return &Signature{Kind: CL03, CL03: sig}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Unblind folds the holder's commitment secrets into a signature returned
// by BlindSign, per spec.md 4.1.4 / 4.2.5.
func Unblind(sch *Scheme, sig *Signature, secrets *CommitmentSecrets) (*Signature, error) {
	if err := sch.checkKind(sig.Kind, secrets.Kind); err != nil {
		return nil, err
	}
	switch sch.Kind {
	case BBSPlus:
		return &Signature{Kind: BBSPlus, BBSPlus: bbsplus.Unblind(sig.BBSPlus, secrets.BBSPlus)}, nil
	case CL03:
		return &Signature{Kind: CL03, CL03: cl03.Unblind(sig.CL03, secrets.CL03)}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ProofGen produces a selective-disclosure signature proof of knowledge,
// revealing the messages at the bits set in disclosed, per spec.md 4.1.3 /
// 4.2.4. It returns the proof and the disclosed messages the verifier
// needs for ProofVerify.
func ProofGen(sch *Scheme, pk *PublicKey, sig *Signature, messages Messages, disclosed *bitset.BitSet, header, presentationHeader []byte, rng io.Reader) (*Proof, Messages, error) {
	if err := sch.checkKind(pk.Kind, sig.Kind); err != nil {
		return nil, nil, err
	}
	indices := disclosedIndices(disclosed)
	switch sch.Kind {
	case BBSPlus:
		slice, err := toSlice(messages, sch.MessageCount)
		if err != nil {
			return nil, nil, err
		}
		p, revealed, err := bbsplus.ProofGen(pk.BBSPlus, sig.BBSPlus, slice, indices, header, presentationHeader, rng)
		if err != nil {
			return nil, nil, err
		}
		return &Proof{Kind: BBSPlus, BBSPlus: p}, Messages(revealed), nil
	case CL03:
		if sch.cl03CommitmentKey == nil {
			return nil, nil, ErrCiphersuiteMismatch
		}
		p, revealed, err := cl03.ProveSignatureKnowledge(sch.Ciphersuite.CL03, pk.CL03, sch.cl03CommitmentKey, sig.CL03, messages, indices, presentationHeader, rng)
		if err != nil {
			return nil, nil, err
		}
		return &Proof{Kind: CL03, CL03: p}, Messages(revealed), nil
	default:
		return nil, nil, ErrUnknownKind
	}
}

// ProofVerify checks a Proof against the disclosed messages it claims to
// reveal, per spec.md 4.1.3 / 4.2.4.
func ProofVerify(sch *Scheme, pk *PublicKey, proof *Proof, disclosedMessages Messages, header, presentationHeader []byte) error {
	if err := sch.checkKind(pk.Kind, proof.Kind); err != nil {
		return err
	}
	switch sch.Kind {
	case BBSPlus:
		return bbsplus.ProofVerify(pk.BBSPlus, proof.BBSPlus, disclosedMessages, header, presentationHeader)
	case CL03:
		if sch.cl03CommitmentKey == nil {
			return ErrCiphersuiteMismatch
		}
		return cl03.VerifySignatureKnowledge(sch.Ciphersuite.CL03, pk.CL03, sch.cl03CommitmentKey, proof.CL03, disclosedMessages, presentationHeader)
	default:
		return ErrUnknownKind
	}
}

// UpdateSignature substitutes newMessage at index into a previously
// signed message vector and re-derives a signature, per spec.md 4.1's
// optional update-signature extension (open question (a)). CL03 has no
// counterpart in this library; it returns ErrCiphersuiteMismatch.
func UpdateSignature(sch *Scheme, sk *PrivateKey, pk *PublicKey, sig *Signature, messages Messages, index int, newMessage *big.Int, header []byte) (*Signature, error) {
	if err := sch.checkKind(sk.Kind, pk.Kind, sig.Kind); err != nil {
		return nil, err
	}
	if sch.Kind != BBSPlus {
		return nil, ErrCiphersuiteMismatch
	}
	slice, err := toSlice(messages, sch.MessageCount)
	if err != nil {
		return nil, err
	}
	updated, err := bbsplus.UpdateSignature(pk.BBSPlus, sk.BBSPlus, sig.BBSPlus, slice, index, newMessage, header)
	if err != nil {
		return nil, err
	}
	return &Signature{Kind: BBSPlus, BBSPlus: updated}, nil
}
