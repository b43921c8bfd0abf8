package scheme

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/anupsv/anoncred/bbsplus"
	"github.com/anupsv/anoncred/cl03"
	"github.com/bits-and-blooms/bitset"
)

// envelope prefixes payload with a single Kind byte, the format every
// ToBytes function in this file uses.
func envelope(kind Kind, payload []byte) []byte {
	out := make([]byte, 0, 1+len(payload))
	out = append(out, byte(kind))
	return append(out, payload...)
}

func splitEnvelope(data []byte) (Kind, []byte, error) {
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("scheme: empty encoding")
	}
	return Kind(data[0]), data[1:], nil
}

// withIndexSet appends a length-prefixed bitset.BitSet encoding of
// indices, then payload. The façade represents every disclosed/
// undisclosed index set this way in its own wire format, independent of
// how each backend encodes indices internally (spec.md DOMAIN STACK).
func withIndexSet(indices []int, payload []byte) ([]byte, error) {
	bs := indexSet(indices)
	bsBytes, err := bs.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(bsBytes)))
	out := append(lenBuf[:], bsBytes...)
	return append(out, payload...), nil
}

func readIndexSet(data []byte) ([]int, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("scheme: truncated index set length")
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint64(len(data)) < uint64(n) {
		return nil, nil, fmt.Errorf("scheme: truncated index set")
	}
	var bs bitset.BitSet
	if err := bs.UnmarshalBinary(data[:n]); err != nil {
		return nil, nil, err
	}
	return disclosedIndices(&bs), data[n:], nil
}

// ToBytes encodes sig as [Kind][backend encoding].
func (sig *Signature) ToBytes() ([]byte, error) {
	switch sig.Kind {
	case BBSPlus:
		b, err := sig.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, b), nil
	case CL03:
		b, err := sig.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(CL03, b), nil
	default:
		return nil, ErrUnknownKind
	}
}

// SignatureFromBytes decodes a Signature produced by ToBytes.
func SignatureFromBytes(data []byte) (*Signature, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var s bbsplus.Signature
		if err := s.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Signature{Kind: BBSPlus, BBSPlus: &s}, nil
	case CL03:
		var s cl03.Signature
		if err := s.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Signature{Kind: CL03, CL03: &s}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToBytes encodes pk as [Kind][backend encoding].
func (pk *PublicKey) ToBytes() ([]byte, error) {
	switch pk.Kind {
	case BBSPlus:
		b, err := pk.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, b), nil
	case CL03:
		b, err := pk.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(CL03, b), nil
	default:
		return nil, ErrUnknownKind
	}
}

// PublicKeyFromBytes decodes a PublicKey produced by ToBytes. cs must
// match the Ciphersuite the key was generated under; the BBS+ backend's
// generator set and the CL03 backend's Ciphersuite pointer are restored
// from it, mirroring each backend's own UnmarshalBinary convention.
func PublicKeyFromBytes(data []byte, cs *Ciphersuite) (*PublicKey, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	if err := (&Scheme{Kind: kind}).checkKind(cs.Kind); err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var pk bbsplus.PublicKey
		if err := pk.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		pk.Ciphersuite = cs.BBSPlus
		gens, err := bbsplus.CreateGenerators(cs.BBSPlus, pk.MessageCount)
		if err != nil {
			return nil, err
		}
		pk.H = gens
		return &PublicKey{Kind: BBSPlus, BBSPlus: &pk}, nil
	case CL03:
		var pk cl03.PublicKey
		if err := pk.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		pk.Ciphersuite = cs.CL03
		return &PublicKey{Kind: CL03, CL03: &pk}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToBytes encodes sk as [Kind][backend encoding].
func (sk *PrivateKey) ToBytes() ([]byte, error) {
	switch sk.Kind {
	case BBSPlus:
		b, err := sk.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, b), nil
	case CL03:
		b, err := sk.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return envelope(CL03, b), nil
	default:
		return nil, ErrUnknownKind
	}
}

// PrivateKeyFromBytes decodes a PrivateKey produced by ToBytes.
func PrivateKeyFromBytes(data []byte) (*PrivateKey, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var sk bbsplus.PrivateKey
		if err := sk.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &PrivateKey{Kind: BBSPlus, BBSPlus: &sk}, nil
	case CL03:
		var sk cl03.PrivateKey
		if err := sk.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &PrivateKey{Kind: CL03, CL03: &sk}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToBytes encodes commitment as [Kind][bitset-encoded undisclosed index
// set][backend encoding].
func (commitment *Commitment) ToBytes() ([]byte, error) {
	switch commitment.Kind {
	case BBSPlus:
		b, err := commitment.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(commitment.BBSPlus.UndisclosedIndices, b)
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, payload), nil
	case CL03:
		b, err := commitment.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(commitment.CL03.UndisclosedIndices, b)
		if err != nil {
			return nil, err
		}
		return envelope(CL03, payload), nil
	default:
		return nil, ErrUnknownKind
	}
}

// CommitmentFromBytes decodes a Commitment produced by ToBytes. The
// bitset-encoded index set is decoded and discarded in favor of the
// backend's own UndisclosedIndices field, which ToBytes always derives
// it from, so the two never disagree.
func CommitmentFromBytes(data []byte) (*Commitment, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	_, rest, err = readIndexSet(rest)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var c bbsplus.Commitment
		if err := c.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Commitment{Kind: BBSPlus, BBSPlus: &c}, nil
	case CL03:
		var c cl03.Commitment
		if err := c.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Commitment{Kind: CL03, CL03: &c}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToBytes encodes proof as [Kind][bitset-encoded undisclosed index
// set][backend encoding].
func (proof *CommitmentProof) ToBytes() ([]byte, error) {
	switch proof.Kind {
	case BBSPlus:
		b, err := proof.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(sortedKeysOf(proof.BBSPlus.MHat), b)
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, payload), nil
	case CL03:
		b, err := proof.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(sortedKeysOf(proof.CL03.MHat), b)
		if err != nil {
			return nil, err
		}
		return envelope(CL03, payload), nil
	default:
		return nil, ErrUnknownKind
	}
}

// CommitmentProofFromBytes decodes a CommitmentProof produced by ToBytes.
func CommitmentProofFromBytes(data []byte) (*CommitmentProof, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	_, rest, err = readIndexSet(rest)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var p bbsplus.CommitmentProof
		if err := p.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &CommitmentProof{Kind: BBSPlus, BBSPlus: &p}, nil
	case CL03:
		var p cl03.CommitmentProof
		if err := p.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &CommitmentProof{Kind: CL03, CL03: &p}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ToBytes encodes proof as [Kind][bitset-encoded undisclosed index
// set][backend encoding].
func (proof *Proof) ToBytes() ([]byte, error) {
	switch proof.Kind {
	case BBSPlus:
		b, err := proof.BBSPlus.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(sortedKeysOf(proof.BBSPlus.MHat), b)
		if err != nil {
			return nil, err
		}
		return envelope(BBSPlus, payload), nil
	case CL03:
		b, err := proof.CL03.MarshalBinary()
		if err != nil {
			return nil, err
		}
		payload, err := withIndexSet(sortedKeysOf(proof.CL03.MHat), b)
		if err != nil {
			return nil, err
		}
		return envelope(CL03, payload), nil
	default:
		return nil, ErrUnknownKind
	}
}

// ProofFromBytes decodes a Proof produced by ToBytes.
func ProofFromBytes(data []byte) (*Proof, error) {
	kind, rest, err := splitEnvelope(data)
	if err != nil {
		return nil, err
	}
	_, rest, err = readIndexSet(rest)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BBSPlus:
		var p bbsplus.Proof
		if err := p.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Proof{Kind: BBSPlus, BBSPlus: &p}, nil
	case CL03:
		var p cl03.Proof
		if err := p.UnmarshalBinary(rest); err != nil {
			return nil, err
		}
		return &Proof{Kind: CL03, CL03: &p}, nil
	default:
		return nil, ErrUnknownKind
	}
}

func sortedKeysOf[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
