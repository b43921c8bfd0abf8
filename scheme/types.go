package scheme

import (
	"errors"
	"math/big"

	"github.com/anupsv/anoncred/bbsplus"
	"github.com/anupsv/anoncred/cl03"
	"github.com/bits-and-blooms/bitset"
)

// Kind selects which algebraic backend a tagged-union value belongs to.
type Kind int

const (
	BBSPlus Kind = iota
	CL03
)

func (k Kind) String() string {
	if k == BBSPlus {
		return "bbsplus"
	}
	return "cl03"
}

var (
	// ErrCiphersuiteMismatch is returned when a Scheme is constructed from
	// inputs whose Kind tags disagree, or when an operation is handed a
	// value tagged for the other backend.
	ErrCiphersuiteMismatch = errors.New("scheme: ciphersuite/backend mismatch")

	// ErrUnknownKind is returned when a tagged union's Kind, or the kind
	// byte of an encoded value, is neither BBSPlus nor CL03, which never
	// happens for values this package produces but can happen for
	// hand-built or corrupted ones.
	ErrUnknownKind = errors.New("scheme: unknown backend kind")
)

// Ciphersuite is a tagged union selecting a bbsplus.Ciphersuite or a
// cl03.Ciphersuite. Scheme.New uses it to decide which backend every
// operation on the resulting Scheme dispatches to.
type Ciphersuite struct {
	Kind    Kind
	BBSPlus *bbsplus.Ciphersuite
	CL03    *cl03.Ciphersuite
}

// KeyPair is a tagged union over the two backends' (sk, pk) pairs.
type KeyPair struct {
	Kind    Kind
	BBSPlus *bbsplus.KeyPair
	CL03    *cl03.KeyPair
}

// PublicKey is a tagged union over the two backends' public keys.
type PublicKey struct {
	Kind    Kind
	BBSPlus *bbsplus.PublicKey
	CL03    *cl03.PublicKey
}

// PrivateKey is a tagged union over the two backends' private keys.
type PrivateKey struct {
	Kind    Kind
	BBSPlus *bbsplus.PrivateKey
	CL03    *cl03.PrivateKey
}

// Signature is a tagged union over the two backends' signatures.
type Signature struct {
	Kind    Kind
	BBSPlus *bbsplus.Signature
	CL03    *cl03.Signature
}

// Commitment is a tagged union over the two backends' commitments.
type Commitment struct {
	Kind    Kind
	BBSPlus *bbsplus.Commitment
	CL03    *cl03.Commitment
}

// CommitmentSecrets is a tagged union over the two backends' commitment
// openings. It must never leave the holder's process.
type CommitmentSecrets struct {
	Kind    Kind
	BBSPlus *bbsplus.CommitmentSecrets
	CL03    *cl03.CommitmentSecrets
}

// CommitmentProof is a tagged union over the two backends' zero-knowledge
// proofs of a commitment's opening (the ZKPoK in spec terms).
type CommitmentProof struct {
	Kind    Kind
	BBSPlus *bbsplus.CommitmentProof
	CL03    *cl03.CommitmentProof
}

// Proof is a tagged union over the two backends' non-interactive
// selective-disclosure signature proofs of knowledge.
type Proof struct {
	Kind    Kind
	BBSPlus *bbsplus.Proof
	CL03    *cl03.Proof
}

// Messages is the scheme-generic message vector: attribute values keyed
// by slot index, independent of which backend ultimately consumes them.
type Messages map[int]*big.Int

// toSlice converts a complete Messages map (every slot 0..count-1
// present) into the ordered slice both backends' Sign/Verify expect.
func toSlice(m Messages, count int) ([]*big.Int, error) {
	out := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		v, ok := m[i]
		if !ok {
			return nil, ErrCiphersuiteMismatch
		}
		out[i] = v
	}
	return out, nil
}

// disclosedIndices reads the set bits of a bitset.BitSet as a sorted
// []int, the representation both backends' Commit/ProofGen take.
func disclosedIndices(b *bitset.BitSet) []int {
	if b == nil {
		return nil
	}
	out := make([]int, 0, b.Count())
	for i, e := b.NextSet(0); e; i, e = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// indexSet builds a bitset.BitSet from a []int, the representation the
// façade's Proof/Commitment envelope stores disclosed/undisclosed index
// sets in (spec.md DOMAIN STACK: bits-and-blooms/bitset).
func indexSet(indices []int) *bitset.BitSet {
	b := bitset.New(0)
	for _, idx := range indices {
		b.Set(uint(idx))
	}
	return b
}
