package cl03

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"
)

// putInt appends x as a 4-byte big-endian length prefix followed by its
// big-endian magnitude, per spec.md 6: "Integers in CL03 are unsigned
// big-endian with length prefix I2OSP(len,4)".
func putInt(buf []byte, x *big.Int) []byte {
	b := x.Bytes()
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, b...)
}

// readInt consumes a length-prefixed integer from buf, returning the
// value and the remaining bytes.
func readInt(buf []byte) (*big.Int, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("cl03: truncated integer length prefix")
	}
	n := binary.BigEndian.Uint32(buf[:4])
	buf = buf[4:]
	if uint64(len(buf)) < uint64(n) {
		return nil, nil, fmt.Errorf("cl03: truncated integer value")
	}
	v := new(big.Int).SetBytes(buf[:n])
	return v, buf[n:], nil
}

// putIndexedInts appends a 4-byte count followed by count (index, value)
// pairs, each index a 4-byte big-endian slot number and value a
// length-prefixed integer.
func putIndexedInts(buf []byte, indices []int, values map[int]*big.Int) []byte {
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(indices)))
	buf = append(buf, countBuf[:]...)
	for _, idx := range indices {
		var idxBuf [4]byte
		binary.BigEndian.PutUint32(idxBuf[:], uint32(idx))
		buf = append(buf, idxBuf[:]...)
		buf = putInt(buf, values[idx])
	}
	return buf
}

func readIndexedInts(buf []byte) ([]int, map[int]*big.Int, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, nil, fmt.Errorf("cl03: truncated index count")
	}
	count := binary.BigEndian.Uint32(buf[:4])
	buf = buf[4:]
	indices := make([]int, 0, count)
	values := make(map[int]*big.Int, count)
	for i := uint32(0); i < count; i++ {
		if len(buf) < 4 {
			return nil, nil, nil, fmt.Errorf("cl03: truncated index slot")
		}
		idx := int(binary.BigEndian.Uint32(buf[:4]))
		buf = buf[4:]
		var v *big.Int
		var err error
		v, buf, err = readInt(buf)
		if err != nil {
			return nil, nil, nil, err
		}
		indices = append(indices, idx)
		values[idx] = v
	}
	return indices, values, buf, nil
}

// MarshalBinary encodes sig as E || S || V, each length-prefixed.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = putInt(buf, sig.E)
	buf = putInt(buf, sig.S)
	buf = putInt(buf, sig.V)
	return buf, nil
}

// UnmarshalBinary decodes a Signature produced by MarshalBinary.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	e, rest, err := readInt(data)
	if err != nil {
		return err
	}
	s, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	v, _, err := readInt(rest)
	if err != nil {
		return err
	}
	sig.E, sig.S, sig.V = e, s, v
	return nil
}

// MarshalBinary encodes pk as N || A0 || B || C || count(A) || A[0..count).
// Ciphersuite is not carried; the caller must supply it out of band when
// unmarshaling, the same convention bbsplus.PublicKey uses for generators.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = putInt(buf, pk.N)
	buf = putInt(buf, pk.A0)
	buf = putInt(buf, pk.B)
	buf = putInt(buf, pk.C)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(pk.A)))
	buf = append(buf, countBuf[:]...)
	for _, a := range pk.A {
		buf = putInt(buf, a)
	}
	return buf, nil
}

// UnmarshalBinary decodes a PublicKey produced by MarshalBinary. The
// caller must set Ciphersuite afterward.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	n, rest, err := readInt(data)
	if err != nil {
		return err
	}
	a0, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	b, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	c, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	if len(rest) < 4 {
		return fmt.Errorf("cl03: truncated generator count")
	}
	count := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	a := make([]*big.Int, count)
	for i := range a {
		a[i], rest, err = readInt(rest)
		if err != nil {
			return err
		}
	}
	pk.N, pk.A0, pk.A, pk.B, pk.C = n, a0, a, b, c
	pk.MessageCount = int(count)
	return nil
}

// MarshalBinary encodes sk as P || Q.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = putInt(buf, sk.P)
	buf = putInt(buf, sk.Q)
	return buf, nil
}

// UnmarshalBinary decodes a PrivateKey produced by MarshalBinary.
func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	p, rest, err := readInt(data)
	if err != nil {
		return err
	}
	q, _, err := readInt(rest)
	if err != nil {
		return err
	}
	sk.P, sk.Q = p, q
	return nil
}

// MarshalBinary encodes ck as N || H || count(G) || G[0..count).
func (ck *CommitmentKey) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = putInt(buf, ck.N)
	buf = putInt(buf, ck.H)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(ck.G)))
	buf = append(buf, countBuf[:]...)
	for _, g := range ck.G {
		buf = putInt(buf, g)
	}
	return buf, nil
}

// UnmarshalBinary decodes a CommitmentKey produced by MarshalBinary.
func (ck *CommitmentKey) UnmarshalBinary(data []byte) error {
	n, rest, err := readInt(data)
	if err != nil {
		return err
	}
	h, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	if len(rest) < 4 {
		return fmt.Errorf("cl03: truncated generator count")
	}
	count := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	g := make([]*big.Int, count)
	for i := range g {
		g[i], rest, err = readInt(rest)
		if err != nil {
			return err
		}
	}
	ck.N, ck.H, ck.G = n, h, g
	ck.MessageCount = int(count)
	return nil
}

// MarshalBinary encodes commitment as C || count(indices) || indices.
func (commitment *Commitment) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = putInt(buf, commitment.C)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(commitment.UndisclosedIndices)))
	buf = append(buf, countBuf[:]...)
	for _, idx := range commitment.UndisclosedIndices {
		var idxBuf [4]byte
		binary.BigEndian.PutUint32(idxBuf[:], uint32(idx))
		buf = append(buf, idxBuf[:]...)
	}
	return buf, nil
}

// UnmarshalBinary decodes a Commitment produced by MarshalBinary.
func (commitment *Commitment) UnmarshalBinary(data []byte) error {
	c, rest, err := readInt(data)
	if err != nil {
		return err
	}
	if len(rest) < 4 {
		return fmt.Errorf("cl03: truncated index count")
	}
	count := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	indices := make([]int, count)
	for i := range indices {
		if len(rest) < 4 {
			return fmt.Errorf("cl03: truncated index slot")
		}
		indices[i] = int(binary.BigEndian.Uint32(rest[:4]))
		rest = rest[4:]
	}
	commitment.C, commitment.UndisclosedIndices = c, indices
	return nil
}

// MarshalBinary encodes proof as TBar || Challenge || SHat || {idx||mHat}.
func (proof *CommitmentProof) MarshalBinary() ([]byte, error) {
	indices := make([]int, 0, len(proof.MHat))
	for idx := range proof.MHat {
		indices = append(indices, idx)
	}
	var buf []byte
	buf = putInt(buf, proof.TBar)
	buf = putInt(buf, proof.Challenge)
	buf = putInt(buf, proof.SHat)
	sort.Ints(indices)
	buf = putIndexedInts(buf, indices, proof.MHat)
	return buf, nil
}

// UnmarshalBinary decodes a CommitmentProof produced by MarshalBinary.
func (proof *CommitmentProof) UnmarshalBinary(data []byte) error {
	tBar, rest, err := readInt(data)
	if err != nil {
		return err
	}
	challenge, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	sHat, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	_, mHat, _, err := readIndexedInts(rest)
	if err != nil {
		return err
	}
	proof.TBar, proof.Challenge, proof.SHat, proof.MHat = tBar, challenge, sHat, mHat
	return nil
}

// MarshalBinary encodes proof as ABar || Cm || Challenge || EHat || VHat ||
// R1Hat || {idx||mHat}.
func (proof *Proof) MarshalBinary() ([]byte, error) {
	indices := make([]int, 0, len(proof.MHat))
	for idx := range proof.MHat {
		indices = append(indices, idx)
	}
	var buf []byte
	buf = putInt(buf, proof.ABar)
	buf = putInt(buf, proof.Cm)
	buf = putInt(buf, proof.Challenge)
	buf = putInt(buf, proof.EHat)
	buf = putInt(buf, proof.VHat)
	buf = putInt(buf, proof.R1Hat)
	sort.Ints(indices)
	buf = putIndexedInts(buf, indices, proof.MHat)
	return buf, nil
}

// UnmarshalBinary decodes a Proof produced by MarshalBinary.
func (proof *Proof) UnmarshalBinary(data []byte) error {
	aBar, rest, err := readInt(data)
	if err != nil {
		return err
	}
	cm, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	challenge, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	eHat, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	vHat, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	r1Hat, rest, err := readInt(rest)
	if err != nil {
		return err
	}
	_, mHat, _, err := readIndexedInts(rest)
	if err != nil {
		return err
	}
	proof.ABar, proof.Cm, proof.Challenge = aBar, cm, challenge
	proof.EHat, proof.VHat, proof.R1Hat, proof.MHat = eHat, vHat, r1Hat, mHat
	return nil
}
