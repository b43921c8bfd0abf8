package bbsplus

import (
	"math/big"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

const scalarLen = 32

// scalarToBytes encodes a scalar as a 32-byte big-endian string, left-padded
// with zeros; it rejects values that don't fit (spec.md 4.1.5 treats every
// scalar as fixed-width so Proof/Signature have a bit-exact layout).
func scalarToBytes(x *big.Int) ([]byte, error) {
	b := x.Bytes()
	if len(b) > scalarLen {
		return nil, ErrInvalidScalar
	}
	out := make([]byte, scalarLen)
	copy(out[scalarLen-len(b):], b)
	return out, nil
}

func bytesToScalar(b []byte) (*big.Int, error) {
	if len(b) != scalarLen {
		return nil, ErrInvalidScalar
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(Order) >= 0 {
		return nil, ErrInvalidScalar
	}
	return v, nil
}

// MarshalBinary encodes a Signature as A(48) || e(32) || s(32), the legacy
// profile layout from spec.md 4.1.5.
func (s *Signature) MarshalBinary() ([]byte, error) {
	a := s.A.Bytes()
	eBytes, err := scalarToBytes(s.E)
	if err != nil {
		return nil, err
	}
	sBytes, err := scalarToBytes(s.S)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(a)+scalarLen*2)
	out = append(out, a[:]...)
	out = append(out, eBytes...)
	out = append(out, sBytes...)
	return out, nil
}

// UnmarshalBinary decodes a Signature produced by MarshalBinary, rejecting
// a point not in the prime-order subgroup or a scalar >= r.
func (s *Signature) UnmarshalBinary(data []byte) error {
	const g1Len = 48
	if len(data) != g1Len+2*scalarLen {
		return ErrInvalidSignature
	}
	var aBytes [g1Len]byte
	copy(aBytes[:], data[:g1Len])
	var a bls12381.G1Affine
	if _, err := a.SetBytes(aBytes[:]); err != nil {
		return ErrInvalidPoint
	}
	if !a.IsInSubGroup() {
		return ErrInvalidPoint
	}
	e, err := bytesToScalar(data[g1Len : g1Len+scalarLen])
	if err != nil {
		return err
	}
	sPrime, err := bytesToScalar(data[g1Len+scalarLen:])
	if err != nil {
		return err
	}
	s.A = a
	s.E = e
	s.S = sPrime
	return nil
}

// MarshalBinary encodes a PublicKey as its 96-byte compressed G2 point W,
// per spec.md 4.1.5. The generator set and message count are ciphersuite-
// and usage-derived, not part of the wire encoding.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	w := pk.W.Bytes()
	return w[:], nil
}

// UnmarshalBinary decodes a compressed G2 point into pk.W and sets no
// other field; callers must separately populate Ciphersuite,
// MessageCount, the base points G1/G2, and Q1/Q2/H (regenerated for the
// agreed message count via CreateGenerators) before using the key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	const g2Len = 96
	if len(data) != g2Len {
		return ErrInvalidPoint
	}
	var raw [g2Len]byte
	copy(raw[:], data)
	var w bls12381.G2Affine
	if _, err := w.SetBytes(raw[:]); err != nil {
		return ErrInvalidPoint
	}
	if !w.IsInSubGroup() {
		return ErrInvalidPoint
	}
	pk.W = w
	return nil
}

// MarshalBinary encodes a PrivateKey as a 32-byte big-endian scalar.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return scalarToBytes(sk.X)
}

// UnmarshalBinary decodes a 32-byte big-endian scalar into sk.X.
func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	x, err := bytesToScalar(data)
	if err != nil {
		return err
	}
	sk.X = x
	return nil
}

// MarshalBinary encodes a Proof as APrime(48) || ABar(48) || D(48) || c(32)
// || eHat(32) || sHat(32) || I2OSP(|undisclosed|,8) || {idx(8) || mHat(32)}
// sorted by index, per spec.md 4.1.5's fixed-width field convention
// generalized to carry the variable-size undisclosed index set.
func (p *Proof) MarshalBinary() ([]byte, error) {
	aPrime := p.APrime.Bytes()
	aBar := p.ABar.Bytes()
	d := p.D.Bytes()
	cBytes, err := scalarToBytes(p.C)
	if err != nil {
		return nil, err
	}
	eHatBytes, err := scalarToBytes(p.EHat)
	if err != nil {
		return nil, err
	}
	sHatBytes, err := scalarToBytes(p.SHat)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(p.MHat))
	for idx := range p.MHat {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]byte, 0, 3*48+3*scalarLen+8+len(indices)*(8+scalarLen))
	out = append(out, aPrime[:]...)
	out = append(out, aBar[:]...)
	out = append(out, d[:]...)
	out = append(out, cBytes...)
	out = append(out, eHatBytes...)
	out = append(out, sHatBytes...)
	out = append(out, I2OSP(len(indices), 8)...)
	for _, idx := range indices {
		out = append(out, I2OSP(idx, 8)...)
		mHatBytes, err := scalarToBytes(p.MHat[idx])
		if err != nil {
			return nil, err
		}
		out = append(out, mHatBytes...)
	}
	return out, nil
}

// UnmarshalBinary decodes a Proof produced by MarshalBinary.
func (p *Proof) UnmarshalBinary(data []byte) error {
	const g1Len = 48
	const headerLen = 3*g1Len + 3*scalarLen + 8
	if len(data) < headerLen {
		return ErrInvalidProof
	}

	off := 0
	readPoint := func() (bls12381.G1Affine, error) {
		var raw [g1Len]byte
		copy(raw[:], data[off:off+g1Len])
		off += g1Len
		var pt bls12381.G1Affine
		if _, err := pt.SetBytes(raw[:]); err != nil {
			return bls12381.G1Affine{}, ErrInvalidPoint
		}
		if !pt.IsInSubGroup() {
			return bls12381.G1Affine{}, ErrInvalidPoint
		}
		return pt, nil
	}

	aPrime, err := readPoint()
	if err != nil {
		return err
	}
	aBar, err := readPoint()
	if err != nil {
		return err
	}
	d, err := readPoint()
	if err != nil {
		return err
	}

	readScalar := func() (*big.Int, error) {
		v, err := bytesToScalar(data[off : off+scalarLen])
		off += scalarLen
		return v, err
	}
	c, err := readScalar()
	if err != nil {
		return err
	}
	eHat, err := readScalar()
	if err != nil {
		return err
	}
	sHat, err := readScalar()
	if err != nil {
		return err
	}

	count := int(new(big.Int).SetBytes(data[off : off+8]).Int64())
	off += 8
	if count < 0 || off+count*(8+scalarLen) != len(data) {
		return ErrInvalidProof
	}

	mHat := make(map[int]*big.Int, count)
	for i := 0; i < count; i++ {
		idx := int(new(big.Int).SetBytes(data[off : off+8]).Int64())
		off += 8
		v, err := bytesToScalar(data[off : off+scalarLen])
		if err != nil {
			return err
		}
		off += scalarLen
		mHat[idx] = v
	}

	p.APrime = aPrime
	p.ABar = aBar
	p.D = d
	p.C = c
	p.EHat = eHat
	p.SHat = sHat
	p.MHat = mHat
	return nil
}

// MarshalBinary encodes a Commitment as C(48) || I2OSP(|undisclosed|,8) ||
// {idx(8)} sorted ascending.
func (c *Commitment) MarshalBinary() ([]byte, error) {
	cBytes := c.C.Bytes()
	out := make([]byte, 0, 48+8+len(c.UndisclosedIndices)*8)
	out = append(out, cBytes[:]...)
	out = append(out, I2OSP(len(c.UndisclosedIndices), 8)...)
	for _, idx := range c.UndisclosedIndices {
		out = append(out, I2OSP(idx, 8)...)
	}
	return out, nil
}

// UnmarshalBinary decodes a Commitment produced by MarshalBinary.
func (c *Commitment) UnmarshalBinary(data []byte) error {
	const g1Len = 48
	if len(data) < g1Len+8 {
		return ErrInvalidPoint
	}
	var raw [g1Len]byte
	copy(raw[:], data[:g1Len])
	var pt bls12381.G1Affine
	if _, err := pt.SetBytes(raw[:]); err != nil {
		return ErrInvalidPoint
	}
	if !pt.IsInSubGroup() {
		return ErrInvalidPoint
	}
	count := int(new(big.Int).SetBytes(data[g1Len : g1Len+8]).Int64())
	if count < 0 || g1Len+8+count*8 != len(data) {
		return ErrInvalidProof
	}
	indices := make([]int, count)
	off := g1Len + 8
	for i := 0; i < count; i++ {
		indices[i] = int(new(big.Int).SetBytes(data[off : off+8]).Int64())
		off += 8
	}
	c.C = pt
	c.UndisclosedIndices = indices
	return nil
}

// MarshalBinary encodes a CommitmentProof as Tbar(48) || c(32) || sHat(32)
// || I2OSP(|undisclosed|,8) || {idx(8) || mHat(32)} sorted ascending.
func (cp *CommitmentProof) MarshalBinary() ([]byte, error) {
	tBar := cp.Tbar.Bytes()
	cBytes, err := scalarToBytes(cp.Challenge)
	if err != nil {
		return nil, err
	}
	sHatBytes, err := scalarToBytes(cp.SHat)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(cp.MHat))
	for idx := range cp.MHat {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]byte, 0, 48+2*scalarLen+8+len(indices)*(8+scalarLen))
	out = append(out, tBar[:]...)
	out = append(out, cBytes...)
	out = append(out, sHatBytes...)
	out = append(out, I2OSP(len(indices), 8)...)
	for _, idx := range indices {
		out = append(out, I2OSP(idx, 8)...)
		mHatBytes, err := scalarToBytes(cp.MHat[idx])
		if err != nil {
			return nil, err
		}
		out = append(out, mHatBytes...)
	}
	return out, nil
}

// UnmarshalBinary decodes a CommitmentProof produced by MarshalBinary.
func (cp *CommitmentProof) UnmarshalBinary(data []byte) error {
	const g1Len = 48
	const headerLen = g1Len + 2*scalarLen + 8
	if len(data) < headerLen {
		return ErrInvalidProof
	}
	var raw [g1Len]byte
	copy(raw[:], data[:g1Len])
	var tBar bls12381.G1Affine
	if _, err := tBar.SetBytes(raw[:]); err != nil {
		return ErrInvalidPoint
	}
	if !tBar.IsInSubGroup() {
		return ErrInvalidPoint
	}
	off := g1Len
	challenge, err := bytesToScalar(data[off : off+scalarLen])
	if err != nil {
		return err
	}
	off += scalarLen
	sHat, err := bytesToScalar(data[off : off+scalarLen])
	if err != nil {
		return err
	}
	off += scalarLen

	count := int(new(big.Int).SetBytes(data[off : off+8]).Int64())
	off += 8
	if count < 0 || off+count*(8+scalarLen) != len(data) {
		return ErrInvalidProof
	}
	mHat := make(map[int]*big.Int, count)
	for i := 0; i < count; i++ {
		idx := int(new(big.Int).SetBytes(data[off : off+8]).Int64())
		off += 8
		v, err := bytesToScalar(data[off : off+scalarLen])
		if err != nil {
			return err
		}
		off += scalarLen
		mHat[idx] = v
	}

	cp.Tbar = tBar
	cp.Challenge = challenge
	cp.SHat = sHat
	cp.MHat = mHat
	return nil
}
