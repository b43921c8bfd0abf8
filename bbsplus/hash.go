package bbsplus

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

const shaBlockSize = 64

// expandMessageXMD implements RFC 9380's expand_message_xmd over SHA-256:
// a Merkle-Damgard-friendly variable-output-length PRF built by chaining
// digests of a running b_i value, used to turn an arbitrary message into
// lenInBytes pseudorandom octets with domain separation from dst.
func expandMessageXMD(msg, dst []byte, lenInBytes int) ([]byte, error) {
	if len(dst) > 255 {
		return nil, fmt.Errorf("bbsplus: dst too long: %d", len(dst))
	}
	hashSize := sha256.Size
	ell := (lenInBytes + hashSize - 1) / hashSize
	if ell > 255 {
		return nil, fmt.Errorf("bbsplus: requested output too long: %d", lenInBytes)
	}
	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))

	zPad := make([]byte, shaBlockSize)
	libStr := make([]byte, 2)
	binary.BigEndian.PutUint16(libStr, uint16(lenInBytes))

	h0 := sha256.New()
	h0.Write(zPad)
	h0.Write(msg)
	h0.Write(libStr)
	h0.Write([]byte{0})
	h0.Write(dstPrime)
	b0 := h0.Sum(nil)

	h1 := sha256.New()
	h1.Write(b0)
	h1.Write([]byte{1})
	h1.Write(dstPrime)
	bPrev := h1.Sum(nil)

	out := make([]byte, 0, ell*hashSize)
	out = append(out, bPrev...)

	for i := 2; i <= ell; i++ {
		xored := make([]byte, hashSize)
		for j := range xored {
			xored[j] = b0[j] ^ bPrev[j]
		}
		hi := sha256.New()
		hi.Write(xored)
		hi.Write([]byte{byte(i)})
		hi.Write(dstPrime)
		bPrev = hi.Sum(nil)
		out = append(out, bPrev...)
	}
	return out[:lenInBytes], nil
}

// expandMessageXOF implements RFC 9380's expand_message_xof over SHAKE-256:
// directly squeezing lenInBytes of output from an XOF seeded with msg, the
// requested length, and the DST, with no block-chaining needed.
func expandMessageXOF(msg, dst []byte, lenInBytes int) ([]byte, error) {
	if len(dst) > 255 {
		return nil, fmt.Errorf("bbsplus: dst too long: %d", len(dst))
	}
	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))
	libStr := make([]byte, 2)
	binary.BigEndian.PutUint16(libStr, uint16(lenInBytes))

	xof := sha3.NewShake256()
	xof.Write(msg)
	xof.Write(libStr)
	xof.Write(dstPrime)
	out := make([]byte, lenInBytes)
	if _, err := xof.Read(out); err != nil {
		return nil, fmt.Errorf("bbsplus: shake256 read: %w", err)
	}
	return out, nil
}

func expandMessage(cs *Ciphersuite, msg, dst []byte, lenInBytes int) ([]byte, error) {
	if cs.Expand == ExpandModeXOF {
		return expandMessageXOF(msg, dst, lenInBytes)
	}
	return expandMessageXMD(msg, dst, lenInBytes)
}

// hashToScalar reduces a 48-byte (384-bit) expand_message output modulo
// Order, retrying with an incrementing counter on the negligible chance the
// reduction lands on zero, per spec.md 4.1.1.
func hashToScalar(cs *Ciphersuite, msg, dst []byte) (*big.Int, error) {
	for counter := 0; counter < 256; counter++ {
		input := msg
		if counter > 0 {
			input = append(append([]byte{}, msg...), I2OSP(counter, 8)...)
		}
		out, err := expandMessage(cs, input, dst, 48)
		if err != nil {
			return nil, err
		}
		s := new(big.Int).SetBytes(out)
		s.Mod(s, Order)
		if s.Sign() != 0 {
			return s, nil
		}
	}
	return nil, ErrInvalidScalar
}

// hashToScalars derives `count` independent, non-zero scalars from msg by
// appending an 8-byte big-endian counter to the input before each
// expand_message call, per spec.md 4.1.1's batched-output note.
func hashToScalars(cs *Ciphersuite, msg, dst []byte, count int) ([]*big.Int, error) {
	out := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		s, err := hashToScalar(cs, append(append([]byte{}, msg...), I2OSP(i, 8)...), dst)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// MapMessageToScalar hashes an arbitrary message octet string into F_r
// using the ciphersuite's message-to-scalar domain separation tag.
func MapMessageToScalar(cs *Ciphersuite, message []byte) (*big.Int, error) {
	return hashToScalar(cs, message, cs.MessageDST)
}
