package bbsplus

import (
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// objectPool recycles the slice buffers that ProofVerify allocates on
// every call for multi-scalar multiplication inputs. A signature verification service handles many proofs per second,
// each needing a handful of G1Affine/big.Int slices of similar size, so
// pooling them cuts allocator pressure under load.
type objectPool struct {
	g1Slices  sync.Pool
	bigSlices sync.Pool
}

func newObjectPool() *objectPool {
	return &objectPool{
		g1Slices: sync.Pool{
			New: func() interface{} {
				return make([]bls12381.G1Affine, 0, 8)
			},
		},
		bigSlices: sync.Pool{
			New: func() interface{} {
				return make([]*big.Int, 0, 8)
			},
		},
	}
}

var defaultPool = newObjectPool()

func (p *objectPool) getG1Slice(capacity int) []bls12381.G1Affine {
	s := p.g1Slices.Get().([]bls12381.G1Affine)
	if cap(s) < capacity {
		return make([]bls12381.G1Affine, 0, capacity)
	}
	return s[:0]
}

func (p *objectPool) putG1Slice(s []bls12381.G1Affine) {
	if s != nil {
		p.g1Slices.Put(s) //nolint:staticcheck // intentionally retaining backing array
	}
}

func (p *objectPool) getBigIntSlice(capacity int) []*big.Int {
	s := p.bigSlices.Get().([]*big.Int)
	if cap(s) < capacity {
		return make([]*big.Int, 0, capacity)
	}
	return s[:0]
}

func (p *objectPool) putBigIntSlice(s []*big.Int) {
	if s != nil {
		p.bigSlices.Put(s) //nolint:staticcheck // intentionally retaining backing array
	}
}
