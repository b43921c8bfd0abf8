package bbsplus

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// MultiScalarMulG1 computes sum(points[i] * scalars[i]) in G1. Proof
// verification needs this repeatedly for linear combinations of
// generators, so it is factored out and exercised through fr.Element
// (gnark-crypto's field-element type) rather than raw big.Int
// ScalarMultiplication at each call site.
func MultiScalarMulG1(points []bls12381.G1Affine, scalars []*big.Int) (bls12381.G1Jac, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Jac{}, ErrMismatchedLengths
	}
	if len(points) == 0 {
		return bls12381.G1Jac{}, nil
	}

	frScalars := make([]fr.Element, len(scalars))
	for i, s := range scalars {
		if s == nil {
			return bls12381.G1Jac{}, fmt.Errorf("bbsplus: nil scalar at index %d", i)
		}
		reduced := new(big.Int).Mod(s, Order)
		frScalars[i].SetBigInt(reduced)
	}

	var result bls12381.G1Jac
	for i := range points {
		if frScalars[i].IsZero() || points[i].IsInfinity() {
			continue
		}
		var scalarBig big.Int
		frScalars[i].ToBigIntRegular(&scalarBig)

		var tmp bls12381.G1Jac
		tmp.FromAffine(&points[i])
		tmp.ScalarMultiplication(&tmp, &scalarBig)
		result.AddAssign(&tmp)
	}
	return result, nil
}
