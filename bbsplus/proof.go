package bbsplus

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// ProofGen produces a non-interactive signature proof of knowledge (SPoK)
// that reveals only the messages at disclosedIndices, per spec.md 4.1.3.
// The resulting Proof convinces a verifier that the holder possesses a
// valid signature over the full message vector without revealing the
// undisclosed messages, the signature's randomness s, or its (A, e) pair.
func ProofGen(pk *PublicKey, sig *Signature, messages []*big.Int, disclosedIndices []int, header, presentationHeader []byte, rng io.Reader) (*Proof, map[int]*big.Int, error) {
	if len(messages) != pk.MessageCount {
		return nil, nil, ErrInvalidMessageCount
	}
	if rng == nil {
		rng = rand.Reader
	}

	disclosed := make(map[int]bool, len(disclosedIndices))
	disclosedMessages := make(map[int]*big.Int, len(disclosedIndices))
	for _, idx := range disclosedIndices {
		if idx < 0 || idx >= len(messages) || disclosed[idx] {
			return nil, nil, ErrIndexOutOfRange
		}
		disclosed[idx] = true
		disclosedMessages[idx] = messages[idx]
	}

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return nil, nil, err
	}

	r, err := RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}

	aPrimeJac := g1ScalarMul(&pk.G1, r)
	var sigAJac bls12381.G1Jac
	sigAJac.FromAffine(&sig.A)
	aPrimeJac.AddAssign(&sigAJac)
	aPrime := g1JacToAffine(&aPrimeJac)

	var aBarJac bls12381.G1Jac
	aBarJac.FromAffine(&aPrime)
	for i, m := range messages {
		if disclosed[i] {
			continue
		}
		mr := new(big.Int).Mul(m, r)
		mr.Mod(mr, Order)
		hiJac := g1ScalarMul(&pk.H[i], mr)
		aBarJac.AddAssign(&hiJac)
	}
	aBar := g1JacToAffine(&aBarJac)

	eBlind, err := RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	sBlind, err := RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	mBlind := make(map[int]*big.Int)
	for i := range messages {
		if !disclosed[i] {
			b, err := RandomScalar(rng)
			if err != nil {
				return nil, nil, err
			}
			mBlind[i] = b
		}
	}

	dPoints := make([]bls12381.G1Affine, 0, len(messages)+1)
	dScalars := make([]*big.Int, 0, len(messages)+1)
	dPoints = append(dPoints, pk.Q1)
	dScalars = append(dScalars, sBlind)
	for i := range messages {
		if !disclosed[i] {
			dPoints = append(dPoints, pk.H[i])
			dScalars = append(dScalars, mBlind[i])
		}
	}
	dJac, err := MultiScalarMulG1(dPoints, dScalars)
	if err != nil {
		return nil, nil, err
	}
	d := g1JacToAffine(&dJac)

	c, err := proofChallenge(pk.Ciphersuite, aPrime, aBar, d, disclosedIndices, disclosedMessages, presentationHeader, domain)
	if err != nil {
		return nil, nil, err
	}

	eHat := new(big.Int).Mul(sig.E, c)
	eHat.Add(eHat, eBlind)
	eHat.Mod(eHat, Order)

	sHat := new(big.Int).Mul(sig.S, c)
	sHat.Add(sHat, sBlind)
	sHat.Mod(sHat, Order)

	mHat := make(map[int]*big.Int)
	for i, m := range messages {
		if !disclosed[i] {
			h := new(big.Int).Mul(m, c)
			h.Add(h, mBlind[i])
			h.Mod(h, Order)
			mHat[i] = h
		}
	}

	return &Proof{
		APrime: aPrime,
		ABar:   aBar,
		D:      d,
		C:      c,
		EHat:   eHat,
		SHat:   sHat,
		MHat:   mHat,
	}, disclosedMessages, nil
}

// ProofVerify checks a Proof against the issuer's public key and the
// disclosed messages, per spec.md 4.1.3's verification equation
// e(A', W) * e(g1b, -g2) * e(T, g2) = 1.
func ProofVerify(pk *PublicKey, proof *Proof, disclosedMessages map[int]*big.Int, header, presentationHeader []byte) error {
	for idx := range disclosedMessages {
		if idx < 0 || idx >= pk.MessageCount {
			return ErrIndexOutOfRange
		}
	}

	disclosedIndices := make([]int, 0, len(disclosedMessages))
	for idx := range disclosedMessages {
		disclosedIndices = append(disclosedIndices, idx)
	}
	sort.Ints(disclosedIndices)

	domain, err := calculateDomain(pk, header)
	if err != nil {
		return err
	}

	c, err := proofChallenge(pk.Ciphersuite, proof.APrime, proof.ABar, proof.D, disclosedIndices, disclosedMessages, presentationHeader, domain)
	if err != nil {
		return err
	}
	if c.Cmp(proof.C) != 0 {
		return ErrInvalidProof
	}

	capacity := len(disclosedMessages) + len(proof.MHat) + 4
	points := defaultPool.getG1Slice(capacity)
	scalars := defaultPool.getBigIntSlice(capacity)
	defer defaultPool.putG1Slice(points)
	defer defaultPool.putBigIntSlice(scalars)

	points = append(points, pk.G1)
	scalars = append(scalars, big.NewInt(1))

	points = append(points, pk.Q1)
	scalars = append(scalars, proof.SHat)

	points = append(points, pk.Q2)
	scalars = append(scalars, domain)

	for idx, m := range disclosedMessages {
		points = append(points, pk.H[idx])
		scalars = append(scalars, m)
	}
	for idx, mHat := range proof.MHat {
		points = append(points, pk.H[idx])
		scalars = append(scalars, mHat)
	}

	negC := new(big.Int).Neg(proof.C)
	negC.Mod(negC, Order)
	points = append(points, proof.D)
	scalars = append(scalars, negC)

	g1bJac, err := MultiScalarMulG1(points, scalars)
	if err != nil {
		return err
	}
	g1b := g1JacToAffine(&g1bJac)

	tJac, err := MultiScalarMulG1([]bls12381.G1Affine{proof.ABar, proof.D}, []*big.Int{proof.C, big.NewInt(1)})
	if err != nil {
		return err
	}
	t := g1JacToAffine(&tJac)

	var negG2Jac bls12381.G2Jac
	negG2Jac.FromAffine(&pk.G2)
	negG2Jac.Neg(&negG2Jac)
	negG2 := g2JacToAffine(&negG2Jac)

	result, err := bls12381.Pair(
		[]bls12381.G1Affine{proof.APrime, g1b, t},
		[]bls12381.G2Affine{pk.W, negG2, pk.G2},
	)
	if err != nil {
		return ErrPairingFailed
	}
	if !result.IsOne() {
		return ErrInvalidProof
	}
	return nil
}

// batchConcurrency bounds how many proof verifications run at once inside
// BatchVerifyProofs.
const batchConcurrency = 4

// BatchVerifyProofs verifies several proofs under (possibly distinct)
// public keys and headers, combining their pairing checks into one
// randomized batch equation so the total cost is one multi-pairing instead
// of len(proofs) separate ones. Per-proof challenges are recomputed
// concurrently first, bounded by batchConcurrency, so a single malformed
// proof fails fast before the batch pairing runs.
func BatchVerifyProofs(pks []*PublicKey, proofs []*Proof, disclosedMessagesList []map[int]*big.Int, headers, presentationHeaders [][]byte) error {
	if len(pks) != len(proofs) || len(proofs) != len(disclosedMessagesList) {
		return fmt.Errorf("bbsplus: mismatched batch array lengths")
	}
	if len(proofs) == 0 {
		return nil
	}
	if len(proofs) == 1 {
		var header, presHeader []byte
		if len(headers) == 1 {
			header = headers[0]
		}
		if len(presentationHeaders) == 1 {
			presHeader = presentationHeaders[0]
		}
		return ProofVerify(pks[0], proofs[0], disclosedMessagesList[0], header, presHeader)
	}

	domains := make([]*big.Int, len(proofs))
	errCh := make(chan error, len(proofs))
	sem := make(chan struct{}, batchConcurrency)
	var wg sync.WaitGroup

	for i := range proofs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var header, presHeader []byte
			if idx < len(headers) {
				header = headers[idx]
			}
			if idx < len(presentationHeaders) {
				presHeader = presentationHeaders[idx]
			}

			domain, err := calculateDomain(pks[idx], header)
			if err != nil {
				errCh <- err
				return
			}
			domains[idx] = domain

			disclosedIndices := make([]int, 0, len(disclosedMessagesList[idx]))
			for k := range disclosedMessagesList[idx] {
				disclosedIndices = append(disclosedIndices, k)
			}
			c, err := proofChallenge(pks[idx].Ciphersuite, proofs[idx].APrime, proofs[idx].ABar, proofs[idx].D, disclosedIndices, disclosedMessagesList[idx], presHeader, domain)
			if err != nil {
				errCh <- err
				return
			}
			if c.Cmp(proofs[idx].C) != 0 {
				errCh <- ErrInvalidProof
			}
		}(i)
	}
	wg.Wait()
	select {
	case err := <-errCh:
		return err
	default:
	}

	batchScalars := make([]*big.Int, len(proofs))
	for i := range batchScalars {
		s, err := ConstantTimeRandom(rand.Reader, Order)
		if err != nil {
			return err
		}
		batchScalars[i] = s
	}

	g1Points := make([]bls12381.G1Affine, 0, len(proofs)*2)
	g2Points := make([]bls12381.G2Affine, 0, len(proofs)*2)

	for i, proof := range proofs {
		pk := pks[i]
		batchScalar := batchScalars[i]

		points := make([]bls12381.G1Affine, 0, len(disclosedMessagesList[i])+len(proof.MHat)+3)
		scalars := make([]*big.Int, 0, len(disclosedMessagesList[i])+len(proof.MHat)+3)

		points = append(points, pk.G1)
		scalars = append(scalars, batchScalar)

		points = append(points, pk.Q1)
		sHatBatch := new(big.Int).Mul(proof.SHat, batchScalar)
		sHatBatch.Mod(sHatBatch, Order)
		scalars = append(scalars, sHatBatch)

		points = append(points, pk.Q2)
		domainBatch := new(big.Int).Mul(domains[i], batchScalar)
		domainBatch.Mod(domainBatch, Order)
		scalars = append(scalars, domainBatch)

		for idx, m := range disclosedMessagesList[i] {
			mC := new(big.Int).Mul(m, proof.C)
			negMC := new(big.Int).Neg(mC)
			negMC.Mod(negMC, Order)
			negMCBatch := new(big.Int).Mul(negMC, batchScalar)
			negMCBatch.Mod(negMCBatch, Order)
			points = append(points, pk.H[idx])
			scalars = append(scalars, negMCBatch)
		}

		g1bJac, err := MultiScalarMulG1(points, scalars)
		if err != nil {
			return err
		}
		g1b := g1JacToAffine(&g1bJac)

		var negG2Jac bls12381.G2Jac
		negG2Jac.FromAffine(&pk.G2)
		negG2Jac.Neg(&negG2Jac)
		negG2 := g2JacToAffine(&negG2Jac)

		g1Points = append(g1Points, g1b)
		g2Points = append(g2Points, negG2)

		cBatch := new(big.Int).Mul(proof.C, batchScalar)
		cBatch.Mod(cBatch, Order)
		tJac, err := MultiScalarMulG1([]bls12381.G1Affine{proof.ABar, proof.D}, []*big.Int{cBatch, batchScalar})
		if err != nil {
			return err
		}
		t := g1JacToAffine(&tJac)

		g1Points = append(g1Points, t)
		g2Points = append(g2Points, pk.G2)

		aPrimeJac := g1ScalarMul(&proof.APrime, batchScalar)
		g1Points = append(g1Points, g1JacToAffine(&aPrimeJac))
		g2Points = append(g2Points, pk.W)
	}

	result, err := bls12381.Pair(g1Points, g2Points)
	if err != nil {
		return ErrPairingFailed
	}
	if !result.IsOne() {
		return ErrInvalidProof
	}
	return nil
}

// proofChallenge computes the Fiat-Shamir challenge binding (A', A-bar, D),
// the disclosed messages, the domain, and an optional presentation header
// (spec.md 4.1.3), using the ciphersuite's hash_to_scalar instead of a
// hardcoded digest so XMD and XOF ciphersuites derive distinct challenges.
func proofChallenge(cs *Ciphersuite, aPrime, aBar, d bls12381.G1Affine, disclosedIndices []int, disclosedMessages map[int]*big.Int, presentationHeader []byte, domain *big.Int) (*big.Int, error) {
	sorted := append([]int(nil), disclosedIndices...)
	sort.Ints(sorted)

	var buf []byte
	buf = append(buf, aPrime.Marshal()...)
	buf = append(buf, aBar.Marshal()...)
	buf = append(buf, d.Marshal()...)
	buf = append(buf, domain.Bytes()...)
	for _, idx := range sorted {
		buf = append(buf, I2OSP(idx, 8)...)
		msgBytes := disclosedMessages[idx].Bytes()
		buf = append(buf, I2OSP(len(msgBytes), 8)...)
		buf = append(buf, msgBytes...)
	}
	buf = append(buf, I2OSP(len(presentationHeader), 8)...)
	buf = append(buf, presentationHeader...)

	return hashToScalar(cs, buf, cs.ChallengeDST)
}
