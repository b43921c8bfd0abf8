package bbsplus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateGeneratorsDeterministic(t *testing.T) {
	for _, cs := range []*Ciphersuite{&BLS12381SHA256, &BLS12381SHAKE256} {
		g1, err := CreateGenerators(cs, 6)
		require.NoError(t, err)
		g2, err := CreateGenerators(cs, 6)
		require.NoError(t, err)

		require.Len(t, g1, 6)
		for i := range g1 {
			require.True(t, g1[i].Equal(&g2[i]), "generator %d should be reproducible", i)
		}
	}
}

func TestCreateGeneratorsDistinctAcrossCiphersuites(t *testing.T) {
	a, err := CreateGenerators(&BLS12381SHA256, 3)
	require.NoError(t, err)
	b, err := CreateGenerators(&BLS12381SHAKE256, 3)
	require.NoError(t, err)

	for i := range a {
		require.False(t, a[i].Equal(&b[i]), "generators should differ across ciphersuites")
	}
}

func TestCreateGeneratorsDistinctWithinCiphersuite(t *testing.T) {
	gens, err := CreateGenerators(&BLS12381SHA256, 4)
	require.NoError(t, err)

	for i := 0; i < len(gens); i++ {
		for j := i + 1; j < len(gens); j++ {
			require.False(t, gens[i].Equal(&gens[j]), "generators %d and %d should differ", i, j)
		}
	}
}

func TestHashToScalarNonZeroAndInRange(t *testing.T) {
	for _, cs := range []*Ciphersuite{&BLS12381SHA256, &BLS12381SHAKE256} {
		s, err := hashToScalar(cs, []byte("some message"), cs.ChallengeDST)
		require.NoError(t, err)
		require.NotEqual(t, 0, s.Sign())
		require.True(t, s.Cmp(Order) < 0)
	}
}

func TestHashToScalarDeterministic(t *testing.T) {
	cs := &BLS12381SHA256
	a, err := hashToScalar(cs, []byte("msg"), cs.MessageDST)
	require.NoError(t, err)
	b, err := hashToScalar(cs, []byte("msg"), cs.MessageDST)
	require.NoError(t, err)
	require.Equal(t, 0, a.Cmp(b))
}
