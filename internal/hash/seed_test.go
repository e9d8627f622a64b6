package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDDeterministic(t *testing.T) {
	require.Equal(t, ID("ind-001"), ID("ind-001"))
	require.NotEqual(t, ID("ind-001"), ID("ind-002"))
}

func TestSeedWordsDecorrelated(t *testing.T) {
	s1, s2 := Seed("ind-001")
	require.Equal(t, ID("ind-001"), s1)
	require.NotEqual(t, s1, s2)

	r1, r2 := Seed("ind-001")
	require.Equal(t, s1, r1)
	require.Equal(t, s2, r2)
}
