package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlignment(t *testing.T) {
	a, err := NewAlignment("GTCGACGCA", "GATTAC--A", -3, Global)
	require.NoError(t, err)

	assert.Equal(t, 9, a.Length())
	assert.Equal(t, 9, a.End1)
	assert.Equal(t, 7, a.End2)
	assert.InDelta(t, 4.0/9.0, a.Identity, 1e-9)

	_, err = NewAlignment("ACGT", "ACG", 0, Global)
	assert.Error(t, err)
}

func TestAlignmentCounts(t *testing.T) {
	a, err := NewAlignment("GTCGACGCA", "GATTAC--A", -3, Global)
	require.NoError(t, err)

	assert.Equal(t, 4, a.MatchCount())
	assert.Equal(t, 3, a.MismatchCount())
	assert.Equal(t, 0, a.GapsSeq1())
	assert.Equal(t, 2, a.GapsSeq2())
	assert.Equal(t, 2, a.TotalGaps())
	assert.Equal(t, 1, a.GapOpenings())
}

func TestToCIGAR(t *testing.T) {
	tests := []struct {
		name string
		h, v string
		want string
	}{
		{"identical", "ACGT", "ACGT", "4="},
		{"mismatch run", "GTCGACGCA", "GATTAC--A", "1=3X2=2D1="},
		{"insertion", "A-CACACTA", "AGCACAC-A", "1=1I5=1D1="},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.h, tt.v, 0, Global)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ToCIGAR())
		})
	}
}

func TestRescore(t *testing.T) {
	scheme := mustScheme(t, 1, -1, -2, -1)

	tests := []struct {
		name string
		v    string
		want int
	}{
		{"one gap run", "AA--", -2},
		{"two gap runs", "A-A-", -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment("AAAA", tt.v, 0, Global)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Rescore(scheme))
		})
	}
}

func TestFormat(t *testing.T) {
	a, err := NewAlignment("ACGT", "AC-A", 1, Global)
	require.NoError(t, err)

	out := a.Format()
	assert.Contains(t, out, "H: ACGT\n   || .\nV: AC-A")
	assert.Contains(t, out, "CIGAR: 2=1D1X")
	assert.Contains(t, a.String(), "global")
}

func TestPercentIdentity(t *testing.T) {
	got, err := PercentIdentity("ACGT", "ACGA")
	require.NoError(t, err)
	assert.InDelta(t, 75.0, got, 1e-9)

	_, err = PercentIdentity("", "")
	assert.Error(t, err)

	_, err = PercentIdentity("AC", "A")
	assert.Error(t, err)
}
