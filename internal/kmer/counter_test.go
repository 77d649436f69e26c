package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

func mustProfile(t *testing.T, residues string, k int) *Counter {
	t.Helper()
	seq, err := sequence.New(residues)
	require.NoError(t, err)
	c, err := Profile(seq, k)
	require.NoError(t, err)
	return c
}

func TestNewCounter(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		wantErr bool
	}{
		{"valid k=3", 3, false},
		{"valid k=21", 21, false},
		{"invalid k=0", 0, true},
		{"invalid k=-1", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := NewCounter(tt.k, sequence.Nucleotide)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.k, counter.K)
		})
	}
}

func TestProfile(t *testing.T) {
	c := mustProfile(t, "ATGATGATG", 3)

	// ATG, TGA, GAT, ATG, TGA, GAT, ATG
	assert.Equal(t, 3, c.Unique())
	assert.Equal(t, 7, c.Total)
	assert.Equal(t, 3, c.Get("atg"))
	assert.Equal(t, 2, c.Get("TGA"))
	assert.Equal(t, 0, c.Get("CCC"))
	assert.InDelta(t, 3.0/7.0, c.Frequency("ATG"), 1e-9)

	seq, err := sequence.New("ACG")
	require.NoError(t, err)
	_, err = Profile(seq, 4)
	assert.Error(t, err)
}

func TestMostFrequent(t *testing.T) {
	c := mustProfile(t, "ATATATATAT", 2)

	most := c.MostFrequent(1)
	require.Len(t, most, 1)
	assert.Equal(t, Count{KMer: "AT", Count: 5}, most[0])

	all := c.MostFrequent(-1)
	assert.Equal(t, []Count{{"AT", 5}, {"TA", 4}}, all)
}

func TestMerge(t *testing.T) {
	a := mustProfile(t, "AAAA", 2)
	b := mustProfile(t, "AACC", 2)
	require.NoError(t, a.Merge(b))

	assert.Equal(t, 4, a.Get("AA"))
	assert.Equal(t, 6, a.Total)

	assert.Error(t, a.Merge(mustProfile(t, "AAAA", 3)))
	assert.Error(t, a.Merge(mustProfile(t, "MKVL", 2)))
}

func TestDistance(t *testing.T) {
	a := mustProfile(t, "ACGTACGT", 3)
	same := mustProfile(t, "ACGTACGT", 3)
	other := mustProfile(t, "TTTTTTTT", 3)

	for _, m := range []Metric{Jaccard, Cosine, Euclidean} {
		t.Run(m.String(), func(t *testing.T) {
			d, err := Distance(a, same, m)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, d, 1e-12)

			ab, err := Distance(a, other, m)
			require.NoError(t, err)
			ba, err := Distance(other, a, m)
			require.NoError(t, err)
			assert.Greater(t, ab, 0.0)
			assert.InDelta(t, ab, ba, 1e-12)
		})
	}

	_, err := Distance(a, mustProfile(t, "ACGTACGT", 2), Jaccard)
	assert.Error(t, err)
}

func TestJaccard(t *testing.T) {
	// {ACG, CGT, GTA, TAC} against {ACG, CGT, GTT}
	a := mustProfile(t, "ACGTACGT", 3)
	b := mustProfile(t, "ACGTT", 3)

	d, err := Distance(a, b, Jaccard)
	require.NoError(t, err)
	assert.InDelta(t, 1-2.0/5.0, d, 1e-9)
	assert.Equal(t, []string{"ACG", "CGT"}, Shared(a, b))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("Cosine")
	require.NoError(t, err)
	assert.Equal(t, Cosine, m)

	m, err = ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, Jaccard, m)

	_, err = ParseMetric("manhattan")
	assert.Error(t, err)
}

func BenchmarkProfile(b *testing.B) {
	seq, _ := sequence.New("ATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGC")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Profile(seq, 5)
	}
}
