package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/kmer"
	"github.com/aria-lang/phyloflow/internal/sequence"
)

func seqs(t *testing.T, residues ...string) []*sequence.Sequence {
	t.Helper()
	out := make([]*sequence.Sequence, len(residues))
	for i, r := range residues {
		s, err := sequence.NewWithAlphabet(r, sequence.Nucleotide)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func TestAlignmentDistance(t *testing.T) {
	input := seqs(t, "ACGT", "ACGA", "ACGT")
	input[0].ID = "first"

	var calls []int
	b := NewBuilder(WithProgress(func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	}))

	m, err := b.Build(input, Alignment)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "seq2", "seq3"}, m.Labels())
	assert.InDelta(t, 0.25, m.At(0, 1), 1e-9)
	assert.InDelta(t, 0.0, m.At(0, 2), 1e-9)
	assert.InDelta(t, m.At(0, 1), m.At(1, 0), 1e-12)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestKMerDistance(t *testing.T) {
	input := seqs(t, "ACGTACGT", "ACGTT", "TTTTTTTT")

	b := NewBuilder(WithK(3), WithMetric(kmer.Jaccard))
	m, err := b.Build(input, KMer)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, m.At(0, 1), 1e-9)
	assert.InDelta(t, 1.0, m.At(0, 2), 1e-9)

	_, err = NewBuilder(WithK(6)).Build(input, KMer)
	assert.Error(t, err)
}

func TestBuildFeedsClustering(t *testing.T) {
	input := seqs(t, "ACGTACGTAC", "ACGTACGTAA", "TTGTACCTAC", "TTGTACCTAG")

	for _, method := range []Method{Alignment, KMer} {
		m, err := NewBuilder().Build(input, method)
		require.NoError(t, err)

		root := cluster.UPGMA(m)
		assert.Equal(t, 4, root.Len())
	}
}

func TestBuildDegenerate(t *testing.T) {
	_, err := NewBuilder().Build(seqs(t, "ACGT"), Alignment)
	assert.IsType(t, &cluster.DegenerateInputError{}, err)

	_, err = NewBuilder().Build(seqs(t, "ACGT", "ACGT"), Method(9))
	assert.Error(t, err)
}

func TestBuildRejectsForeignAlphabet(t *testing.T) {
	protein, err := sequence.New("MKVLW")
	require.NoError(t, err)

	input := append(seqs(t, "ACGT"), protein)
	_, err = NewBuilder().Build(input, Alignment)
	assert.Error(t, err)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("k-mer")
	require.NoError(t, err)
	assert.Equal(t, KMer, m)

	_, err = ParseMethod("ml")
	assert.Error(t, err)
}
