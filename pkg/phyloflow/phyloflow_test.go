package phyloflow

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `>s1 first sample
ACGTACGT
ACGT
>s2
acgtacgtacga
>p1 a protein
MKVLAAGIVG
`

func TestParseFASTA(t *testing.T) {
	seqs, err := ParseFASTA(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, seqs, 3)

	assert.Equal(t, "s1", seqs[0].ID)
	assert.Equal(t, "first sample", seqs[0].Description)
	assert.Equal(t, "ACGTACGTACGT", seqs[0].Residues)
	assert.Equal(t, Nucleotide, seqs[0].Alphabet)

	assert.Equal(t, "s2", seqs[1].ID)
	assert.Equal(t, "ACGTACGTACGA", seqs[1].Residues)

	assert.Equal(t, AminoAcid, seqs[2].Alphabet)
}

func TestParseFASTAInvalid(t *testing.T) {
	_, err := ParseFASTA(strings.NewReader(">bad\nAC1T\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestFASTARoundTrip(t *testing.T) {
	seqs, err := ParseFASTA(strings.NewReader(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.fa")
	require.NoError(t, WriteFASTA(path, seqs))

	back, err := ReadFASTA(path)
	require.NoError(t, err)
	require.Len(t, back, len(seqs))
	for i := range seqs {
		assert.True(t, seqs[i].Equal(back[i]))
		assert.Equal(t, seqs[i].ID, back[i].ID)
	}
}

func TestFormatFASTANamesAnonymous(t *testing.T) {
	seq, err := NewSequence("ACGT")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatFASTA(&buf, []*Sequence{seq}))
	assert.True(t, strings.HasPrefix(buf.String(), ">seq1\n"))
}

func TestReadFASTAMissing(t *testing.T) {
	_, err := ReadFASTA(filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}

func TestAlign(t *testing.T) {
	h, err := NewSequence("ACACACTA")
	require.NoError(t, err)
	v, err := NewSequence("AGCACACA")
	require.NoError(t, err)

	local, err := AlignLocal(h, v, DefaultScheme())
	require.NoError(t, err)
	require.Len(t, local, 2)
	assert.Equal(t, "CACAC", local[0].AlignedSeq1)

	global, err := AlignGlobal(h, v, DefaultScheme())
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "A-CACACTA", global[0].AlignedSeq1)

	score, err := Score(h, v, DefaultScheme(), Global)
	require.NoError(t, err)
	assert.Equal(t, 8, score)
}

func TestTrees(t *testing.T) {
	m, err := NewMatrix([]string{"x", "y"}, [][]float64{{0, 2}, {2, 0}})
	require.NoError(t, err)

	for _, method := range []ClusterMethod{UPGMA, NJ} {
		root, err := BuildTree(m, method)
		require.NoError(t, err)
		assert.Equal(t, "(x:1.0,y:1.0):0.0", ToNewick(root))
	}

	a, err := ParseNewick("((a:1,b:2):1,c:3):0")
	require.NoError(t, err)
	b, err := ParseNewick("(b:2,a:1):5")
	require.NoError(t, err)
	assert.True(t, IsClade(a, b))
	assert.False(t, TreesEqual(a, b, false))
}

func TestTreeFromSequences(t *testing.T) {
	seqs, err := ParseFASTA(strings.NewReader(">a\nACGTACGTACGT\n>b\nACGTACGTACGA\n>c\nTTGCATTCAGGA\n"))
	require.NoError(t, err)

	for _, measure := range []Distance{AlignmentDistance, KMerDistance} {
		root, err := TreeFromSequences(seqs, nil, measure, UPGMA)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, root.Labels())
	}
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), Version)
}
