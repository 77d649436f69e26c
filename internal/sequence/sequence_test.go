package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		residues string
		wantErr  bool
		errType  interface{}
		alphabet Alphabet
	}{
		{
			name:     "nucleotide",
			residues: "ACTG",
			alphabet: Nucleotide,
		},
		{
			name:     "lowercase with whitespace",
			residues: "  acgtacgt\n",
			alphabet: Nucleotide,
		},
		{
			name:     "amino acid detected",
			residues: "ACTGQ",
			alphabet: AminoAcid,
		},
		{
			name:     "empty sequence",
			residues: "   ",
			wantErr:  true,
			errType:  &EmptySequenceError{},
		},
		{
			name:     "symbol outside both alphabets",
			residues: "ACGTX",
			wantErr:  true,
			errType:  &InvalidSymbolError{},
		},
		{
			name:     "digit",
			residues: "AC1",
			wantErr:  true,
			errType:  &InvalidSymbolError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.residues)

			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, tt.errType, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.alphabet, seq.Alphabet)
		})
	}
}

func TestNewWithAlphabet(t *testing.T) {
	seq, err := NewWithAlphabet("ACGACG", AminoAcid)
	require.NoError(t, err)
	assert.Equal(t, AminoAcid, seq.Alphabet)

	_, err = NewWithAlphabet("ACGU", Nucleotide)
	require.Error(t, err)

	var symErr *InvalidSymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, 3, symErr.Position)
	assert.Equal(t, byte('U'), symErr.Found)
	assert.Contains(t, err.Error(), "nucleotide")
}

func TestParseAlphabet(t *testing.T) {
	a, ok := ParseAlphabet("DNA")
	assert.True(t, ok)
	assert.Equal(t, Nucleotide, a)

	a, ok = ParseAlphabet("protein")
	assert.True(t, ok)
	assert.Equal(t, AminoAcid, a)

	_, ok = ParseAlphabet("rna")
	assert.False(t, ok)
}

func TestFindSubsequence(t *testing.T) {
	seq, err := New("ATCCTCGTAATC")
	require.NoError(t, err)

	indices, err := seq.FindSubsequence("tc")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 10}, indices)

	_, err = seq.FindSubsequence("")
	assert.IsType(t, &EmptySequenceError{}, err)

	_, err = seq.FindSubsequence("TQ")
	assert.IsType(t, &InvalidSymbolError{}, err)
}

func TestFindStrands(t *testing.T) {
	seq, err := New("ATCCTCGTAATCGA")
	require.NoError(t, err)

	rc, err := seq.ReverseComplement()
	require.NoError(t, err)
	assert.Equal(t, "TCGATTACGAGGAT", rc.Residues)

	strands, err := seq.FindStrands("TC")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 10}, strands.Forward)
	assert.Equal(t, []int{0}, strands.Reverse)
}

func TestComplement(t *testing.T) {
	tests := []struct {
		name     string
		residues string
		want     string
	}{
		{"ATGC", "ATGC", "TACG"},
		{"AAAA", "AAAA", "TTTT"},
		{"GCGC", "GCGC", "CGCG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.residues)
			require.NoError(t, err)

			comp, err := seq.Complement()
			require.NoError(t, err)
			assert.Equal(t, tt.want, comp.Residues)
		})
	}

	t.Run("amino acid has no complement", func(t *testing.T) {
		seq, err := New("MKV")
		require.NoError(t, err)
		_, err = seq.Complement()
		require.Error(t, err)
	})
}

func TestReverseComplement(t *testing.T) {
	seq, err := New("ATCGCTAG")
	require.NoError(t, err)

	rc, err := seq.ReverseComplement()
	require.NoError(t, err)
	assert.Equal(t, "CTAGCGAT", rc.Residues)
}

func TestSubsequence(t *testing.T) {
	seq, err := New("ATGCATGC")
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   int
		end     int
		want    string
		wantErr bool
	}{
		{"first half", 0, 4, "ATGC", false},
		{"middle", 2, 6, "GCAT", false},
		{"negative start", -1, 4, "", true},
		{"end before start", 4, 2, "", true},
		{"end out of bounds", 0, 10, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := seq.Subsequence(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sub.Residues)
			assert.Equal(t, Nucleotide, sub.Alphabet)
		})
	}
}

func TestToFASTA(t *testing.T) {
	seq, err := WithMetadata("ATGC", "seq1", "Test sequence", Nucleotide)
	require.NoError(t, err)

	fasta := seq.ToFASTA()
	assert.Equal(t, ">seq1 Test sequence\nATGC\n", fasta)
}

func TestEqual(t *testing.T) {
	seq1, _ := New("ATGC")
	seq2, _ := New("atgc")
	seq3, _ := NewWithAlphabet("ATGC", AminoAcid)

	assert.True(t, seq1.Equal(seq2))
	assert.False(t, seq1.Equal(seq3))
	assert.False(t, seq1.Equal(nil))
}

func BenchmarkNew(b *testing.B) {
	residues := "ATGCATGCATGCATGCATGCATGCATGCATGCATGCATGC"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = New(residues)
	}
}
