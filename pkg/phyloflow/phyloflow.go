// Package phyloflow provides a high-level API for pairwise alignment and
// distance-based phylogenetics.
//
// Example usage:
//
//	h, _ := phyloflow.NewSequence("GTCGACGCA")
//	v, _ := phyloflow.NewSequence("GATTACA")
//
//	result, err := phyloflow.Align(h, v, phyloflow.DefaultScheme(), phyloflow.Global)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Alignments() {
//	    fmt.Println(a.Format())
//	}
//
//	m, _ := phyloflow.NewMatrix([]string{"a", "b", "c"}, distances)
//	root, _ := phyloflow.BuildTree(m, phyloflow.UPGMA)
//	fmt.Println(phyloflow.ToNewick(root))
package phyloflow

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/distance"
	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/tree"
)

// Re-export types for convenience
type (
	Sequence      = sequence.Sequence
	Alphabet      = sequence.Alphabet
	Scheme        = alignment.Scheme
	Mode          = alignment.Mode
	Result        = alignment.Result
	Alignment     = alignment.Alignment
	Matrix        = cluster.Matrix
	ClusterMethod = cluster.Method
	Distance      = distance.Method
	Node          = tree.Node
)

// Constants
const (
	Nucleotide = sequence.Nucleotide
	AminoAcid  = sequence.AminoAcid

	Global = alignment.Global
	Local  = alignment.Local

	UPGMA = cluster.MethodUPGMA
	NJ    = cluster.MethodNJ

	AlignmentDistance = distance.Alignment
	KMerDistance      = distance.KMer
)

// FASTALineWidth is the residue line width used when writing FASTA.
const FASTALineWidth = 60

// NewSequence creates a sequence, detecting its alphabet.
func NewSequence(residues string) (*Sequence, error) {
	return sequence.New(residues)
}

// NewSequenceWithAlphabet creates a sequence over a fixed alphabet.
func NewSequenceWithAlphabet(residues string, a Alphabet) (*Sequence, error) {
	return sequence.NewWithAlphabet(residues, a)
}

// NewScheme creates a match/mismatch scoring scheme with affine gaps.
func NewScheme(match, mismatch, existence, extension int, a Alphabet) (*Scheme, error) {
	return alignment.NewScheme(match, mismatch, existence, extension, a)
}

// DefaultScheme returns the default nucleotide scheme.
func DefaultScheme() *Scheme {
	return alignment.DefaultNucleotide()
}

// BLOSUM62 returns the BLOSUM62 amino acid scheme.
func BLOSUM62(existence, extension int) (*Scheme, error) {
	return alignment.BLOSUM62(existence, extension)
}

// Align fills the alignment grid of h against v.
func Align(h, v *Sequence, scheme *Scheme, mode Mode) (*Result, error) {
	aligner, err := alignment.NewAligner(h, v, scheme)
	if err != nil {
		return nil, err
	}
	return aligner.Align(mode)
}

// AlignGlobal returns every co-optimal global alignment.
func AlignGlobal(h, v *Sequence, scheme *Scheme) ([]*Alignment, error) {
	r, err := Align(h, v, scheme, Global)
	if err != nil {
		return nil, err
	}
	return r.Alignments(), nil
}

// AlignLocal returns every co-optimal local alignment.
func AlignLocal(h, v *Sequence, scheme *Scheme) ([]*Alignment, error) {
	r, err := Align(h, v, scheme, Local)
	if err != nil {
		return nil, err
	}
	return r.Alignments(), nil
}

// Score returns the optimal score only.
func Score(h, v *Sequence, scheme *Scheme, mode Mode) (int, error) {
	return alignment.ScoreOnly(h, v, scheme, mode)
}

// NewMatrix creates a labelled distance matrix.
func NewMatrix(labels []string, values [][]float64) (*Matrix, error) {
	return cluster.NewMatrix(labels, values)
}

// ReadMatrix reads a CSV distance matrix.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	return cluster.ReadCSV(r)
}

// BuildTree clusters m into a rooted tree.
func BuildTree(m *Matrix, method ClusterMethod) (*Node, error) {
	return cluster.Build(m, method)
}

// TreeFromSequences measures every pair of seqs and clusters the result.
// scheme is only used by the alignment distance and may be nil for the
// default nucleotide scheme.
func TreeFromSequences(seqs []*Sequence, scheme *Scheme, measure Distance, method ClusterMethod) (*Node, error) {
	var opts []distance.Option
	if scheme != nil {
		opts = append(opts, distance.WithScheme(scheme))
	}
	m, err := distance.NewBuilder(opts...).Build(seqs, measure)
	if err != nil {
		return nil, err
	}
	return cluster.Build(m, method)
}

// ToNewick serializes a tree.
func ToNewick(root *Node) string {
	return tree.ToNewick(root)
}

// ParseNewick parses a tree whose nodes all carry a branch length.
func ParseNewick(s string) (*Node, error) {
	return tree.ToTree(s)
}

// TreesEqual compares two trees, ignoring child order.
func TreesEqual(a, b *Node, strict bool) bool {
	return tree.Equal(a, b, strict)
}

// IsClade reports whether candidate occurs as a subtree of root.
func IsClade(root, candidate *Node) bool {
	return tree.Clade(root, candidate)
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA records from a reader. Each record's alphabet
// is detected from its residues.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))

	sequences := make([]*Sequence, 0)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)

		residues := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			residues[i] = byte(l)
		}

		seq, err := sequence.New(string(residues))
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", len(sequences)+1, s.ID, err)
		}
		seq.ID = s.ID
		seq.Description = s.Desc
		sequences = append(sequences, seq)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}

	return sequences, nil
}

// FormatFASTA writes sequences as FASTA records.
func FormatFASTA(w io.Writer, sequences []*Sequence) error {
	fw := fasta.NewWriter(w, FASTALineWidth)
	for i, seq := range sequences {
		id := seq.ID
		if id == "" {
			id = fmt.Sprintf("seq%d", i+1)
		}
		s := linear.NewSeq(id, alphabet.BytesToLetters([]byte(seq.Residues)), biogoAlphabet(seq.Alphabet))
		s.Desc = seq.Description
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("writing sequence %s: %w", id, err)
		}
	}
	return nil
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := FormatFASTA(file, sequences); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func biogoAlphabet(a Alphabet) alphabet.Alphabet {
	if a == Nucleotide {
		return alphabet.DNA
	}
	return alphabet.Protein
}

// Version is the phyloflow release.
const Version = "1.0.0"

// Info returns information about phyloflow.
func Info() string {
	return fmt.Sprintf(`phyloflow v%s - Pairwise Alignment and Distance Phylogenetics

Features:
  - Needleman-Wunsch and Smith-Waterman alignment with affine gaps
  - Enumeration of every co-optimal alignment
  - Match/mismatch and BLOSUM62 scoring
  - UPGMA and neighbor-joining trees
  - Alignment and k-mer distance matrices
  - Newick parsing, writing and comparison
  - FASTA and CSV input
`, Version)
}
