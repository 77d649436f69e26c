package sequence

import "strings"

// Symbol sets for the two supported alphabets.
const (
	NucleotideSymbols = "ACGT"
	AminoAcidSymbols  = "CSTPAGNDEQHRKMILVFYW"
)

// Alphabet identifies the residue set a sequence is drawn from. It is
// decided once when the sequence is built and never changes afterwards.
type Alphabet int

const (
	// Nucleotide covers DNA bases (A, C, G, T).
	Nucleotide Alphabet = iota
	// AminoAcid covers the 20 standard amino acids.
	AminoAcid
)

func (a Alphabet) String() string {
	switch a {
	case Nucleotide:
		return "nucleotide"
	case AminoAcid:
		return "amino-acid"
	default:
		return "unknown"
	}
}

// Symbols returns the residues of the alphabet in canonical order.
func (a Alphabet) Symbols() string {
	if a == AminoAcid {
		return AminoAcidSymbols
	}
	return NucleotideSymbols
}

// Size returns the number of residues in the alphabet.
func (a Alphabet) Size() int {
	return len(a.Symbols())
}

// Contains reports whether c is a residue of the alphabet.
func (a Alphabet) Contains(c byte) bool {
	return strings.IndexByte(a.Symbols(), c) >= 0
}

// IndexOf returns the position of c in Symbols, or -1.
func (a Alphabet) IndexOf(c byte) int {
	return strings.IndexByte(a.Symbols(), c)
}

// ParseAlphabet maps a configuration name onto an Alphabet.
func ParseAlphabet(name string) (Alphabet, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nucleotide", "nt", "dna":
		return Nucleotide, true
	case "amino-acid", "aminoacid", "aa", "protein":
		return AminoAcid, true
	default:
		return 0, false
	}
}

// DetectAlphabet picks Nucleotide when every residue is one of ACGT and
// AminoAcid otherwise. The input is expected to be cleaned already.
func DetectAlphabet(residues string) Alphabet {
	for i := 0; i < len(residues); i++ {
		if !Nucleotide.Contains(residues[i]) {
			return AminoAcid
		}
	}
	return Nucleotide
}
