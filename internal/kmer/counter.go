// Package kmer counts fixed-length words in sequences and compares the
// resulting profiles. It gives the clustering pipeline an alignment-free
// distance between sequences.
package kmer

import (
	"fmt"
	"sort"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

// Count pairs a k-mer with its number of occurrences.
type Count struct {
	KMer  string `json:"kmer"`
	Count int    `json:"count"`
}

// Counter is a k-mer profile of one or more sequences over a single
// alphabet.
type Counter struct {
	K        int
	Alphabet sequence.Alphabet
	Counts   map[string]int
	Total    int
}

// NewCounter creates an empty profile.
func NewCounter(k int, alphabet sequence.Alphabet) (*Counter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	return &Counter{
		K:        k,
		Alphabet: alphabet,
		Counts:   make(map[string]int),
	}, nil
}

// Profile counts every k-mer of seq.
func Profile(seq *sequence.Sequence, k int) (*Counter, error) {
	if k > seq.Len() {
		return nil, fmt.Errorf("k=%d exceeds sequence length %d", k, seq.Len())
	}

	c, err := NewCounter(k, seq.Alphabet)
	if err != nil {
		return nil, err
	}
	if err := c.Add(seq); err != nil {
		return nil, err
	}
	return c, nil
}

// Add counts the k-mers of seq into c.
func (c *Counter) Add(seq *sequence.Sequence) error {
	if seq.Alphabet != c.Alphabet {
		return fmt.Errorf("cannot count %s sequence into %s profile", seq.Alphabet, c.Alphabet)
	}

	r := seq.Residues
	for i := 0; i+c.K <= len(r); i++ {
		c.Counts[r[i:i+c.K]]++
		c.Total++
	}
	return nil
}

// Get returns the count of kmer, zero when absent.
func (c *Counter) Get(kmer string) int {
	return c.Counts[sequence.Clean(kmer)]
}

// Unique returns the number of distinct k-mers.
func (c *Counter) Unique() int {
	return len(c.Counts)
}

// Frequency returns the share of all counted k-mers that equal kmer.
func (c *Counter) Frequency(kmer string) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Get(kmer)) / float64(c.Total)
}

// MostFrequent returns up to n k-mers ordered by descending count, ties
// broken alphabetically.
func (c *Counter) MostFrequent(n int) []Count {
	out := c.sorted()
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func (c *Counter) sorted() []Count {
	out := make([]Count, 0, len(c.Counts))
	for kmer, count := range c.Counts {
		out = append(out, Count{KMer: kmer, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].KMer < out[j].KMer
	})
	return out
}

// Merge adds the counts of other into c.
func (c *Counter) Merge(other *Counter) error {
	if c.K != other.K {
		return fmt.Errorf("cannot merge counters with different k values")
	}
	if c.Alphabet != other.Alphabet {
		return fmt.Errorf("cannot merge %s and %s profiles", c.Alphabet, other.Alphabet)
	}

	for kmer, count := range other.Counts {
		c.Counts[kmer] += count
		c.Total += count
	}
	return nil
}

func (c *Counter) String() string {
	return fmt.Sprintf("Counter { k: %d, unique: %d, total: %d }", c.K, c.Unique(), c.Total)
}
