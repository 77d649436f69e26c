package kmer

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Metric compares two k-mer profiles. Every metric returns 0 for identical
// profiles.
type Metric int

const (
	// Jaccard is one minus the shared share of distinct k-mers.
	Jaccard Metric = iota
	// Cosine is one minus the cosine similarity of the count vectors.
	Cosine
	// Euclidean is the L2 distance between frequency vectors.
	Euclidean
)

func (m Metric) String() string {
	switch m {
	case Jaccard:
		return "jaccard"
	case Cosine:
		return "cosine"
	case Euclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// ParseMetric maps a metric name onto a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jaccard", "":
		return Jaccard, nil
	case "cosine":
		return Cosine, nil
	case "euclidean":
		return Euclidean, nil
	default:
		return 0, fmt.Errorf("unknown k-mer metric %q", name)
	}
}

// Distance compares a and b under m. Both profiles must share k.
func Distance(a, b *Counter, m Metric) (float64, error) {
	if a.K != b.K {
		return 0, fmt.Errorf("cannot compare profiles with k=%d and k=%d", a.K, b.K)
	}

	switch m {
	case Jaccard:
		return jaccard(a, b), nil
	case Cosine:
		return cosine(a, b), nil
	case Euclidean:
		return euclidean(a, b), nil
	default:
		return 0, fmt.Errorf("unknown k-mer metric %d", int(m))
	}
}

func jaccard(a, b *Counter) float64 {
	shared := 0
	for kmer := range a.Counts {
		if _, ok := b.Counts[kmer]; ok {
			shared++
		}
	}

	union := a.Unique() + b.Unique() - shared
	if union == 0 {
		return 0
	}
	return 1 - float64(shared)/float64(union)
}

func cosine(a, b *Counter) float64 {
	var dot, magA, magB float64
	for kmer, ca := range a.Counts {
		dot += float64(ca) * float64(b.Counts[kmer])
		magA += float64(ca) * float64(ca)
	}
	for _, cb := range b.Counts {
		magB += float64(cb) * float64(cb)
	}

	if magA == 0 || magB == 0 {
		return 1
	}
	// Rounding can push identical profiles a hair below zero.
	return math.Max(0, 1-dot/(math.Sqrt(magA)*math.Sqrt(magB)))
}

func euclidean(a, b *Counter) float64 {
	var sum float64
	for kmer := range a.Counts {
		d := a.Frequency(kmer) - b.Frequency(kmer)
		sum += d * d
	}
	for kmer := range b.Counts {
		if _, ok := a.Counts[kmer]; !ok {
			f := b.Frequency(kmer)
			sum += f * f
		}
	}
	return math.Sqrt(sum)
}

// Shared returns the k-mers present in both profiles, sorted.
func Shared(a, b *Counter) []string {
	out := make([]string, 0)
	for kmer := range a.Counts {
		if _, ok := b.Counts[kmer]; ok {
			out = append(out, kmer)
		}
	}
	sort.Strings(out)
	return out
}
