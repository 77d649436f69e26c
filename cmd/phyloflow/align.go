package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/stats"
)

type alignOptions struct {
	fasta     string
	format    string
	scoreOnly bool
	paths     bool
}

func newAlignCmd(a *app) *cobra.Command {
	opts := &alignOptions{}

	cmd := &cobra.Command{
		Use:   "align [SEQ1 SEQ2]",
		Short: "Align two sequences",
		Long: `Align two sequences with affine gap penalties and print every co-optimal
alignment. SEQ1 runs along the horizontal axis of the grid. With --fasta the
first two records of the file are aligned instead.`,
		Example: `  phyloflow align GTCGACGCA GATTACA --gap-existence 0 --gap-extension -2
  phyloflow align --mode local --max 5 --fasta pair.fa`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAlign(cmd.OutOrStdout(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.String("mode", "global", "global (Needleman-Wunsch) or local (Smith-Waterman)")
	flags.Int("max", 0, "stop after this many alignments, 0 for all")
	flags.StringVar(&opts.fasta, "fasta", "", "read the pair from a FASTA file")
	flags.StringVar(&opts.format, "format", "text", "output format: text, cigar or json")
	flags.BoolVar(&opts.scoreOnly, "score-only", false, "print the optimal score only")
	flags.BoolVar(&opts.paths, "paths", false, "include traceback cells in json output")

	a.bind(cmd, map[string]string{
		"alignment.mode":           "mode",
		"alignment.max_alignments": "max",
	})
	return cmd
}

func (a *app) pair(opts *alignOptions, args []string, alphabet sequence.Alphabet) (*sequence.Sequence, *sequence.Sequence, error) {
	if opts.fasta != "" {
		if len(args) > 0 {
			return nil, nil, fmt.Errorf("give either two sequences or --fasta, not both")
		}
		seqs, err := a.readFASTA(opts.fasta, alphabet)
		if err != nil {
			return nil, nil, err
		}
		if len(seqs) < 2 {
			return nil, nil, fmt.Errorf("%s: need two records, found %d", opts.fasta, len(seqs))
		}
		return seqs[0], seqs[1], nil
	}

	if len(args) != 2 {
		return nil, nil, fmt.Errorf("need two sequences, got %d", len(args))
	}
	h, err := sequence.NewWithAlphabet(args[0], alphabet)
	if err != nil {
		return nil, nil, fmt.Errorf("sequence 1: %w", err)
	}
	v, err := sequence.NewWithAlphabet(args[1], alphabet)
	if err != nil {
		return nil, nil, fmt.Errorf("sequence 2: %w", err)
	}
	return h, v, nil
}

func (a *app) runAlign(w io.Writer, opts *alignOptions, args []string) error {
	scheme, err := a.cfg.Scheme()
	if err != nil {
		return err
	}
	mode, err := a.cfg.Mode()
	if err != nil {
		return err
	}

	h, v, err := a.pair(opts, args, scheme.Alphabet())
	if err != nil {
		return err
	}

	if opts.scoreOnly {
		score, err := alignment.ScoreOnly(h, v, scheme, mode)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, score)
		return err
	}

	aligner, err := alignment.NewAligner(h, v, scheme, alignment.WithLogger(a.logger))
	if err != nil {
		return err
	}
	result, err := aligner.Align(mode)
	if err != nil {
		return err
	}
	alignments := result.Enumerate(a.cfg.Alignment.MaxAlignments)

	switch opts.format {
	case "text":
		return writeAlignmentText(w, result, alignments)
	case "cigar":
		for _, al := range alignments {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%d-%d\t%d-%d\n",
				al.Score, al.ToCIGAR(), al.Start1, al.End1, al.Start2, al.End2); err != nil {
				return err
			}
		}
		return nil
	case "json":
		if !opts.paths {
			for _, al := range alignments {
				al.Path = nil
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Mode       string                   `json:"mode"`
			Score      int                      `json:"score"`
			Alignments []*alignment.Alignment   `json:"alignments"`
			Stats      *stats.AlignmentSetStats `json:"stats"`
		}{mode.String(), result.Optimal, alignments, stats.FromAlignments(alignments)})
	default:
		return fmt.Errorf("unknown format %q, want text, cigar or json", opts.format)
	}
}

func writeAlignmentText(w io.Writer, result *alignment.Result, alignments []*alignment.Alignment) error {
	for i, al := range alignments {
		if _, err := fmt.Fprintf(w, "#%d\n%s\n\n", i+1, al.Format()); err != nil {
			return err
		}
	}

	summary := stats.FromAlignments(alignments)
	noun := "alignments"
	if summary.Count == 1 {
		noun = "alignment"
	}
	_, err := fmt.Fprintf(w, "%s %s %s, optimal score %d, identity %.1f%%-%.1f%%\n",
		humanize.Comma(int64(summary.Count)), result.Mode, noun, result.Optimal,
		summary.MinIdentity*100, summary.MaxIdentity*100)
	if err != nil {
		return err
	}
	if summary.Count == 0 {
		_, err = fmt.Fprintln(w, "no alignment scores above zero")
	}
	return err
}
