package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloflow/internal/stats"
	"github.com/aria-lang/phyloflow/pkg/phyloflow"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FASTA",
		Short: "Summarize the sequences of a FASTA file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seqs, err := phyloflow.ReadFASTA(args[0])
			if err != nil {
				return err
			}
			if len(seqs) == 0 {
				return fmt.Errorf("no sequences found in %s", args[0])
			}

			s, err := stats.FromSequences(seqs)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), `Sequence Set Statistics
----------------------------------------
Number of sequences: %s (%d nucleotide, %d amino acid)
Total residues: %s
Length range: %s - %s
Mean length: %.1f
Median length: %s
N50: %s
`,
				humanize.Comma(int64(s.Count)), s.Nucleotide, s.AminoAcid,
				humanize.Comma(int64(s.TotalLength)),
				humanize.Comma(int64(s.MinLength)), humanize.Comma(int64(s.MaxLength)),
				s.MeanLength,
				humanize.Comma(int64(s.MedianLength)),
				humanize.Comma(int64(s.N50)))
			return err
		},
	}
}
