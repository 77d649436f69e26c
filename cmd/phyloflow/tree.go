package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/distance"
	"github.com/aria-lang/phyloflow/internal/stats"
	"github.com/aria-lang/phyloflow/internal/tree"
)

type treeOptions struct {
	matrix   string
	fasta    string
	progress bool
	stats    bool
	dump     bool
}

func newTreeCmd(a *app) *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Build a UPGMA or neighbor-joining tree",
		Long: `Build a rooted tree and print it in Newick format. Distances come either
from a CSV matrix (--matrix) or from all sequence pairs of a FASTA file
(--fasta), measured by alignment p-distance or k-mer distance.`,
		Example: `  phyloflow tree --matrix distances.csv --method nj
  phyloflow tree --fasta genes.fa --distance kmer --kmer 4 --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTree(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.matrix, "matrix", "", "CSV distance matrix")
	flags.StringVar(&opts.fasta, "fasta", "", "FASTA file of sequences to compare pairwise")
	flags.String("method", "upgma", "clustering method: upgma or nj")
	flags.String("distance", "alignment", "sequence distance: alignment or kmer")
	flags.Int("kmer", 3, "k-mer size for the kmer distance")
	flags.String("metric", "jaccard", "k-mer metric: jaccard, cosine or euclidean")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar while measuring pairs")
	flags.BoolVar(&opts.stats, "stats", false, "print tree statistics after the tree")
	flags.BoolVar(&opts.dump, "dump-matrix", false, "print the distance matrix as CSV before the tree")

	a.bind(cmd, map[string]string{
		"cluster.method":   "method",
		"cluster.distance": "distance",
		"cluster.kmer":     "kmer",
		"cluster.metric":   "metric",
	})
	return cmd
}

func (a *app) runTree(stdout, stderr io.Writer, opts *treeOptions) error {
	method, err := a.cfg.ClusterMethod()
	if err != nil {
		return err
	}

	var m *cluster.Matrix
	switch {
	case opts.matrix != "" && opts.fasta != "":
		return fmt.Errorf("give either --matrix or --fasta, not both")
	case opts.matrix != "":
		m, err = readMatrix(opts.matrix)
	case opts.fasta != "":
		m, err = a.measure(stderr, opts)
	default:
		return fmt.Errorf("one of --matrix or --fasta is required")
	}
	if err != nil {
		return err
	}

	if opts.dump {
		if err := m.WriteCSV(stdout); err != nil {
			return err
		}
	}

	root, err := cluster.Build(m, method, cluster.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, tree.ToNewick(root)+";"); err != nil {
		return err
	}

	if opts.stats {
		s := stats.FromTree(root, stats.DefaultTolerance)
		_, err = fmt.Fprintf(stdout, "leaves: %s\ninternal: %s\nheight: %g\nbranch length: %g\nultrametric: %t\nnegative branches: %d\n",
			humanize.Comma(int64(s.Leaves)), humanize.Comma(int64(s.Internal)),
			s.Height, s.BranchLength, s.Ultrametric, s.Negative)
	}
	return err
}

func readMatrix(path string) (*cluster.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := cluster.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// measure builds the pairwise distance matrix of a FASTA file.
func (a *app) measure(stderr io.Writer, opts *treeOptions) (*cluster.Matrix, error) {
	measure, err := a.cfg.DistanceMethod()
	if err != nil {
		return nil, err
	}
	scheme, err := a.cfg.Scheme()
	if err != nil {
		return nil, err
	}
	seqs, err := a.readFASTA(opts.fasta, scheme.Alphabet())
	if err != nil {
		return nil, err
	}

	buildOpts, err := a.cfg.DistanceOptions()
	if err != nil {
		return nil, err
	}
	buildOpts = append(buildOpts, distance.WithLogger(a.logger))

	pairs := len(seqs) * (len(seqs) - 1) / 2
	var (
		pbs *mpb.Progress
		bar *mpb.Bar
	)
	if opts.progress && pairs > 0 {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(stderr))
		bar = pbs.AddBar(int64(pairs),
			mpb.PrependDecorators(
				decor.Name("measured pairs: ", decor.WC{W: len("measured pairs: "), C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.AverageETA(decor.ET_STYLE_GO),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
		buildOpts = append(buildOpts, distance.WithProgress(func(done, total int) {
			bar.SetCurrent(int64(done))
		}))
	}

	m, err := distance.NewBuilder(buildOpts...).Build(seqs, measure)
	if pbs != nil {
		if err != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if err != nil {
		return nil, err
	}

	a.logger.Info("distance matrix built",
		zap.Stringer("distance", measure),
		zap.String("taxa", humanize.Comma(int64(len(seqs)))),
		zap.String("pairs", humanize.Comma(int64(pairs))))
	return m, nil
}
