package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/config"
	"github.com/aria-lang/phyloflow/internal/logging"
	"github.com/aria-lang/phyloflow/pkg/phyloflow"
)

// app is the state shared by every command of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	profile  string
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
	prof     interface{ Stop() }
}

// newRootCmd builds the command tree with a fresh viper instance. The
// returned func stops profiling and closes the log file; call it after
// Execute whether or not the command failed.
func newRootCmd() (*cobra.Command, func()) {
	a := &app{v: viper.New(), logger: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:   "phyloflow",
		Short: "Pairwise alignment with affine gaps and distance-based trees",
		Long: `Align sequences globally or locally, keeping every co-optimal alignment,
and build UPGMA or neighbor-joining trees from distance matrices or sequences.`,
		Version:           phyloflow.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	flags.StringVar(&a.profile, "profile", "", "write a cpu or mem profile to the working directory")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "also write JSON logs to this file")
	flags.Int("match", 1, "score of identical residues")
	flags.Int("mismatch", -1, "score of differing residues")
	flags.Int("gap-existence", -2, "one-off penalty for opening a gap")
	flags.Int("gap-extension", -1, "penalty per gapped residue")
	flags.String("alphabet", "nucleotide", "nucleotide or amino-acid")
	flags.String("scoring-matrix", "", "substitution matrix preset (blosum62)")

	a.bind(rootCmd, map[string]string{
		"log.level":             "log-level",
		"log.file":              "log-file",
		"scoring.match":         "match",
		"scoring.mismatch":      "mismatch",
		"scoring.gap_existence": "gap-existence",
		"scoring.gap_extension": "gap-extension",
		"scoring.alphabet":      "alphabet",
		"scoring.matrix":        "scoring-matrix",
	})

	rootCmd.AddCommand(
		newAlignCmd(a),
		newTreeCmd(a),
		newNewickCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	return rootCmd, a.teardown
}

// bind maps config keys onto flags of cmd, local or persistent.
func (a *app) bind(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		_ = a.v.BindPFlag(key, flag)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	switch a.profile {
	case "":
	case "cpu":
		a.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		a.prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		return fmt.Errorf("unknown profile %q, want cpu or mem", a.profile)
	}
	return nil
}

func (a *app) teardown() {
	if a.prof != nil {
		a.prof.Stop()
		a.prof = nil
	}
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), phyloflow.Info())
			return err
		},
	}
}
