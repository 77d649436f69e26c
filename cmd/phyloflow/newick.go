package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloflow/internal/tree"
)

type newickOptions struct {
	strict  bool
	lenient bool
}

func newNewickCmd(a *app) *cobra.Command {
	opts := &newickOptions{}

	cmd := &cobra.Command{
		Use:   "newick",
		Short: "Compare, test clades of, and reformat Newick trees",
		Long: `Work with Newick trees. Every TREE argument is either Newick text or the
path of a file holding one tree.`,
	}
	cmd.PersistentFlags().BoolVar(&opts.lenient, "lenient", false, "accept nodes without a branch length")

	equalCmd := &cobra.Command{
		Use:     "equal TREE1 TREE2",
		Short:   "Report whether two trees have the same shape, ignoring child order",
		Example: `  phyloflow newick equal "((a:1,b:2):1,c:3):0" "(c:3,(b:2,a:1):1):0" --strict`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t1, t2, err := opts.parsePair(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tree.Equal(t1, t2, opts.strict))
			return err
		},
	}
	equalCmd.Flags().BoolVar(&opts.strict, "strict", false, "branch lengths must match too")

	cladeCmd := &cobra.Command{
		Use:   "clade TREE CLADE",
		Short: "Report whether CLADE occurs as a subtree of TREE, ignoring branch lengths",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t1, t2, err := opts.parsePair(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tree.Clade(t1, t2))
			return err
		},
	}

	formatCmd := &cobra.Command{
		Use:   "format TREE",
		Short: "Parse a tree and print it in canonical form with its leaf labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.parse(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s;\n%s\n", tree.ToNewick(root), root)
			return err
		},
	}

	cmd.AddCommand(equalCmd, cladeCmd, formatCmd)
	return cmd
}

// parse reads arg as Newick text, or as a file when no such text parses
// and a file of that name exists.
func (o *newickOptions) parse(arg string) (*tree.Node, error) {
	text := arg
	if !strings.ContainsAny(arg, "(:,") {
		if b, err := os.ReadFile(arg); err == nil {
			text = string(b)
		}
	}

	if o.lenient {
		return tree.ToTreeLenient(text)
	}
	return tree.ToTree(text)
}

func (o *newickOptions) parsePair(args []string) (*tree.Node, *tree.Node, error) {
	t1, err := o.parse(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("first tree: %w", err)
	}
	t2, err := o.parse(args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("second tree: %w", err)
	}
	return t1, t2, nil
}
