// Command phyloflow aligns sequences and builds distance trees.
//
// Usage:
//
//	phyloflow [command] [flags]
//
// Commands:
//
//	align       Align two sequences and list every co-optimal alignment
//	tree        Build a UPGMA or neighbor-joining tree
//	newick      Compare, test clades of, and reformat Newick trees
//	stats       Summarize the sequences of a FASTA file
//	version     Show version information
package main

import (
	"os"
)

func main() {
	cmd, teardown := newRootCmd()
	err := cmd.Execute()
	teardown()
	if err != nil {
		os.Exit(1)
	}
}
