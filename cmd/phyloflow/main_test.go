package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd, teardown := newRootCmd()
	defer teardown()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const threeTaxa = ">s1\nACGTACGTACGT\n>s2\nACGTACGTACGA\n>s3\nTTGCATTCAGGA\n"

func TestAlignCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "cigar lists every co-optimal alignment",
			args: []string{"align", "GTCGACGCA", "GATTACA", "--gap-existence=0", "--gap-extension=-2", "--format", "cigar"},
			want: "-3\t1=3X2=2D1=\t0-9\t0-7\n-3\t1=3X1=2D2=\t0-9\t0-7\n",
		},
		{
			name: "score only",
			args: []string{"align", "ACACACTA", "AGCACACA", "--match=2", "--score-only"},
			want: "8\n",
		},
		{
			name: "local score only",
			args: []string{"align", "ACACACTA", "AGCACACA", "--match=2", "--mode", "sw", "--score-only"},
			want: "10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestAlignCmdText(t *testing.T) {
	out, err := run(t, "align", "ACACACTA", "AGCACACA", "--match=2", "--mode", "local", "--max", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "H: CACAC\n   |||||\nV: CACAC")
	assert.Contains(t, out, "1 local alignment, optimal score 10")
	assert.NotContains(t, out, "#2")
}

func TestAlignCmdJSON(t *testing.T) {
	path := writeFile(t, "pair.fa", ">h\nACACACTA\n>v\nAGCACACA\n")

	out, err := run(t, "align", "--fasta", path, "--match=2", "--mode", "local", "--format", "json", "--paths")
	require.NoError(t, err)

	var resp struct {
		Mode       string `json:"mode"`
		Score      int    `json:"score"`
		Alignments []struct {
			AlignedSeq1 string `json:"aligned_seq1"`
			Path        []struct {
				Col int `json:"col"`
				Row int `json:"row"`
			} `json:"path"`
		} `json:"alignments"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "local", resp.Mode)
	assert.Equal(t, 10, resp.Score)
	require.Len(t, resp.Alignments, 2)
	assert.Equal(t, "CACAC", resp.Alignments[0].AlignedSeq1)
	assert.Len(t, resp.Alignments[0].Path, 5)
}

func TestTreeCmdMatrix(t *testing.T) {
	path := writeFile(t, "d.csv", `,a,b,c,d,e
a,0,17,21,31,23
b,17,0,30,34,21
c,21,30,0,28,39
d,31,34,28,0,43
e,23,21,39,43,0
`)

	out, err := run(t, "tree", "--matrix", path)
	require.NoError(t, err)
	assert.Equal(t, "((e:11.0,(a:8.5,b:8.5):2.5):5.5,(c:14.0,d:14.0):2.5):0.0;\n", out)

	njPath := writeFile(t, "nj.csv", `a,b,c,d,e
0,5,9,9,8
5,0,10,10,9
9,10,0,8,7
9,10,8,0,3
8,9,7,3,0
`)
	out, err = run(t, "tree", "--matrix", njPath, "--method", "nj")
	require.NoError(t, err)
	assert.Equal(t, "((c:4.0,(a:2.0,b:3.0):3.0):1.0,(d:2.0,e:1.0):1.0):0.0;\n", out)
}

func TestTreeCmdFASTA(t *testing.T) {
	path := writeFile(t, "taxa.fa", threeTaxa)

	for _, distance := range []string{"alignment", "kmer"} {
		t.Run(distance, func(t *testing.T) {
			out, err := run(t, "tree", "--fasta", path, "--distance", distance, "--stats", "--progress")
			require.NoError(t, err)

			assert.Contains(t, out, "(s1:")
			assert.Contains(t, out, "leaves: 3\n")
			assert.Contains(t, out, "ultrametric: true\n")
		})
	}
}

func TestTreeCmdDumpMatrix(t *testing.T) {
	path := writeFile(t, "taxa.fa", threeTaxa)

	out, err := run(t, "tree", "--fasta", path, "--distance", "kmer", "--dump-matrix")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "s1,s2,s3")
	assert.True(t, strings.HasSuffix(lines[4], ";"))
}

func TestTreeCmdFASTAWithScoringMatrix(t *testing.T) {
	path := writeFile(t, "taxa.fa", threeTaxa)

	out, err := run(t, "tree", "--fasta", path, "--scoring-matrix", "blosum62", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "leaves: 3\n")

	_, err = run(t, "tree", "--fasta", path, "--matrix", path)
	assert.Error(t, err)
}

func TestFailedCommandStopsProfile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := run(t, "align", "ACGT", "ACGQ", "--profile", "mem")
	require.Error(t, err)

	info, err := os.Stat(filepath.Join(dir, "mem.pprof"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "version", "--profile", "cpu")
	require.NoError(t, err)
}

func TestNewickCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "equal strict",
			args: []string{"newick", "equal", "((a:1,b:2):1,c:3):0", "(c:3,(b:2,a:1):1):0", "--strict"},
			want: "true\n",
		},
		{
			name: "unequal strict",
			args: []string{"newick", "equal", "((a:1,b:2):1,c:3):0", "(c:3,(b:2,a:5):1):0", "--strict"},
			want: "false\n",
		},
		{
			name: "clade",
			args: []string{"newick", "clade", "((a:1,b:2):1,c:3):0", "(b:7,a:7):0"},
			want: "true\n",
		},
		{
			name: "format",
			args: []string{"newick", "format", "((a:1,b:2):1,c:3):0;"},
			want: "((a:1.0,b:2.0):1.0,c:3.0):0.0;\na-b-c\n",
		},
		{
			name: "lenient",
			args: []string{"newick", "format", "(a,(b,c))", "--lenient"},
			want: "(a,(b,c));\na-b-c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNewickCmdReadsFiles(t *testing.T) {
	a := writeFile(t, "a.nwk", "((a:1,b:2):1,c:3):0;\n")
	b := writeFile(t, "b.nwk", "(b:2,a:1):1;")

	out, err := run(t, "newick", "clade", a, b)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestStatsCmd(t *testing.T) {
	out, err := run(t, "stats", writeFile(t, "taxa.fa", threeTaxa))
	require.NoError(t, err)

	assert.Contains(t, out, "Number of sequences: 3 (3 nucleotide, 0 amino acid)")
	assert.Contains(t, out, "Total residues: 36")
	assert.Contains(t, out, "N50: 12")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "phyloflow v1.0.0")
}

func TestCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"one sequence", []string{"align", "ACGT"}},
		{"foreign residue", []string{"align", "ACGT", "ACGQ"}},
		{"bad format", []string{"align", "ACGT", "ACGT", "--format", "xml"}},
		{"bad mode", []string{"align", "ACGT", "ACGT", "--mode", "semi"}},
		{"no tree input", []string{"tree"}},
		{"bad method", []string{"tree", "--matrix", "x.csv", "--method", "wpgma"}},
		{"missing matrix", []string{"tree", "--matrix", "does-not-exist.csv"}},
		{"bad profile", []string{"version", "--profile", "block"}},
		{"malformed newick", []string{"newick", "format", "((a:1,b:2):1"}},
		{"missing distance", []string{"newick", "equal", "(a,b)", "(a:1,b:1):0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
