package cluster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/phyloflow/internal/tree"
)

var (
	fitchLabels = []string{"Turtle", "Human", "Tuna", "Chicken", "Moth", "Monkey", "Dog"}
	fitchMatrix = [][]float64{
		{0, 19, 27, 8, 33, 18, 13},
		{19, 0, 31, 18, 36, 1, 13},
		{27, 31, 0, 26, 41, 32, 29},
		{8, 18, 26, 0, 31, 17, 14},
		{33, 36, 41, 31, 0, 35, 28},
		{18, 1, 32, 17, 35, 0, 12},
		{13, 13, 29, 14, 28, 12, 0},
	}

	njLabels = []string{"i", "j", "k", "l"}
	njMatrix = [][]float64{
		{0, 13, 21, 22},
		{13, 0, 12, 13},
		{21, 12, 0, 13},
		{22, 13, 13, 0},
	}
)

func mustMatrix(t *testing.T, labels []string, values [][]float64) *Matrix {
	t.Helper()
	m, err := NewMatrix(labels, values)
	require.NoError(t, err)
	return m
}

func TestUPGMA(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values [][]float64
		want   string
	}{
		{
			name:   "fitch margoliash",
			labels: fitchLabels,
			values: fitchMatrix,
			want: "(Moth:17.0,(Tuna:14.5,((Turtle:4.0,Chicken:4.0):4.25," +
				"(Dog:6.25,(Human:0.5,Monkey:0.5):5.75):2.0):6.25):2.5):0.0",
		},
		{
			name:   "five taxa",
			labels: []string{"a", "b", "c", "d", "e"},
			values: [][]float64{
				{0, 17, 21, 31, 23},
				{17, 0, 30, 34, 21},
				{21, 30, 0, 28, 39},
				{31, 34, 28, 0, 43},
				{23, 21, 39, 43, 0},
			},
			want: "((e:11.0,(a:8.5,b:8.5):2.5):5.5,(c:14.0,d:14.0):2.5):0.0",
		},
		{
			name:   "two taxa",
			labels: []string{"x", "y"},
			values: [][]float64{{0, 2}, {2, 0}},
			want:   "(x:1.0,y:1.0):0.0",
		},
		{
			name:   "ties take the first cell",
			labels: []string{"a", "b", "c", "d"},
			values: [][]float64{{0, 2, 2, 2}, {2, 0, 2, 2}, {2, 2, 0, 2}, {2, 2, 2, 0}},
			want:   "((a:1.0,b:1.0):0.0,(c:1.0,d:1.0):0.0):0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := UPGMA(mustMatrix(t, tt.labels, tt.values))
			assert.Equal(t, tt.want, tree.ToNewick(root))
		})
	}
}

func TestNeighborJoining(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values [][]float64
		want   string
	}{
		{
			name:   "four taxa",
			labels: njLabels,
			values: njMatrix,
			want:   "((i:11.0,j:2.0):2.0,(k:6.0,l:7.0):2.0):0.0",
		},
		{
			name:   "five taxa",
			labels: []string{"a", "b", "c", "d", "e"},
			values: [][]float64{
				{0, 5, 9, 9, 8},
				{5, 0, 10, 10, 9},
				{9, 10, 0, 8, 7},
				{9, 10, 8, 0, 3},
				{8, 9, 7, 3, 0},
			},
			want: "((c:4.0,(a:2.0,b:3.0):3.0):1.0,(d:2.0,e:1.0):1.0):0.0",
		},
		{
			name:   "two taxa",
			labels: []string{"x", "y"},
			values: [][]float64{{0, 2}, {2, 0}},
			want:   "(x:1.0,y:1.0):0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NeighborJoining(mustMatrix(t, tt.labels, tt.values))
			assert.Equal(t, tt.want, tree.ToNewick(root))
		})
	}
}

func TestUPGMAIsUltrametric(t *testing.T) {
	matrices := []struct {
		labels []string
		values [][]float64
	}{
		{fitchLabels, fitchMatrix},
		{njLabels, njMatrix},
		{[]string{"a", "b", "c"}, [][]float64{{0, 3, 7}, {3, 0, 5}, {7, 5, 0}}},
	}

	for _, m := range matrices {
		root := UPGMA(mustMatrix(t, m.labels, m.values))
		depths := root.Depths()
		require.Len(t, depths, len(m.labels))

		height := root.Height()
		for label, d := range depths {
			assert.InDelta(t, height, d, 1e-9, label)
		}
	}
}

func TestLeafCounts(t *testing.T) {
	for _, method := range []Method{MethodUPGMA, MethodNJ} {
		root, err := Build(mustMatrix(t, fitchLabels, fitchMatrix), method)
		require.NoError(t, err)

		var walk func(*tree.Node)
		walk = func(n *tree.Node) {
			if n.IsLeaf() {
				assert.Equal(t, 1, n.Len())
				return
			}
			require.Len(t, n.Children, 2)
			assert.Equal(t, n.Children[0].Len()+n.Children[1].Len(), n.Len())
			walk(n.Children[0])
			walk(n.Children[1])
		}
		walk(root)
		assert.Equal(t, len(fitchLabels), root.Len())
		assert.ElementsMatch(t, fitchLabels, root.Labels())
		assert.Equal(t, 0.0, root.Distance)
	}
}

func TestNewMatrixDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values [][]float64
		reason string
	}{
		{"one taxon", []string{"a"}, [][]float64{{0}}, "at least two taxa"},
		{"no taxa", nil, nil, "at least two taxa"},
		{"row count", []string{"a", "b"}, [][]float64{{0, 1}}, "1 rows"},
		{"not square", []string{"a", "b"}, [][]float64{{0, 1}, {1}}, "row 1 has 1 columns"},
		{"not symmetric", []string{"a", "b"}, [][]float64{{0, 1}, {2, 0}}, "not symmetric"},
		{"duplicate label", []string{"a", "a"}, [][]float64{{0, 1}, {1, 0}}, "duplicate"},
		{"newick delimiter", []string{"a:1", "b"}, [][]float64{{0, 1}, {1, 0}}, "delimiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.labels, tt.values)
			require.Error(t, err)

			var degErr *DegenerateInputError
			require.ErrorAs(t, err, &degErr)
			assert.Contains(t, degErr.Reason, tt.reason)
		})
	}
}

func TestMatrixIsCopied(t *testing.T) {
	values := [][]float64{{0, 1}, {1, 0}}
	labels := []string{"a", "b"}
	m := mustMatrix(t, labels, values)

	values[0][1] = 9
	labels[0] = "z"
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, []string{"a", "b"}, m.Labels())

	UPGMA(m)
	assert.Equal(t, 1.0, m.At(1, 0), "clustering does not mutate the input")
}

func TestCSV(t *testing.T) {
	input := `# Fitch-Margoliash subset
,i,j,k,l
i,0,13,21,22
j,13,0,12,13
k,21,12,0,13
l,22,13,13,0
`
	m, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, njLabels, m.Labels())
	assert.Equal(t, njMatrix, m.Rows())

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))

	again, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Rows(), again.Rows())

	bare, err := ReadCSV(strings.NewReader("x,y\n0,2\n2,0\n"))
	require.NoError(t, err)
	assert.Equal(t, "(x:1.0,y:1.0):0.0", tree.ToNewick(UPGMA(bare)))
}

func TestCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.IsType(t, &DegenerateInputError{}, err)

	_, err = ReadCSV(strings.NewReader("a,b\n0,x\n1,0\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(",a,b\nb,0,1\na,1,0\n"))
	assert.Error(t, err)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("UPGMA")
	require.NoError(t, err)
	assert.Equal(t, MethodUPGMA, m)

	m, err = ParseMethod("neighbor-joining")
	require.NoError(t, err)
	assert.Equal(t, MethodNJ, m)

	_, err = ParseMethod("wpgma")
	assert.Error(t, err)

	_, err = Build(mustMatrix(t, njLabels, njMatrix), Method(5))
	assert.Error(t, err)
}

func BenchmarkUPGMA(b *testing.B) {
	m, _ := NewMatrix(fitchLabels, fitchMatrix)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = UPGMA(m)
	}
}

func BenchmarkNeighborJoining(b *testing.B) {
	m, _ := NewMatrix(fitchLabels, fitchMatrix)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NeighborJoining(m)
	}
}
