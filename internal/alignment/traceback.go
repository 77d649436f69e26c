package alignment

// Endpoints returns the cells traceback starts from. Global alignments end
// in the bottom-right corner. Local alignments end at every cell holding
// the optimum, in row-major order; a zero optimum yields none.
func (r *Result) Endpoints() []Cell {
	rows, cols := len(r.DP), len(r.DP[0])
	if r.Mode == Global {
		return []Cell{{Col: cols - 1, Row: rows - 1}}
	}

	if r.Optimal <= 0 {
		return nil
	}
	var ends []Cell
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if r.DP[j][i] == r.Optimal {
				ends = append(ends, Cell{Col: i, Row: j})
			}
		}
	}
	return ends
}

// Alignments enumerates every co-optimal alignment.
func (r *Result) Alignments() []*Alignment {
	return r.Enumerate(0)
}

// Enumerate walks the direction grid depth-first from each endpoint,
// following moves in Left, Up, Diagonal order, and stops after limit
// alignments. A limit of zero or less means no limit. Identical text
// pairs reached through different paths are all returned.
func (r *Result) Enumerate(limit int) []*Alignment {
	t := &tracer{result: r, limit: limit}
	for _, end := range r.Endpoints() {
		t.end = end
		if !t.walk(end.Col, end.Row) {
			break
		}
	}
	if t.out == nil {
		return []*Alignment{}
	}
	return t.out
}

// First returns the first alignment in enumeration order, or nil when
// there is none.
func (r *Result) First() *Alignment {
	if out := r.Enumerate(1); len(out) > 0 {
		return out[0]
	}
	return nil
}

type tracer struct {
	result *Result
	limit  int
	end    Cell
	tags   []Direction
	cells  []Cell
	out    []*Alignment
}

func (t *tracer) terminal(col, row int) bool {
	if t.result.Mode == Global {
		return col == 0 && row == 0
	}
	return t.result.DP[row][col] == 0
}

// walk reports false once the limit is reached.
func (t *tracer) walk(col, row int) bool {
	if t.terminal(col, row) {
		t.out = append(t.out, t.emit(col, row))
		return t.limit <= 0 || len(t.out) < t.limit
	}

	dir := t.result.Direction[row][col]
	for _, m := range moves {
		if !dir.Has(m.tag) {
			continue
		}
		t.tags = append(t.tags, m.tag)
		t.cells = append(t.cells, Cell{Col: col, Row: row})
		ok := t.walk(col+m.dCol, row+m.dRow)
		t.tags = t.tags[:len(t.tags)-1]
		t.cells = t.cells[:len(t.cells)-1]
		if !ok {
			return false
		}
	}
	return true
}

// emit replays the collected moves forward from the terminal cell.
func (t *tracer) emit(col, row int) *Alignment {
	h, v := t.result.Horizontal, t.result.Vertical
	n := len(t.tags)
	hb := make([]byte, 0, n)
	vb := make([]byte, 0, n)

	hi, vi := col, row
	for k := n - 1; k >= 0; k-- {
		switch t.tags[k] {
		case Diagonal:
			hb = append(hb, h[hi])
			vb = append(vb, v[vi])
			hi++
			vi++
		case Left:
			hb = append(hb, h[hi])
			vb = append(vb, '-')
			hi++
		case Up:
			hb = append(hb, '-')
			vb = append(vb, v[vi])
			vi++
		}
	}

	path := make([]Cell, n)
	copy(path, t.cells)

	a := newAlignment(string(hb), string(vb), t.result.Optimal, t.result.Mode)
	a.Start1, a.End1 = col, t.end.Col
	a.Start2, a.End2 = row, t.end.Row
	a.Path = path
	return a
}
