package cluster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a labelled distance matrix. The first record holds the
// taxon labels. Every following record holds one row of distances,
// optionally preceded by the row's label, which must then match the
// header.
func ReadCSV(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read distance matrix: %w", err)
	}
	if len(records) == 0 {
		return nil, &DegenerateInputError{Reason: "empty distance matrix"}
	}

	labels := records[0]
	if len(labels) > 0 && strings.TrimSpace(labels[0]) == "" {
		labels = labels[1:]
	}
	for i := range labels {
		labels[i] = strings.TrimSpace(labels[i])
	}

	values := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) == len(labels)+1 {
			if i < len(labels) && strings.TrimSpace(rec[0]) != labels[i] {
				return nil, fmt.Errorf("row %d is labelled %q, expected %q", i+1, rec[0], labels[i])
			}
			rec = rec[1:]
		}

		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			row[j] = v
		}
		values = append(values, row)
	}

	return NewMatrix(labels, values)
}

// WriteCSV writes m in the layout ReadCSV accepts, with row labels.
func (m *Matrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.labels...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, label := range m.labels {
		rec := make([]string, 0, m.Len()+1)
		rec = append(rec, label)
		for j := 0; j < m.Len(); j++ {
			rec = append(rec, strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
