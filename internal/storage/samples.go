package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/epid/internal/sim"
)

// Samples is a run as a table: one row per sample, first column time.
type Samples struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// NewSamples flattens a result into rows of time, states and controls. The
// last state has no control of its own and repeats the previous one.
func NewSamples(result *sim.Result, stateLabels, controlLabels []string) *Samples {
	s := &Samples{}
	if len(result.States) == 0 {
		return s
	}

	nx := len(result.States[0])
	nu := 0
	if len(result.Controls) > 0 {
		nu = len(result.Controls[0])
	}

	s.Columns = append(s.Columns, "time")
	s.Columns = append(s.Columns, labels(stateLabels, "x", nx)...)
	s.Columns = append(s.Columns, labels(controlLabels, "u", nu)...)

	s.Rows = make([][]float64, len(result.States))
	for i, x := range result.States {
		row := make([]float64, 0, 1+nx+nu)
		row = append(row, result.Times[i])
		row = append(row, x...)
		if nu > 0 {
			j := i
			if j >= len(result.Controls) {
				j = len(result.Controls) - 1
			}
			row = append(row, result.Controls[j]...)
		}
		s.Rows[i] = row
	}
	return s
}

func labels(given []string, prefix string, n int) []string {
	if len(given) == n {
		return given
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

// Column returns the named column, or nil.
func (s *Samples) Column(name string) []float64 {
	idx := -1
	for i, c := range s.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	col := make([]float64, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx < len(row) {
			col = append(col, row[idx])
		}
	}
	return col
}

func (s *Samples) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if len(s.Columns) > 0 {
		if err := cw.Write(s.Columns); err != nil {
			return err
		}
	}
	record := make([]string, 0, len(s.Columns))
	for _, row := range s.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type exportDoc struct {
	*RunMetadata
	*Samples
}

// ExportJSON writes the metadata and the sample table as one document.
func (s *Samples) ExportJSON(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDoc{RunMetadata: meta, Samples: s})
}

// Matrix returns the table as a rows x columns dense matrix.
func (s *Samples) Matrix() (*mat.Dense, error) {
	if len(s.Rows) == 0 || len(s.Columns) == 0 {
		return nil, fmt.Errorf("storage: no samples")
	}
	cols := len(s.Columns)
	data := make([]float64, 0, len(s.Rows)*cols)
	for i, row := range s.Rows {
		if len(row) != cols {
			return nil, fmt.Errorf("storage: row %d has %d values, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(s.Rows), cols, data), nil
}

// ExportNPY writes the table as a 2-D float64 .npy array. Column names are
// not part of the format; they are the CSV header.
func (s *Samples) ExportNPY(w io.Writer) error {
	m, err := s.Matrix()
	if err != nil {
		return err
	}
	return npyio.Write(w, m)
}
