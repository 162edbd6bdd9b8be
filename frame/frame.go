package frame

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Frame is an ordered table of string cells under a fixed column header.
type Frame struct {
	cols []string
	rows [][]string
	key  string // name of the key column, "" if not keyed
}

// New creates an empty Frame with the given column header.
func New(cols ...string) *Frame {
	header := make([]string, len(cols))
	copy(header, cols)
	return &Frame{cols: header}
}

// FromRecords builds a Frame from CSV-style records. The first record is the
// column header; data records whose arity does not match the header are
// rejected.
func FromRecords(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("frame: no header record")
	}

	f := New(records[0]...)
	for i, rec := range records[1:] {
		if err := f.AppendRow(rec...); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return f, nil
}

// AppendRow adds one row of cells. The cell count must match the header.
func (f *Frame) AppendRow(cells ...string) error {
	if len(cells) != len(f.cols) {
		return fmt.Errorf("frame: row has %d cells, header has %d columns", len(cells), len(f.cols))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	f.rows = append(f.rows, row)
	return nil
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.rows) }

// Columns returns a copy of the column header.
func (f *Frame) Columns() []string {
	cols := make([]string, len(f.cols))
	copy(cols, f.cols)
	return cols
}

// Key returns the name of the key column, or "" if the frame is not keyed.
func (f *Frame) Key() string { return f.key }

// Row returns the cells of row i. The returned slice must not be modified.
func (f *Frame) Row(i int) []string { return f.rows[i] }

// Col returns the cells of the named column in row order.
func (f *Frame) Col(name string) ([]string, bool) {
	idx := f.colIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[idx]
	}
	return out, true
}

// Value returns the cell at the row whose key column equals keyVal.
func (f *Frame) Value(keyVal, col string) (string, bool) {
	keyIdx := f.colIndex(f.key)
	colIdx := f.colIndex(col)
	if keyIdx < 0 || colIdx < 0 {
		return "", false
	}
	for _, row := range f.rows {
		if row[keyIdx] == keyVal {
			return row[colIdx], true
		}
	}
	return "", false
}

// Select returns a new Frame restricted to the named columns, in the given
// order.
func (f *Frame) Select(cols []string) (*Frame, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = f.colIndex(c)
		if idx[i] < 0 {
			return nil, fmt.Errorf("frame: unknown column %q", c)
		}
	}

	out := New(cols...)
	out.key = keyIfPresent(f.key, cols)
	for _, row := range f.rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// Rename returns a new Frame with columns renamed per the given mapping.
// Columns absent from the mapping keep their name.
func (f *Frame) Rename(renames map[string]string) *Frame {
	cols := f.Columns()
	for i, c := range cols {
		if to, ok := renames[c]; ok {
			cols[i] = to
		}
	}

	out := &Frame{cols: cols, rows: f.rows}
	out.key = f.key
	if to, ok := renames[f.key]; ok {
		out.key = to
	}
	return out
}

// LeftJoin joins other onto f by the named column, preserving f's row order
// and cardinality. Rows of f without a match in other get "" cells for
// other's columns. When other holds duplicate keys the first match wins.
func (f *Frame) LeftJoin(other *Frame, on string) (*Frame, error) {
	leftIdx := f.colIndex(on)
	rightIdx := other.colIndex(on)
	if leftIdx < 0 {
		return nil, fmt.Errorf("frame: join column %q missing from left frame", on)
	}
	if rightIdx < 0 {
		return nil, fmt.Errorf("frame: join column %q missing from right frame", on)
	}

	lookup := make(map[string][]string, len(other.rows))
	for _, row := range other.rows {
		if _, seen := lookup[row[rightIdx]]; !seen {
			lookup[row[rightIdx]] = row
		}
	}

	cols := f.Columns()
	var rightCols []int // indices of other's non-join columns
	for i, c := range other.cols {
		if i == rightIdx {
			continue
		}
		cols = append(cols, c)
		rightCols = append(rightCols, i)
	}

	out := &Frame{cols: cols, key: f.key}
	for _, row := range f.rows {
		cells := make([]string, 0, len(cols))
		cells = append(cells, row...)
		match := lookup[row[leftIdx]]
		for _, i := range rightCols {
			if match == nil {
				cells = append(cells, "")
			} else {
				cells = append(cells, match[i])
			}
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// SetKey returns a new Frame keyed by the named column.
func (f *Frame) SetKey(col string) (*Frame, error) {
	if f.colIndex(col) < 0 {
		return nil, fmt.Errorf("frame: unknown column %q", col)
	}
	return &Frame{cols: f.cols, rows: f.rows, key: col}, nil
}

// DropAllEmpty returns a new Frame without the rows whose every non-key cell
// is empty. Rows with at least one present value are retained.
func (f *Frame) DropAllEmpty() *Frame {
	keyIdx := f.colIndex(f.key)

	out := &Frame{cols: f.cols, key: f.key}
	for _, row := range f.rows {
		empty := true
		for i, cell := range row {
			if i == keyIdx {
				continue
			}
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Records returns the frame as CSV-style records, header first.
func (f *Frame) Records() [][]string {
	records := make([][]string, 0, len(f.rows)+1)
	records = append(records, f.Columns())
	for _, row := range f.rows {
		rec := make([]string, len(row))
		copy(rec, row)
		records = append(records, rec)
	}
	return records
}

// WriteCSV writes the frame to w as CSV, header row first.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(f.Records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func (f *Frame) colIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

func keyIfPresent(key string, cols []string) string {
	for _, c := range cols {
		if c == key {
			return key
		}
	}
	return ""
}
