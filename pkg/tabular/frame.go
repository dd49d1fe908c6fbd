// Package tabular provides a lightweight column-ordered table for parsed
// EasyData payloads, with CSV and parquet decoding.
package tabular

import "sort"

// Frame is tabular data: named columns and row-major cells. A nil cell is a
// null value; a cell that decoded from an empty CSV field is also null.
type Frame struct {
	// Columns are the column names, in order.
	Columns []string

	// Cells holds one slice per row, aligned with Columns.
	Cells [][]any
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.Cells)
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.Columns)
}

// Column returns the values of the named column, or false if no such column
// exists.
func (f *Frame) Column(name string) ([]any, bool) {
	idx := -1
	for i, col := range f.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(f.Cells))
	for i, row := range f.Cells {
		values[i] = row[idx]
	}
	return values, true
}

// DropEmptyColumns removes every column whose value is null in all rows.
// Columns of an empty frame are kept.
func (f *Frame) DropEmptyColumns() {
	if len(f.Cells) == 0 {
		return
	}

	keep := make([]bool, len(f.Columns))
	for i := range f.Columns {
		for _, row := range f.Cells {
			if row[i] != nil {
				keep[i] = true
				break
			}
		}
	}

	var cols []string
	for i, col := range f.Columns {
		if keep[i] {
			cols = append(cols, col)
		}
	}
	for r, row := range f.Cells {
		var cells []any
		for i := range f.Columns {
			if keep[i] {
				cells = append(cells, row[i])
			}
		}
		f.Cells[r] = cells
	}
	f.Columns = cols
}

// DropNullRows removes every row containing at least one null cell.
func (f *Frame) DropNullRows() {
	var kept [][]any
	for _, row := range f.Cells {
		complete := true
		for _, cell := range row {
			if cell == nil {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	f.Cells = kept
}

// FromRecords builds a frame from decoded JSON objects. Column order is the
// sorted union of keys, since JSON object order is not preserved in Go maps.
func FromRecords(records []map[string]any) *Frame {
	seen := map[string]bool{}
	var cols []string
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)

	frame := &Frame{Columns: cols}
	for _, rec := range records {
		cells := make([]any, len(cols))
		for i, col := range cols {
			if v, ok := rec[col]; ok {
				cells[i] = v
			}
		}
		frame.Cells = append(frame.Cells, cells)
	}
	return frame
}
