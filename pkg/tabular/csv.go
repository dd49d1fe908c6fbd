package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// FromCSV decodes delimited text into a frame. The first record is the
// header; empty fields decode as null cells.
func FromCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return &Frame{}, nil
	}

	frame := &Frame{Columns: records[0]}
	for _, record := range records[1:] {
		cells := make([]any, len(frame.Columns))
		for i := range frame.Columns {
			if i < len(record) && record[i] != "" {
				cells[i] = record[i]
			}
		}
		frame.Cells = append(frame.Cells, cells)
	}
	return frame, nil
}

// WriteCSV writes the frame as CSV with a header row. Null cells render as
// empty fields.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	for _, row := range f.Cells {
		fields := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				fields[i] = fmt.Sprint(cell)
			}
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
