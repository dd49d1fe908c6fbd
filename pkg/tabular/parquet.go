package tabular

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// FromParquet decodes a parquet payload into a frame. Column order follows
// the file schema; values missing from a row decode as null cells.
func FromParquet(r io.ReaderAt, size int64) (*Frame, error) {
	file, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	fields := file.Schema().Fields()
	cols := make([]string, len(fields))
	for i, field := range fields {
		cols[i] = field.Name()
	}

	rows, err := parquet.Read[any](r, size, file.Schema())
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	frame := &Frame{Columns: cols}
	for _, row := range rows {
		values, _ := row.(map[string]any)
		cells := make([]any, len(cols))
		for i, col := range cols {
			if v, ok := values[col]; ok {
				cells[i] = v
			}
		}
		frame.Cells = append(frame.Cells, cells)
	}
	return frame, nil
}
