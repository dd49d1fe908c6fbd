package tabular

import (
	"reflect"
	"testing"
)

func TestFrame_DropEmptyColumns(t *testing.T) {
	frame := &Frame{
		Columns: []string{"a", "b", "c"},
		Cells: [][]any{
			{"1", nil, nil},
			{"2", nil, "x"},
		},
	}

	frame.DropEmptyColumns()

	wantCols := []string{"a", "c"}
	if !reflect.DeepEqual(frame.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", frame.Columns, wantCols)
	}
	wantCells := [][]any{
		{"1", nil},
		{"2", "x"},
	}
	if !reflect.DeepEqual(frame.Cells, wantCells) {
		t.Errorf("Cells = %v, want %v", frame.Cells, wantCells)
	}
}

func TestFrame_DropEmptyColumns_NoEmptyColumns(t *testing.T) {
	frame := &Frame{
		Columns: []string{"a", "b"},
		Cells:   [][]any{{"1", "2"}},
	}

	frame.DropEmptyColumns()

	if len(frame.Columns) != 2 {
		t.Errorf("Columns = %v, want both kept", frame.Columns)
	}
}

func TestFrame_DropEmptyColumns_EmptyFrame(t *testing.T) {
	frame := &Frame{Columns: []string{"a", "b"}}

	frame.DropEmptyColumns()

	if len(frame.Columns) != 2 {
		t.Errorf("Columns = %v, want kept for frame without rows", frame.Columns)
	}
}

func TestFrame_DropNullRows(t *testing.T) {
	frame := &Frame{
		Columns: []string{"a", "b"},
		Cells: [][]any{
			{"1", "2"},
			{"3", nil},
			{nil, nil},
			{"4", "5"},
		},
	}

	frame.DropNullRows()

	want := [][]any{
		{"1", "2"},
		{"4", "5"},
	}
	if !reflect.DeepEqual(frame.Cells, want) {
		t.Errorf("Cells = %v, want %v", frame.Cells, want)
	}
}

func TestFrame_Column(t *testing.T) {
	frame := &Frame{
		Columns: []string{"a", "b"},
		Cells: [][]any{
			{"1", "2"},
			{"3", "4"},
		},
	}

	values, ok := frame.Column("b")
	if !ok {
		t.Fatal("Column(b) not found")
	}
	if !reflect.DeepEqual(values, []any{"2", "4"}) {
		t.Errorf("Column(b) = %v", values)
	}

	if _, ok := frame.Column("missing"); ok {
		t.Error("Column(missing) should not be found")
	}
}

func TestFromRecords(t *testing.T) {
	records := []map[string]any{
		{"title": "GDP", "pk": float64(1)},
		{"title": "CPI", "pk": float64(2), "owner": "alice"},
	}

	frame := FromRecords(records)

	wantCols := []string{"owner", "pk", "title"}
	if !reflect.DeepEqual(frame.Columns, wantCols) {
		t.Fatalf("Columns = %v, want %v", frame.Columns, wantCols)
	}
	if frame.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", frame.NumRows())
	}
	// First record has no owner; must decode as null.
	if frame.Cells[0][0] != nil {
		t.Errorf("Cells[0][0] = %v, want nil", frame.Cells[0][0])
	}
	if frame.Cells[1][0] != "alice" {
		t.Errorf("Cells[1][0] = %v, want alice", frame.Cells[1][0])
	}
}
