package filter

import (
	"errors"
	"strings"
	"testing"
)

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{
			name:   "codes only",
			filter: Filter{Dimension: "d1", Codes: []string{"X"}},
		},
		{
			name:   "levels only",
			filter: Filter{Dimension: "d1", Levels: []int{1}},
		},
		{
			name:   "codes and levels",
			filter: Filter{Dimension: "d1", Codes: []string{"X"}, Levels: []int{1}},
		},
		{
			name:   "single code with children",
			filter: Filter{Dimension: "d1", Codes: []string{"X"}, Children: true},
		},
		{
			name:   "single code with children_include_self",
			filter: Filter{Dimension: "d1", Codes: []string{"X"}, ChildrenIncludeSelf: true},
		},
		{
			name:    "no criteria",
			filter:  Filter{Dimension: "d1"},
			wantErr: true,
		},
		{
			name:    "multiple codes with children flag",
			filter:  Filter{Dimension: "d1", Codes: []string{"X", "Y"}, Children: true},
			wantErr: true,
		},
		{
			name:    "both children flags",
			filter:  Filter{Dimension: "d1", Codes: []string{"X"}, Children: true, ChildrenIncludeSelf: true},
			wantErr: true,
		},
		{
			name:    "levels with children flag",
			filter:  Filter{Dimension: "d2", Levels: []int{1}, Children: true},
			wantErr: true,
		},
		{
			name:    "invalid dimension",
			filter:  Filter{Dimension: "d9", Levels: []int{1}},
			wantErr: true,
		},
		{
			name:    "missing dimension",
			filter:  Filter{Codes: []string{"X"}},
			wantErr: true,
		},
		{
			name:   "highest valid dimension",
			filter: Filter{Dimension: "d7", Codes: []string{"X"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidFilter", err)
			}
		})
	}
}

func TestFilter_Validate_NoCriteriaMessage(t *testing.T) {
	err := Filter{Dimension: "d1"}.Validate()
	if err == nil {
		t.Fatal("expected error for filter without criteria")
	}
	want := "at least one of"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error = %q, want it to mention %q", got, want)
	}
}

func TestSet_Validate(t *testing.T) {
	valid := Filter{Dimension: "d1", Codes: []string{"X"}}
	invalid := Filter{Dimension: "d1"}

	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{name: "single valid filter", set: Set{valid}},
		{name: "multiple valid filters", set: Set{valid, {Dimension: "d2", Levels: []int{1}}}},
		{name: "empty set", set: Set{}, wantErr: true},
		{name: "nil set", set: nil, wantErr: true},
		{name: "one invalid filter", set: Set{valid, invalid}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSet(t *testing.T) {
	if _, err := NewSet(); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("NewSet() error = %v, want ErrInvalidFilter", err)
	}

	set, err := NewSet(Filter{Dimension: "d1", Codes: []string{"X"}})
	if err != nil {
		t.Fatalf("NewSet() failed: %v", err)
	}
	if len(set) != 1 {
		t.Errorf("NewSet() len = %d, want 1", len(set))
	}
}

func TestSet_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "single object",
			input:   `{"dimension":"d1","codes":["X"]}`,
			wantLen: 1,
		},
		{
			name:    "array of objects",
			input:   `[{"dimension":"d1","codes":["X"]},{"dimension":"d2","levels":[1,2]}]`,
			wantLen: 2,
		},
		{
			name:    "neither object nor array",
			input:   `"d1"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set Set
			err := set.UnmarshalJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(set) != tt.wantLen {
				t.Errorf("UnmarshalJSON() len = %d, want %d", len(set), tt.wantLen)
			}
		})
	}
}
