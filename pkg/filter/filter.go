// Package filter provides dimension filter validation and normalization for
// EasyData grid requests.
//
// A Filter constrains one categorical dimension of a grid by explicit category
// codes, hierarchy levels, or descendant-inclusion flags. The server accepts a
// fixed set of field combinations; Validate enforces that grammar before a
// filter is allowed anywhere near the cache or the network.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidFilter is the base error for every malformed filter specification.
// All validation failures wrap it, so callers can match with errors.Is.
var ErrInvalidFilter = errors.New("invalid dimension filter")

// Filter is a single constraint on one grid dimension.
//
// A nil Codes or Levels slice means the field was not supplied; an empty
// non-nil slice means it was supplied empty. The distinction matters for
// canonical serialization only.
type Filter struct {
	// Dimension is the dimension identifier (d1..d7).
	Dimension string `json:"dimension"`

	// Codes are explicit category codes to select.
	Codes []string `json:"codes,omitempty"`

	// Levels are hierarchy depths to select.
	Levels []int `json:"levels,omitempty"`

	// Children selects the descendants of a single code.
	Children bool `json:"children,omitempty"`

	// ChildrenIncludeSelf selects a single code together with its descendants.
	ChildrenIncludeSelf bool `json:"children_include_self,omitempty"`
}

// Set is a resolved sequence of dimension filters. The EasyData wire format
// allows either a single filter object or an array of them; that union is
// resolved once, at the boundary, and everything downstream operates on a Set.
type Set []Filter

// NewSet builds a Set from one or more filters. It rejects an empty set but
// performs no per-filter validation; call Validate for that.
func NewSet(filters ...Filter) (Set, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("%w: at least one filter is required", ErrInvalidFilter)
	}
	return Set(filters), nil
}

// UnmarshalJSON accepts either a single filter object or an array of filter
// objects, mirroring the API's duck-typed input.
func (s *Set) UnmarshalJSON(data []byte) error {
	var many []Filter
	if err := json.Unmarshal(data, &many); err == nil {
		*s = Set(many)
		return nil
	}

	var one Filter
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("%w: expected a filter object or an array of filter objects", ErrInvalidFilter)
	}
	*s = Set{one}
	return nil
}
