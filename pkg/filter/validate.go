package filter

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validDimensions are the dimension identifiers the grid endpoints accept.
var validDimensions = []interface{}{"d1", "d2", "d3", "d4", "d5", "d6", "d7"}

// Validate checks a single filter against the server-side grammar.
//
// After the field checks, exactly one of five combinations must hold:
//
//  1. codes only
//  2. levels only
//  3. codes and levels
//  4. a single code with children
//  5. a single code with children_include_self
//
// Validate is a pure predicate; it has no side effects.
func (f Filter) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Dimension,
			validation.Required.Error("'dimension' field is required"),
			validation.In(validDimensions...).Error("must be one of d1, d2, d3, d4, d5, d6, d7"),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return f.validateShape()
}

func (f Filter) validateShape() error {
	codes := len(f.Codes)
	levels := len(f.Levels)
	anyFlag := f.Children || f.ChildrenIncludeSelf

	switch {
	case codes > 0 && levels == 0 && !anyFlag:
		return nil // codes only
	case codes == 0 && levels > 0 && !anyFlag:
		return nil // levels only
	case codes > 0 && levels > 0 && !anyFlag:
		return nil // codes and levels
	case codes == 1 && levels == 0 && f.Children && !f.ChildrenIncludeSelf:
		return nil // single code with children
	case codes == 1 && levels == 0 && !f.Children && f.ChildrenIncludeSelf:
		return nil // single code with children_include_self
	}

	if codes == 0 && levels == 0 && !anyFlag {
		return fmt.Errorf(
			"%w: at least one of 'codes', 'levels', 'children' or 'children_include_self' must be provided",
			ErrInvalidFilter)
	}

	return fmt.Errorf("%w: unsupported combination; valid patterns are: "+
		"codes only, levels only, codes and levels, "+
		"a single code with children=true, or a single code with children_include_self=true",
		ErrInvalidFilter)
}

// Validate checks every filter in the set. An empty set is invalid.
func (s Set) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: filter set cannot be empty", ErrInvalidFilter)
	}
	for i, f := range s {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	return nil
}
