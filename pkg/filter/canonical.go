package filter

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Canonical serializes the set to a deterministic compact string.
//
// Two semantically equal sets always produce byte-identical output regardless
// of filter order, code order or level order: codes are sorted
// lexicographically, levels ascending, filters by dimension, and each record
// is encoded with its keys in lexicographic order and no insignificant
// whitespace.
//
// The result is consumed only as an opaque component of a cache key; it is
// never parsed back. Canonical assumes the set already passed Validate and
// does not re-validate.
func (s Set) Canonical() string {
	norm := make([]Filter, len(s))
	for i, f := range s {
		g := f
		if len(f.Codes) > 0 {
			g.Codes = append([]string(nil), f.Codes...)
			sort.Strings(g.Codes)
		}
		if len(f.Levels) > 0 {
			g.Levels = append([]int(nil), f.Levels...)
			sort.Ints(g.Levels)
		}
		norm[i] = g
	}

	sort.SliceStable(norm, func(i, j int) bool {
		return norm[i].Dimension < norm[j].Dimension
	})

	var b strings.Builder
	b.WriteByte('[')
	for i := range norm {
		if i > 0 {
			b.WriteByte(',')
		}
		appendCanonical(&b, norm[i])
	}
	b.WriteByte(']')
	return b.String()
}

// appendCanonical encodes one filter with keys in lexicographic order:
// children, children_include_self, codes, dimension, levels. Unset slices and
// false flags are omitted. Encoding is hand-rolled because the field-presence
// semantics and stable key order cannot be expressed with struct marshalling.
func appendCanonical(b *strings.Builder, f Filter) {
	b.WriteByte('{')
	first := true

	field := func(key string) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteByte('"')
		b.WriteString(key)
		b.WriteString(`":`)
	}

	if f.Children {
		field("children")
		b.WriteString("true")
	}
	if f.ChildrenIncludeSelf {
		field("children_include_self")
		b.WriteString("true")
	}
	if f.Codes != nil {
		field("codes")
		b.WriteByte('[')
		for i, code := range f.Codes {
			if i > 0 {
				b.WriteByte(',')
			}
			quoted, _ := json.Marshal(code)
			b.Write(quoted)
		}
		b.WriteByte(']')
	}
	field("dimension")
	quoted, _ := json.Marshal(f.Dimension)
	b.Write(quoted)
	if f.Levels != nil {
		field("levels")
		b.WriteByte('[')
		for i, level := range f.Levels {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(level))
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
}
