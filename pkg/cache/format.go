package cache

import "strings"

// Format identifies how a payload is encoded on the wire or requested back.
type Format string

const (
	// FormatCSV is comma-separated text.
	FormatCSV Format = "csv"

	// FormatJSON is JSON text.
	FormatJSON Format = "json"

	// FormatParquet is the columnar binary format.
	FormatParquet Format = "parquet"

	// FormatFrame requests a parsed tabular result rather than a raw payload.
	// It is a return format only; cache files are never stored under it.
	FormatFrame Format = "dataframe"
)

// IsWireFormat reports whether f is a format payloads are stored under.
func (f Format) IsWireFormat() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatParquet:
		return true
	}
	return false
}

// IsParquet reports whether f names the parquet format, case-insensitively.
func (f Format) IsParquet() bool {
	return strings.EqualFold(string(f), string(FormatParquet))
}

// resolveExt picks the file extension for a read: the API format when the
// caller declared one, the return format otherwise.
func resolveExt(returnFormat, apiFormat Format) string {
	if apiFormat != "" {
		return string(apiFormat)
	}
	return string(returnFormat)
}
