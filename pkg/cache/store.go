package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/quantecresearch/easydata-go/pkg/tabular"
)

// Store is a flat-file cache for raw EasyData responses.
//
// Entries live at <root>/<key>.<ext> where ext is the wire format; file
// existence is the hit signal. There is no TTL, no eviction and no locking:
// the store is an optimization layer, and concurrent processes pointing at
// the same root may race. Read faults collapse to a miss and write faults are
// logged and swallowed, so a broken cache can never break the primary
// data-fetch path.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir, creating the directory (including
// parents) if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file location for a key and extension.
func (s *Store) Path(key, ext string) string {
	return filepath.Join(s.root, key+"."+ext)
}

// ReadText returns the raw text payload for a csv read, or false on miss.
func (s *Store) ReadText(key string, apiFormat Format) (string, bool) {
	data, ok := s.readFile(key, FormatCSV, apiFormat)
	if !ok {
		return "", false
	}
	return string(data), true
}

// ReadJSON returns the parsed payload for a json read. Malformed content is
// a miss, not an error.
func (s *Store) ReadJSON(key string, apiFormat Format) (any, bool) {
	data, ok := s.readFile(key, FormatJSON, apiFormat)
	if !ok {
		return nil, false
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		s.fault("read", key, err)
		return nil, false
	}
	return parsed, true
}

// ReadBytes returns the raw binary payload for a parquet read.
func (s *Store) ReadBytes(key string, apiFormat Format) ([]byte, bool) {
	return s.readFile(key, FormatParquet, apiFormat)
}

// ReadFrame loads the cached payload as tabular data, decoding parquet when
// the API format says so and delimited text otherwise, and drops columns that
// are null in every row. Any parse failure is a miss.
func (s *Store) ReadFrame(key string, apiFormat Format) (*tabular.Frame, bool) {
	data, ok := s.readFile(key, FormatFrame, apiFormat)
	if !ok {
		return nil, false
	}

	var (
		frame *tabular.Frame
		err   error
	)
	if apiFormat.IsParquet() {
		frame, err = tabular.FromParquet(bytes.NewReader(data), int64(len(data)))
	} else {
		frame, err = tabular.FromCSV(bytes.NewReader(data))
	}
	if err != nil {
		s.fault("read", key, err)
		return nil, false
	}

	frame.DropEmptyColumns()
	return frame, true
}

// Read dispatches on the return format for format-driven call sites. Unknown
// return formats are a miss.
func (s *Store) Read(key string, returnFormat, apiFormat Format) (any, bool) {
	switch returnFormat {
	case FormatCSV:
		return asAny(s.ReadText(key, apiFormat))
	case FormatJSON:
		return s.ReadJSON(key, apiFormat)
	case FormatParquet:
		return asAny(s.ReadBytes(key, apiFormat))
	case FormatFrame:
		return asAny(s.ReadFrame(key, apiFormat))
	}
	return nil, false
}

// Write persists a payload verbatim under the key and wire format. Caching is
// best-effort: every failure is logged at debug level and swallowed so the
// caller's primary operation is never aborted.
func (s *Store) Write(key string, format Format, payload []byte) {
	path := s.Path(key, string(format))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.fault("write", key, err)
		return
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		s.fault("write", key, err)
		return
	}
	log.Debug().
		Str("key", key).
		Str("format", string(format)).
		Int("bytes", len(payload)).
		Msg("Cached response")
}

// Clear deletes every regular file beneath the root and returns how many were
// deleted. Per-file failures are logged and skipped. Emptied subdirectories
// are removed afterwards, deepest first, best-effort; directory removals are
// not counted. A missing root is a no-op.
func (s *Store) Clear() int {
	if _, err := os.Stat(s.root); err != nil {
		return 0
	}

	deleted := 0
	var dirs []string
	_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != s.root {
				dirs = append(dirs, path)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := os.Remove(path); err != nil {
			s.fault("clear", filepath.Base(path), err)
			return nil
		}
		deleted++
		return nil
	})

	// Deepest paths sort last lexicographically within their parent tree.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		_ = os.Remove(dir)
	}

	CacheFilesDeleted.Add(float64(deleted))
	return deleted
}

// readFile resolves the path and reads the entry. A missing file is a plain
// miss; any other fault is counted and also collapses to a miss.
func (s *Store) readFile(key string, returnFormat, apiFormat Format) ([]byte, bool) {
	path := s.Path(key, resolveExt(returnFormat, apiFormat))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			CacheMisses.Inc()
		} else {
			s.fault("read", key, err)
		}
		return nil, false
	}

	CacheHits.WithLabelValues("disk").Inc()
	log.Debug().Str("path", path).Msg("Loaded from cache")
	return data, true
}

func (s *Store) fault(op, key string, err error) {
	CacheErrors.WithLabelValues(op).Inc()
	log.Debug().Err(err).Str("key", key).Str("operation", op).Msg("Cache operation failed")
}

func asAny[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}
