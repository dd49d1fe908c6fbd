package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Key is a fingerprint over the values that define one EasyData request.
//
// The fingerprint is the MD5 hex digest of the stringified parts concatenated
// in call order with no separator. MD5 is used purely as a content
// fingerprint, not for security; it is kept so that keys stay byte-for-byte
// compatible with cache directories written by existing deployments.
//
// Known limitation, inherited deliberately: because parts are joined without
// a separator, distinct part tuples can collide (e.g. (1, "23") and (12, "3")).
// Callers disambiguate structurally by keeping a fixed tuple shape per
// endpoint, with values of distinct kinds in each position.
type Key struct {
	parts []string
	debug bool
}

// NewKey builds a key from the request-defining values, in call order.
func NewKey(parts ...any) Key {
	return Key{parts: stringify(parts)}
}

// NewDebugKey builds a debug key. Debug keys render as "debug_" plus the
// first 8 hex characters of the digest, keeping debug cache files
// distinguishable from production ones.
func NewDebugKey(parts ...any) Key {
	return Key{parts: stringify(parts), debug: true}
}

// String returns the fingerprint. It is deterministic for an identical part
// sequence and performs no I/O.
func (k Key) String() string {
	sum := md5.Sum([]byte(strings.Join(k.parts, "")))
	digest := hex.EncodeToString(sum[:])
	if k.debug {
		return "debug_" + digest[:8]
	}
	return digest
}

func stringify(parts []any) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = fmt.Sprint(p)
	}
	return out
}
