package cache

import "strings"

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key builds a cache key from plain string segments. Record kinds, method
// names, and identifiers are all simple strings here, so no reflection or
// serialization is involved; keys stay stable across processes.
func Key(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}
