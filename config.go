package envguard

import (
	"fmt"
	"sort"
	"strconv"
)

// Config is a validated configuration: declared field names mapped to
// their typed values.
type Config map[string]any

// Lookup returns the value for key.
func (c Config) Lookup(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// String returns the value for key formatted as a string, or "" if unset.
func (c Config) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(n, 10)
	case string:
		return n
	}
	return fmt.Sprintf("%v", v)
}

// Keys returns the keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings returns every value formatted as a string.
func (c Config) Strings() map[string]string {
	out := make(map[string]string, len(c))
	for k := range c {
		out[k] = c.String(k)
	}
	return out
}
