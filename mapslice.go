package chunkmerge

import (
	"fmt"
	"maps"
	"slices"

	gyaml "github.com/goccy/go-yaml"
)

// toMapSlice returns v as an ordered mapping. map[string]any is converted
// with sorted keys so output is deterministic.
func toMapSlice(v any) gyaml.MapSlice {
	switch m := v.(type) {
	case gyaml.MapSlice:
		return m
	case map[string]any:
		ms := make(gyaml.MapSlice, 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			ms = append(ms, gyaml.MapItem{Key: k, Value: m[k]})
		}
		return ms
	}
	return nil
}

func indexOfKey(ms gyaml.MapSlice, key any) int {
	for i := range ms {
		if keysEqual(ms[i].Key, key) {
			return i
		}
	}
	return -1
}

// field returns the value under key in a mapping value and whether it exists.
func field(v any, key string) (any, bool) {
	switch m := v.(type) {
	case gyaml.MapSlice:
		if i := indexOfKey(m, key); i >= 0 {
			return m[i].Value, true
		}
	case map[string]any:
		fv, ok := m[key]
		return fv, ok
	}
	return nil, false
}

// fieldIsNull reports whether key is absent or null.
func fieldIsNull(v any, key string) bool {
	fv, _ := field(v, key)
	return fv == nil
}

func fieldEquals(v any, key, want string) bool {
	fv, _ := field(v, key)
	s, ok := fv.(string)
	return ok && s == want
}

// withoutKey returns a copy of ms without key, or ms itself when key is absent.
func withoutKey(ms gyaml.MapSlice, key string) gyaml.MapSlice {
	if indexOfKey(ms, key) < 0 {
		return ms
	}
	out := make(gyaml.MapSlice, 0, len(ms)-1)
	for _, it := range ms {
		if !keysEqual(it.Key, key) {
			out = append(out, it)
		}
	}
	return out
}

// keyString names a key in errors and paths.
func keyString(k any) string {
	switch kk := k.(type) {
	case string:
		return kk
	case fmt.Stringer:
		return kk.String()
	default:
		return fmt.Sprint(kk)
	}
}

// keysEqual compares keys by type and value, so the integer key 1 and the
// string key "1" are distinct.
func keysEqual(a, b any) bool {
	return sameType(a, b) && equal(a, b)
}
