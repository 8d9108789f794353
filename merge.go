// Package chunkmerge deep-merges decoded, dynamically-typed values. It is used
// to reassemble streamed fragments, such as tool-call chunks, into one value.
package chunkmerge

import (
	"fmt"
	"slices"

	gyaml "github.com/goccy/go-yaml"
)

// Fields that mark a sequence element as a streamed chunk.
const (
	indexKey          = "index"
	typeKey           = "type"
	nameKey           = "name"
	idKey             = "id"
	toolCallChunkType = "tool_call_chunk"
)

// MergeMaps merges others into a copy of left, in order, key by key.
//
// A null value never replaces a present one and is replaced by any non-null
// value. Strings are concatenated, mappings and sequences merge recursively,
// unequal integers are added and equal values are kept. Any other combination
// fails with a *TypeMismatchError or *UnsupportedTypeError. left is not modified.
//
// Integers of any Go width, and *big.Int, merge with each other. A sum keeps
// the operands' type when both have the same one and the result fits in it;
// otherwise it is an int64, a uint64 or, past both ranges, a *big.Int.
func MergeMaps(left gyaml.MapSlice, others ...gyaml.MapSlice) (gyaml.MapSlice, error) {
	return mergeMaps(nil, left, others...)
}

// MergeLists merges others into a copy of left, in order. Nil lists are
// skipped; the result is nil only when every argument is nil.
//
// Elements that are mappings with an integer "index" field are merged into the
// first existing element with the same index. A "tool_call_chunk" element with
// no match and no name or id is folded into the most recent identified tool
// call chunk. Everything else is appended.
func MergeLists(left []any, others ...[]any) ([]any, error) {
	return mergeLists(nil, left, others...)
}

// MergeObj merges two values of the same type. Null is absorbed, strings are
// concatenated, mappings and sequences are merged, and equal values are kept.
func MergeObj(left, right any) (any, error) {
	if left == nil || right == nil {
		if left != nil {
			return left, nil
		}
		return right, nil
	}
	if !sameType(left, right) {
		return nil, &TypeMismatchError{Left: typeName(left), Right: typeName(right)}
	}
	switch KindOf(left) {
	case KindString:
		return left.(string) + right.(string), nil
	case KindMapping:
		m, err := MergeMaps(toMapSlice(left), toMapSlice(right))
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindSequence:
		l, err := MergeLists(left.([]any), right.([]any))
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	if equal(left, right) {
		return left, nil
	}
	return nil, &IncompatibleValuesError{Left: left, Right: right}
}

func mergeMaps(path []string, left gyaml.MapSlice, others ...gyaml.MapSlice) (gyaml.MapSlice, error) {
	merged := slices.Clone(left)
	for _, right := range others {
		for _, item := range right {
			k := keyString(item.Key)
			i := indexOfKey(merged, item.Key)
			switch {
			case i < 0:
				merged = append(merged, gyaml.MapItem{Key: item.Key, Value: item.Value})
			case merged[i].Value == nil:
				merged[i].Value = item.Value
			case item.Value == nil:
				// null never overrides
			default:
				v, err := mergeValue(path, k, merged[i].Value, item.Value)
				if err != nil {
					return nil, err
				}
				merged[i].Value = v
			}
		}
	}
	return merged, nil
}

// mergeValue merges two non-null values found under key k.
func mergeValue(path []string, k string, cur, v any) (any, error) {
	if !sameType(cur, v) {
		return nil, &TypeMismatchError{Path: childPath(path, k), Key: k, Left: typeName(cur), Right: typeName(v)}
	}
	switch KindOf(cur) {
	case KindString:
		return cur.(string) + v.(string), nil
	case KindMapping:
		m, err := mergeMaps(childPath(path, k), toMapSlice(cur), toMapSlice(v))
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindSequence:
		l, err := mergeLists(childPath(path, k), cur.([]any), v.([]any))
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	if equal(cur, v) {
		return cur, nil
	}
	if KindOf(cur) == KindInt {
		return addInts(cur, v), nil
	}
	return nil, &UnsupportedTypeError{Path: childPath(path, k), Key: k, Type: typeName(cur)}
}

func mergeLists(path []string, left []any, others ...[]any) ([]any, error) {
	merged := slices.Clone(left)
	for _, other := range others {
		if other == nil {
			continue
		}
		if merged == nil {
			merged = slices.Clone(other)
			continue
		}
		for _, e := range other {
			var err error
			merged, err = mergeElement(path, merged, e)
			if err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// mergeElement folds e into the accumulator merged, which it owns.
func mergeElement(path []string, merged []any, e any) ([]any, error) {
	if KindOf(e) != KindMapping {
		return append(merged, e), nil
	}
	idx, ok := field(e, indexKey)
	if !ok || KindOf(idx) != KindInt {
		return append(merged, e), nil
	}

	for i, cur := range merged {
		if KindOf(cur) != KindMapping {
			continue
		}
		if ci, ok := field(cur, indexKey); ok && KindOf(ci) == KindInt && equal(ci, idx) {
			return mergeChunkAt(path, merged, i, e)
		}
	}

	// Continuation fragments from some producers reuse or skip indices and
	// carry neither name nor id.
	if fieldEquals(e, typeKey, toolCallChunkType) && fieldIsNull(e, nameKey) && fieldIsNull(e, idKey) && len(merged) > 0 {
		for i := len(merged) - 1; i >= 0; i-- {
			cur := merged[i]
			if KindOf(cur) == KindMapping && fieldEquals(cur, typeKey, toolCallChunkType) &&
				(!fieldIsNull(cur, nameKey) || !fieldIsNull(cur, idKey)) {
				return mergeChunkAt(path, merged, i, e)
			}
		}
	}
	return append(merged, e), nil
}

// mergeChunkAt merges chunk e into merged[i]. The chunk's "type" field is left
// out of the merge.
func mergeChunkAt(path []string, merged []any, i int, e any) ([]any, error) {
	m, err := mergeMaps(childPath(path, fmt.Sprintf("[%d]", i)), toMapSlice(merged[i]), withoutKey(toMapSlice(e), typeKey))
	if err != nil {
		return nil, err
	}
	merged[i] = m
	return merged, nil
}

func childPath(path []string, seg string) []string {
	return append(path[:len(path):len(path)], seg)
}
