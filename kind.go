package chunkmerge

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	gyaml "github.com/goccy/go-yaml"
)

// Kind classifies a value for merging.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindMapping
	KindSequence
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf reports the kind of v.
func KindOf(v any) Kind {
	switch n := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case *big.Int:
		if n == nil {
			return KindOther
		}
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case gyaml.MapSlice, map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindOther
	}
}

// sameType reports whether a and b share a runtime type for merge purposes.
// Integer widths and the two mapping representations are not distinguished.
func sameType(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	if ka == KindOther {
		return reflect.TypeOf(a) == reflect.TypeOf(b)
	}
	return true
}

// typeName describes v in error messages.
func typeName(v any) string {
	if k := KindOf(v); k != KindOther {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}

// equal compares two values of the same kind.
func equal(a, b any) bool {
	switch KindOf(a) {
	case KindNull:
		return b == nil
	case KindBool:
		bb, ok := b.(bool)
		return ok && a.(bool) == bb
	case KindInt:
		ai, aok := asBigInt(a)
		bi, bok := asBigInt(b)
		return aok && bok && ai.Cmp(bi) == 0
	case KindFloat:
		af, aok := asFloat64(a)
		bf, bok := asFloat64(b)
		return aok && bok && af == bf
	case KindString:
		bs, ok := b.(string)
		return ok && a.(string) == bs
	case KindMapping, KindSequence, KindOther:
		return reflect.DeepEqual(a, b)
	}
	return false
}

// asBigInt returns v as an exact integer. The result must not be modified.
func asBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case *big.Int:
		return n, n != nil
	}
	return nil, false
}

// addInts adds two integers without overflow. The sum keeps the operands' Go
// type when they share one and it fits; otherwise it is the first of int64,
// uint64 and *big.Int that holds it.
func addInts(a, b any) any {
	x, _ := asBigInt(a)
	y, _ := asBigInt(b)
	sum := new(big.Int).Add(x, y)
	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		if v, ok := intAs(sum, a); ok {
			return v
		}
	}
	switch {
	case sum.IsInt64():
		return sum.Int64()
	case sum.IsUint64():
		return sum.Uint64()
	}
	return sum
}

// intAs converts n to the Go type of like when it fits.
func intAs(n *big.Int, like any) (any, bool) {
	if _, ok := like.(*big.Int); ok {
		return n, true
	}
	if n.IsInt64() {
		i := n.Int64()
		switch like.(type) {
		case int:
			if i >= math.MinInt && i <= math.MaxInt {
				return int(i), true
			}
		case int8:
			if i >= math.MinInt8 && i <= math.MaxInt8 {
				return int8(i), true
			}
		case int16:
			if i >= math.MinInt16 && i <= math.MaxInt16 {
				return int16(i), true
			}
		case int32:
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return int32(i), true
			}
		case int64:
			return i, true
		}
	}
	if n.IsUint64() {
		u := n.Uint64()
		switch like.(type) {
		case uint:
			if u <= math.MaxUint {
				return uint(u), true
			}
		case uint8:
			if u <= math.MaxUint8 {
				return uint8(u), true
			}
		case uint16:
			if u <= math.MaxUint16 {
				return uint16(u), true
			}
		case uint32:
			if u <= math.MaxUint32 {
				return uint32(u), true
			}
		case uint64:
			return u, true
		}
	}
	return nil, false
}

func asFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}
