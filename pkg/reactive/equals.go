package reactive

import "reflect"

// defaultEquals provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	switch x := av.(type) {
	case nil:
		return bv == nil
	case int:
		y, ok := bv.(int)
		return ok && x == y
	case int64:
		y, ok := bv.(int64)
		return ok && x == y
	case int32:
		y, ok := bv.(int32)
		return ok && x == y
	case uint:
		y, ok := bv.(uint)
		return ok && x == y
	case uint64:
		y, ok := bv.(uint64)
		return ok && x == y
	case float64:
		y, ok := bv.(float64)
		return ok && x == y
	case float32:
		y, ok := bv.(float32)
		return ok && x == y
	case string:
		y, ok := bv.(string)
		return ok && x == y
	case bool:
		y, ok := bv.(bool)
		return ok && x == y
	default:
		// Slices, maps, structs (records included) and everything else.
		return reflect.DeepEqual(a, b)
	}
}
