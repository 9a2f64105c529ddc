package codec

import (
	"fmt"
	"reflect"
)

// normalize rewrites a decoder's generic shapes into the canonical form:
// string-keyed maps, []any lists, and scalars. Pickle and CBOR hand back
// map[any]any; msgpack can produce narrow integer types; pickle wraps
// sequences in its own tuple type. Numbers are left as whatever width the
// decoder chose since document readers widen on access.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out
	default:
		return normalizeReflect(v)
	}
}

// normalizeReflect catches shapes hidden behind named types, like pickle
// tuples ([]any with a defined type) or typed maps.
func normalizeReflect(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}

		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}

		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}

		return out
	default:
		return v
	}
}
