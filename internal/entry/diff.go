package entry

import "reflect"

// Merge applies patch over a deep copy of data, recursing into nested maps
// field by field. A nil patch value only lands when the field already
// exists (an explicit clear); absent fields are never touched. The second
// return reports whether the merged view differs from data.
func Merge(data, patch map[string]any) (map[string]any, bool) {
	merged := deepCopy(data)
	mergeNested(merged, patch)
	return merged, !reflect.DeepEqual(merged, data)
}

func mergeNested(dst, patch map[string]any) {
	for key, val := range patch {
		if sub, ok := val.(map[string]any); ok {
			nested, ok := dst[key].(map[string]any)
			if !ok {
				nested = map[string]any{}
				dst[key] = nested
			}
			mergeNested(nested, sub)
			continue
		}
		if _, exists := dst[key]; val != nil || exists {
			dst[key] = val
		}
	}
}

func deepCopy(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = copyValue(val)
	}
	return dst
}

func copyValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return deepCopy(v)
	case []any:
		list := make([]any, len(v))
		for i, item := range v {
			list[i] = copyValue(item)
		}
		return list
	default:
		return v
	}
}
