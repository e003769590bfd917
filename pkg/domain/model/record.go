package model

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Records from the marketplace data API are flat JSON objects: typed
// attributes and free-form question answers share one namespace. The helpers
// below map between that shape and a struct plus an Answers map.

func flattenRecord(known any, answers map[string]any) ([]byte, error) {
	raw, err := json.Marshal(known)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal record")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, goerr.Wrap(err, "failed to re-read record")
	}

	for k, v := range answers {
		if _, exists := obj[k]; exists {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal answer", goerr.V(FieldKey, k))
		}
		obj[k] = b
	}

	return json.Marshal(obj)
}

func splitRecord(data []byte, known any) (map[string]any, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, goerr.Wrap(ErrInvalidRecord, "failed to decode record", goerr.V("error", err.Error()))
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, goerr.Wrap(ErrInvalidRecord, "record is not an object", goerr.V("error", err.Error()))
	}
	for _, k := range jsonKeys(known) {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func jsonKeys(v any) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		keys = append(keys, name)
	}
	return keys
}

func copyAnswers(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = copyValue(v)
	}
	return dst
}

func copyValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = copyValue(x[i])
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []bool:
		out := make([]bool, len(x))
		copy(out, x)
		return out
	case map[string]any:
		return copyAnswers(x)
	default:
		return v
	}
}
