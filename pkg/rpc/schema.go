package rpc

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Struct json tags are the schema of parameter and result types: the tag name
// is the wire name and omitempty marks a field as optional. Every other tagged
// field is required in a decoded result.

type schemaField struct {
	name     string
	required bool
	typ      reflect.Type
}

var schemaCache sync.Map // reflect.Type -> []schemaField

var (
	jsonUnmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// checkRequired verifies that raw contains every required field of t,
// recursing into nested objects and arrays. Values of the wrong JSON type are
// left to encoding/json to report.
func checkRequired(raw json.RawMessage, t reflect.Type) error {
	if path := missingField(raw, t, ""); path != "" {
		return NewProtocolDecodeError(fmt.Sprintf("missing required field %q", path), nil)
	}
	return nil
}

func missingField(raw json.RawMessage, t reflect.Type, path string) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if isNull(raw) || customDecoding(t) {
		return ""
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ""
		}
		for _, f := range fieldsOf(t) {
			val, ok := lookupMember(obj, f.name)
			if !ok {
				if f.required {
					return joinPath(path, f.name)
				}
				continue
			}
			if p := missingField(val, f.typ, joinPath(path, f.name)); p != "" {
				return p
			}
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return ""
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		for i, item := range items {
			if p := missingField(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); p != "" {
				return p
			}
		}
	case reflect.Map:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ""
		}
		for key, val := range obj {
			if p := missingField(val, t.Elem(), joinPath(path, key)); p != "" {
				return p
			}
		}
	}
	return ""
}

// fieldsOf returns the json fields of a struct type. Untagged embedded
// structs are flattened the way encoding/json does.
func fieldsOf(t reflect.Type) []schemaField {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.([]schemaField)
	}

	var fields []schemaField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup("json")
		if tag == "-" {
			continue
		}

		if sf.Anonymous && !hasTag {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				fields = append(fields, fieldsOf(et)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, schemaField{
			name:     name,
			required: hasTag && !hasOption(opts, "omitempty") && !hasOption(opts, "omitzero"),
			typ:      sf.Type,
		})
	}

	actual, _ := schemaCache.LoadOrStore(t, fields)
	return actual.([]schemaField)
}

func lookupMember(obj map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if val, ok := obj[name]; ok {
		return val, true
	}
	for key, val := range obj {
		if strings.EqualFold(key, name) {
			return val, true
		}
	}
	return nil, false
}

func customDecoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t == reflect.TypeFor[json.RawMessage]() ||
		pt.Implements(jsonUnmarshalerType) || pt.Implements(textUnmarshalerType)
}

func hasOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == want {
			return true
		}
	}
	return false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
