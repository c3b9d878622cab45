// Package record decodes the loosely typed JSON objects the gallery's data
// files hold. Values are coerced to the destination field types where that
// is unambiguous ("1" for a bool, "12" for an int, 1990 for a string), and
// everything the struct cannot hold is kept aside so it can be written back.
package record

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Fields is one JSON object keyed by property name.
type Fields map[string]json.RawMessage

// Decode fills dst, a pointer to a struct without its own UnmarshalJSON,
// from the object in raw. Keys dst does not declare, null values and values
// that cannot be coerced come back as extra, which is nil when empty.
func Decode(raw []byte, dst any) (extra Fields, err error) {
	var in Fields
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}

	s := schemaOf(reflect.TypeOf(dst).Elem())
	known := make(Fields, len(in))
	for key, val := range in {
		f, ok := s[key]
		if ok {
			if v, ok := coerce(f, val); ok {
				known[key] = v
				continue
			}
		}
		if extra == nil {
			extra = Fields{}
		}
		extra[key] = val
	}

	body, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}
	return extra, nil
}

// Encode marshals src and adds every extra key src did not write itself.
func Encode(src any, extra Fields) ([]byte, error) {
	body, err := json.Marshal(src)
	if err != nil || len(extra) == 0 {
		return body, err
	}

	var out Fields
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Without returns a copy of f lacking keys.
func (f Fields) Without(keys ...string) Fields {
	if len(f) == 0 {
		return f
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type field struct {
	kind reflect.Kind
	elem reflect.Kind // slices only
}

var schemas sync.Map // reflect.Type -> map[string]field

func schemaOf(t reflect.Type) map[string]field {
	if s, ok := schemas.Load(t); ok {
		return s.(map[string]field)
	}

	s := map[string]field{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}
		f := field{kind: sf.Type.Kind()}
		if f.kind == reflect.Slice {
			f.elem = sf.Type.Elem().Kind()
		}
		s[name] = f
	}

	schemas.Store(t, s)
	return s
}

type token int

const (
	tokNull token = iota
	tokString
	tokNumber
	tokBool
	tokObject
	tokArray
)

func tokenOf(v json.RawMessage) token {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return tokNull
	}
	switch v[0] {
	case '"':
		return tokString
	case '{':
		return tokObject
	case '[':
		return tokArray
	case 't', 'f':
		return tokBool
	case 'n':
		return tokNull
	}
	return tokNumber
}

func coerce(f field, v json.RawMessage) (json.RawMessage, bool) {
	tok := tokenOf(v)
	if tok == tokNull {
		return nil, false
	}

	switch f.kind {
	case reflect.String:
		switch tok {
		case tokString:
			return v, true
		case tokNumber, tokBool:
			return quote(string(bytes.TrimSpace(v))), true
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var text string
		switch tok {
		case tokNumber:
			text = string(bytes.TrimSpace(v))
		case tokString:
			text = strings.TrimSpace(unquote(v))
		default:
			return nil, false
		}
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return json.RawMessage(strconv.FormatInt(n, 10)), true
		}
		if x, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(x, 0) && !math.IsNaN(x) {
			return json.RawMessage(strconv.FormatInt(int64(x), 10)), true
		}

	case reflect.Bool:
		switch tok {
		case tokBool:
			return v, true
		case tokNumber:
			x, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
			if err != nil {
				return nil, false
			}
			return boolean(x != 0), true
		case tokString:
			switch strings.ToLower(strings.TrimSpace(unquote(v))) {
			case "1", "true", "yes", "on":
				return boolean(true), true
			case "", "0", "false", "no", "off":
				return boolean(false), true
			}
		}

	case reflect.Float32, reflect.Float64:
		switch tok {
		case tokNumber:
			return v, true
		case tokString:
			if x, err := strconv.ParseFloat(strings.TrimSpace(unquote(v)), 64); err == nil {
				return json.RawMessage(strconv.FormatFloat(x, 'f', -1, 64)), true
			}
		}

	case reflect.Slice:
		if tok != tokArray {
			return nil, false
		}
		if f.elem != reflect.String {
			return v, true
		}
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, false
		}
		for _, it := range items {
			if tokenOf(it) != tokString {
				return nil, false
			}
		}
		return v, true

	default:
		return v, true
	}
	return nil, false
}

func unquote(v json.RawMessage) string {
	var s string
	_ = json.Unmarshal(v, &s)
	return s
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func boolean(b bool) json.RawMessage {
	if b {
		return json.RawMessage("true")
	}
	return json.RawMessage("false")
}
