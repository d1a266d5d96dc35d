// Package decode parses flat JSON request bodies into typed field values.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ValueKind tags a node of the parsed JSON tree.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed JSON document. Number keeps the literal text
// exactly as it appeared in the input.
type Value struct {
	Kind   ValueKind
	String string
	Number json.Number
	Bool   bool
	Object map[string]Value
	Array  []Value
}

// Literal returns the source text of a scalar: the unescaped string, the
// number literal, "true"/"false" or "null".
func (v Value) Literal() string {
	switch v.Kind {
	case KindString:
		return v.String
	case KindNumber:
		return v.Number.String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	default:
		return ""
	}
}

// Parse reads raw as exactly one JSON document. raw must be valid UTF-8.
func Parse(raw []byte) (Value, error) {
	if !utf8.Valid(raw) {
		return Value{}, errors.New("body is not valid UTF-8")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unexpected data after JSON document")
	}
	return fromAny(doc)
}

func fromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case string:
		return Value{Kind: KindString, String: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Number: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for key, item := range t {
			child, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			obj[key] = child
		}
		return Value{Kind: KindObject, Object: obj}, nil
	case []any:
		arr := make([]Value, 0, len(t))
		for _, item := range t {
			child, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, child)
		}
		return Value{Kind: KindArray, Array: arr}, nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value %T", v)
	}
}
