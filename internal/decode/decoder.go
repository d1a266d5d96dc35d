package decode

import (
	"errors"
	"fmt"
)

// FieldKind is the type a schema expects for a field.
type FieldKind int

const (
	String FieldKind = iota + 1
	Number
)

// FieldSpec names one requested field.
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// Schema is the set of fields a caller wants from a body.
type Schema []FieldSpec

// State says whether a field was present in the body.
type State int

const (
	Missing State = iota
	Null
	Present
)

// Field is the decoded value of one requested field.
type Field struct {
	State State
	Text  string
}

// Fields maps requested field names to their decoded values.
// Names not in the schema resolve to Missing.
type Fields map[string]Field

// Get returns the named field.
func (f Fields) Get(name string) Field {
	return f[name]
}

// Value returns the text of a present field.
func (f Fields) Value(name string) (string, bool) {
	field := f[name]
	return field.Text, field.State == Present
}

// ErrInvalidJSON reports a body that is not a well-formed JSON object.
var ErrInvalidJSON = errors.New("invalid json")

// TypeMismatchError reports a field whose JSON type does not fit the schema.
type TypeMismatchError struct {
	Field string
	Got   ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: unexpected %s", e.Field, e.Got)
}

// Decode parses raw as a JSON object and projects the schema's fields out of it.
//
// A quoted string yields its unescaped value for either kind. A number literal
// yields its text for Number fields. JSON null yields Null. Anything else, or a
// number where a String is expected, is a *TypeMismatchError.
func Decode(raw []byte, schema Schema) (Fields, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if doc.Kind != KindObject {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidJSON, doc.Kind)
	}

	out := make(Fields, len(schema))
	for _, want := range schema {
		value, ok := doc.Object[want.Name]
		if !ok {
			out[want.Name] = Field{State: Missing}
			continue
		}

		switch value.Kind {
		case KindNull:
			out[want.Name] = Field{State: Null, Text: value.Literal()}
		case KindString:
			out[want.Name] = Field{State: Present, Text: value.String}
		case KindNumber:
			if want.Kind != Number {
				return nil, &TypeMismatchError{Field: want.Name, Got: value.Kind}
			}
			out[want.Name] = Field{State: Present, Text: value.Literal()}
		default:
			return nil, &TypeMismatchError{Field: want.Name, Got: value.Kind}
		}
	}
	return out, nil
}
