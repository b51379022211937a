package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tells which JSON shape a Value holds. The zero Kind is Absent, so a struct field
// that never appeared in the input reads as absent without any extra bookkeeping.
type Kind int

const (
	Absent Kind = iota
	Null
	Number
	String
	Bool
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a JSON value whose type is not fixed by the source data.
type Value struct {
	kind   Kind
	number json.Number
	text   string
	flag   bool
	fields map[string]Value
	raw    json.RawMessage
}

func StringValue(s string) Value {
	raw, _ := json.Marshal(s)

	return Value{kind: String, text: s, raw: raw}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty JSON value")
	}

	parsed := Value{raw: append(json.RawMessage(nil), trimmed...)}

	switch trimmed[0] {
	case 'n':
		parsed.kind = Null
	case 't', 'f':
		parsed.kind = Bool
		if err := json.Unmarshal(trimmed, &parsed.flag); err != nil {
			return err
		}
	case '"':
		parsed.kind = String
		if err := json.Unmarshal(trimmed, &parsed.text); err != nil {
			return err
		}
	case '{':
		parsed.kind = Object
		if err := json.Unmarshal(trimmed, &parsed.fields); err != nil {
			return err
		}
	case '[':
		parsed.kind = Array
	default:
		// The literal is kept as written; range is checked by whoever reads it.
		parsed.kind = Number
		parsed.number = json.Number(trimmed)
	}

	*v = parsed

	return nil
}

func (v Value) Kind() Kind { return v.kind }

// Present reports whether the value carries data, i.e. is neither absent nor null.
func (v Value) Present() bool { return v.kind != Absent && v.kind != Null }

// AsNumber returns the literal of a JSON number.
func (v Value) AsNumber() (json.Number, bool) { return v.number, v.kind == Number }

func (v Value) AsString() (string, bool) { return v.text, v.kind == String }

func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == Bool }

// Field returns a member of an object value. Any other kind yields an absent Value.
func (v Value) Field(name string) Value {
	if v.kind != Object {
		return Value{}
	}

	return v.fields[name]
}

// Raw returns the value exactly as it appeared in the input.
func (v Value) Raw() json.RawMessage { return v.raw }
