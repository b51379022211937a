// Package coerce turns loosely typed document values into column values. The optional
// coercers are total: input they cannot make sense of resolves to nil, never to an error.
package coerce

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.openly.dev/pointy"

	"droscher.com/BeerImporter/pkg/document"
)

// FlagSet is the source encoding of a yes flag. The corpus also uses "N" and "U", both false.
const FlagSet = "Y"

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.DateOnly,
}

func Flag(value document.Value) bool {
	text, ok := value.AsString()

	return ok && text == FlagSet
}

// NumericOrNamed resolves a field that is either a plain number or an object carrying an
// id and a display name, such as the srm colour of a beer.
func NumericOrNamed(value document.Value) *float64 {
	if value.Kind() != document.Object {
		return Number(value)
	}

	if number := Number(value.Field("id")); number != nil {
		return number
	}

	return Number(value.Field("name"))
}

func Number(value document.Value) *float64 {
	literal, ok := numericLiteral(value)
	if !ok {
		return nil
	}

	number, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return nil
	}

	return pointy.Float64(number)
}

// Integer keeps integral literals exact. Forms such as 3.0 or 1e2 go through Number.
func Integer(value document.Value) *int64 {
	literal, ok := numericLiteral(value)
	if !ok {
		return nil
	}

	if integer, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return pointy.Int64(integer)
	}

	number := Number(value)
	if number == nil || *number != math.Trunc(*number) || math.Abs(*number) >= math.MaxInt64 {
		return nil
	}

	return pointy.Int64(int64(*number))
}

// numericLiteral returns the decimal literal of a number or numeric string.
func numericLiteral(value document.Value) (string, bool) {
	var literal string

	if number, ok := value.AsNumber(); ok {
		literal = number.String()
	} else if text, ok := value.AsString(); ok {
		literal = strings.TrimSpace(text)
	} else {
		return "", false
	}

	return literal, decimalLiteral.MatchString(literal)
}

func Text(value document.Value) *string {
	switch value.Kind() {
	case document.String:
		text, _ := value.AsString()

		return pointy.String(text)
	case document.Number:
		number, _ := value.AsNumber()

		return pointy.String(number.String())
	case document.Bool:
		flag, _ := value.AsBool()

		return pointy.String(strconv.FormatBool(flag))
	default:
		return nil
	}
}

// Serialized returns text unchanged and any other present value as compact JSON with sorted
// object keys.
func Serialized(value document.Value) *string {
	switch value.Kind() {
	case document.Absent, document.Null:
		return nil
	case document.String:
		text, _ := value.AsString()

		return pointy.String(text)
	default:
		var decoded any

		decoder := json.NewDecoder(bytes.NewReader(value.Raw()))
		decoder.UseNumber()

		if err := decoder.Decode(&decoded); err != nil {
			return nil
		}

		encoded, err := json.Marshal(decoded)
		if err != nil {
			return nil
		}

		return pointy.String(string(encoded))
	}
}

func Timestamp(value document.Value) *time.Time {
	text, ok := value.AsString()
	if !ok {
		return nil
	}

	text = strings.TrimSpace(text)

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return &parsed
		}
	}

	return nil
}

// Key reads a required integer identifier.
func Key(value document.Value) (int64, bool) {
	key := Integer(value)
	if key == nil {
		return 0, false
	}

	return *key, true
}

// Identifier reads a required opaque identifier. Numbers are rendered in their source form.
func Identifier(value document.Value) (string, bool) {
	identifier := Text(value)
	if identifier == nil || value.Kind() == document.Bool || strings.TrimSpace(*identifier) == "" {
		return "", false
	}

	return *identifier, true
}
