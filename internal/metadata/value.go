package metadata

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
	KindList
)

// Value is one decoded metadata field: a string, number, instant, list of
// values, or an explicit null.
type Value struct {
	kind  Kind
	str   string
	num   float64
	when  time.Time
	items []Value
}

func Null() Value               { return Value{} }
func String(s string) Value     { return Value{kind: KindString, str: s} }
func Number(n float64) Value    { return Value{kind: KindNumber, num: n} }
func Time(t time.Time) Value    { return Value{kind: KindTime, when: t} }
func List(items ...Value) Value { return Value{kind: KindList, items: items} }
func (v Value) Kind() Kind      { return v.kind }
func (v Value) Items() []Value  { return v.items }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// AsString returns the value when it is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the value when it is a finite number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return 0, false
	}
	return v.num, true
}

// AsTime returns the value when it is a non-zero instant.
func (v Value) AsTime() (time.Time, bool) {
	return v.when, v.kind == KindTime && !v.when.IsZero()
}

// Truthy reports whether the value counts as present for fallback chains
// that skip empty strings and zero numbers.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindTime:
		return !v.when.IsZero()
	case KindList:
		return true
	}
	return false
}

// Text is the plain string form of the value. Lists join their items with
// commas, null is empty.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.when.Format(time.RFC3339)
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Text()
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// MarshalJSON encodes numbers as JSON numbers, instants as RFC 3339 strings
// and non-finite numbers as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return marshalString(v.str)
	case KindNumber:
		if _, ok := v.AsNumber(); !ok {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindTime:
		return marshalString(v.when.Format(time.RFC3339))
	case KindList:
		if len(v.items) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return []byte("null"), nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
