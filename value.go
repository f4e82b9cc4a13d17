package keysetpager

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"
)

// ValueKind enumerates the types a cursor value can carry.
type ValueKind string

const (
	KindNull   ValueKind = "null"
	KindString ValueKind = "str"
	KindInt    ValueKind = "int"
	KindFloat  ValueKind = "float"
	KindBigInt ValueKind = "bigint"
	KindBool   ValueKind = "bool"
	KindTime   ValueKind = "time"
)

// Value is a tagged union over the types a sort column can produce: null,
// string, int64, float64, big integer, bool and timestamp. Cursor payloads
// use Value instead of a bare `any` so that token round trips preserve exact
// types — an int64 never comes back as a float64 after JSON transport.
type Value struct {
	kind ValueKind

	str string
	i64 int64
	f64 float64
	b   bool
	t   time.Time
	big *big.Int
}

var NullValue = Value{kind: KindNull}

func StringValue(v string) Value  { return Value{kind: KindString, str: v} }
func IntValue(v int64) Value      { return Value{kind: KindInt, i64: v} }
func FloatValue(v float64) Value  { return Value{kind: KindFloat, f64: v} }
func BoolValue(v bool) Value      { return Value{kind: KindBool, b: v} }
func TimeValue(v time.Time) Value { return Value{kind: KindTime, t: v} }

func BigIntValue(v *big.Int) Value {
	if v == nil {
		return NullValue
	}

	return Value{kind: KindBigInt, big: new(big.Int).Set(v)}
}

// NewValue converts a raw scan result into a Value. Accepts everything a
// database driver hands back for a sort column: all integer widths, floats,
// strings, []byte, bool, time.Time, *big.Int and nil.
//
// String and []byte inputs that parse as RFC 3339 timestamps convert to
// KindTime, mirroring how drivers without a native timestamp type (sqlite)
// report datetime columns.
func NewValue(v any) (Value, error) {
	switch vt := v.(type) {
	case nil:
		return NullValue, nil
	case Value:
		return vt, nil
	case string:
		return parseStringValue(vt), nil
	case []byte:
		return parseStringValue(string(vt)), nil
	case bool:
		return BoolValue(vt), nil
	case int:
		return IntValue(int64(vt)), nil
	case int8:
		return IntValue(int64(vt)), nil
	case int16:
		return IntValue(int64(vt)), nil
	case int32:
		return IntValue(int64(vt)), nil
	case int64:
		return IntValue(vt), nil
	case uint:
		return uintValue(uint64(vt)), nil
	case uint8:
		return IntValue(int64(vt)), nil
	case uint16:
		return IntValue(int64(vt)), nil
	case uint32:
		return IntValue(int64(vt)), nil
	case uint64:
		return uintValue(vt), nil
	case float32:
		return FloatValue(float64(vt)), nil
	case float64:
		return FloatValue(vt), nil
	case time.Time:
		return TimeValue(vt), nil
	case *big.Int:
		return BigIntValue(vt), nil
	default:
		return Value{}, fmt.Errorf("unsupported cursor value type %T", v)
	}
}

func uintValue(v uint64) Value {
	if v > math.MaxInt64 {
		return BigIntValue(new(big.Int).SetUint64(v))
	}

	return IntValue(int64(v))
}

// parseStringValue sniffs RFC 3339 timestamps out of textual scan results.
// Everything else stays a string.
func parseStringValue(s string) Value {
	dst := time.Time{}
	if err := dst.UnmarshalText([]byte(s)); err == nil {
		return TimeValue(dst)
	}

	return StringValue(s)
}

// Kind returns the tag of the union.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindNull
	}

	return v.kind
}

// IsNull reports whether the value is the SQL NULL marker.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Driver lowers the value to an argument suitable for an SQL placeholder.
func (v Value) Driver() driver.Value {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindInt:
		return v.i64
	case KindFloat:
		return v.f64
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindBigInt:
		// Drivers have no unified big-integer binding; the decimal string
		// form compares correctly on NUMERIC columns.
		return v.big.String()
	default:
		return nil
	}
}

// Equal reports deep equality of two values, including their kinds.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}

	switch v.Kind() {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i64 == other.i64
	case KindFloat:
		return v.f64 == other.f64
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	case KindBigInt:
		return v.big.Cmp(other.big) == 0
	default:
		return false
	}
}

// String - implements fmt.Stringer. Debug form only, not a serialization.
func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.Kind(), v.Driver())
}

// jsonValue is the wire form of Value. Integer payloads travel as strings so
// that encoding/json never widens them into float64.
type jsonValue struct {
	Tag     ValueKind       `json:"t"`
	Payload json.RawMessage `json:"v,omitempty"`
}

// MarshalJSON - implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any

	switch v.Kind() {
	case KindNull:
		return json.Marshal(jsonValue{Tag: KindNull})
	case KindString:
		payload = v.str
	case KindInt:
		payload = fmt.Sprintf("%d", v.i64)
	case KindFloat:
		payload = v.f64
	case KindBool:
		payload = v.b
	case KindTime:
		payload = v.t.Format(time.RFC3339Nano)
	case KindBigInt:
		payload = v.big.String()
	default:
		return nil, fmt.Errorf("cannot marshal cursor value of kind '%s'", v.Kind())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonValue{Tag: v.Kind(), Payload: raw})
}

// UnmarshalJSON - implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire jsonValue
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to unmarshal cursor value: %w", err)
	}

	switch wire.Tag {
	case KindNull, "":
		*v = NullValue
		return nil
	case KindString:
		var s string
		if err := json.Unmarshal(wire.Payload, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case KindInt:
		var s string
		if err := json.Unmarshal(wire.Payload, &s); err != nil {
			return err
		}
		var i big.Int
		if _, ok := i.SetString(s, 10); !ok {
			return fmt.Errorf("invalid integer cursor value '%s'", s)
		}
		if !i.IsInt64() {
			return fmt.Errorf("integer cursor value '%s' overflows int64", s)
		}
		*v = IntValue(i.Int64())
	case KindFloat:
		var f float64
		if err := json.Unmarshal(wire.Payload, &f); err != nil {
			return err
		}
		*v = FloatValue(f)
	case KindBool:
		var b bool
		if err := json.Unmarshal(wire.Payload, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case KindTime:
		var s string
		if err := json.Unmarshal(wire.Payload, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp cursor value: %w", err)
		}
		*v = TimeValue(t)
	case KindBigInt:
		var s string
		if err := json.Unmarshal(wire.Payload, &s); err != nil {
			return err
		}
		i := new(big.Int)
		if _, ok := i.SetString(s, 10); !ok {
			return fmt.Errorf("invalid big integer cursor value '%s'", s)
		}
		*v = Value{kind: KindBigInt, big: i}
	default:
		return fmt.Errorf("unknown cursor value tag '%s'", wire.Tag)
	}

	return nil
}

var (
	_ json.Marshaler   = Value{}
	_ json.Unmarshaler = (*Value)(nil)
	_ fmt.Stringer     = Value{}
)
