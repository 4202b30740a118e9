package svg

import (
	"math"
	"strconv"
	"strings"
)

// Value is an attribute value. It is either a string, a number, or the bare
// marker NoValue which renders the attribute name without "=".
type Value struct {
	text string
	bare bool
}

// NoValue renders an attribute as its name alone.
var NoValue = Value{bare: true}

// Str returns a string attribute value.
func Str(s string) Value { return Value{text: s} }

// Numeric is the set of types accepted by Num.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Num returns a numeric attribute value in its shortest decimal form.
func Num[T Numeric](n T) Value { return Value{text: formatNumber(n)} }

// String returns the value text. It is empty for NoValue.
func (v Value) String() string { return v.text }

// IsBare reports whether v is NoValue.
func (v Value) IsBare() bool { return v.bare }

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value Value
}

// Attribute creates an Attr.
func Attribute(key string, value Value) Attr {
	return Attr{Key: key, Value: value}
}

// Attrs is an ordered attribute mapping. Entries are applied in slice order.
type Attrs []Attr

// StyleProp is a single CSS declaration.
type StyleProp struct {
	Property string
	Value    Value
}

// Decl creates a StyleProp.
func Decl(property string, value Value) StyleProp {
	return StyleProp{Property: property, Value: value}
}

// StyleMap is an ordered set of CSS declarations.
type StyleMap []StyleProp

func formatNumber[T Numeric](n T) string {
	switch v := any(n).(type) {
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	}
	// Named numeric types fall through the switch above.
	return formatFloat(float64(n), 64)
}

// formatFloat renders f the way coordinates are conventionally written:
// no trailing zeros, exponent form only for very large or very small values.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bitSize)
		// strconv pads the exponent to two digits.
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
