package metrics

import "strconv"

// Unit is the unit a Value is measured in. Any string other than the predefined
// constants is an ad hoc unit produced by Infer.
type Unit string

const (
	UnitNone    Unit = ""
	UnitSeconds Unit = "s"
	UnitBytes   Unit = "B"
	UnitPercent Unit = "%"
)

// Value is a tagged measurement: either a number or an opaque string, plus its unit.
type Value struct {
	num    float64
	text   string
	isText bool
	unit   Unit
}

// Seconds returns a numeric value measured in seconds.
func Seconds(s float64) Value { return Value{num: s, unit: UnitSeconds} }

// Bytes returns a numeric value measured in bytes.
func Bytes(n int64) Value { return Value{num: float64(n), unit: UnitBytes} }

// Percent returns a numeric value measured in percent (15 means 15%).
func Percent(p float64) Value { return Value{num: p, unit: UnitPercent} }

// Count returns a unitless numeric value.
func Count(n float64) Value { return Value{num: n} }

// Number returns a numeric value with an arbitrary unit.
func Number(n float64, unit Unit) Value { return Value{num: n, unit: unit} }

// Text returns an opaque string value with no unit.
func Text(s string) Value { return Value{text: s, isText: true} }

// IsNumeric reports whether the value carries a number.
func (v Value) IsNumeric() bool { return !v.isText }

// Float returns the numeric value; zero for text values.
func (v Value) Float() float64 { return v.num }

// Unit returns the value's unit.
func (v Value) Unit() Unit { return v.unit }

// String renders the value without its unit.
func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// jsonValue returns the value in the form it is serialised.
func (v Value) jsonValue() any {
	if v.isText {
		return v.text
	}
	return v.num
}
