package types

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value is a single typed cell of a record. Exactly one of the typed
// pointers is set, matching valueType.
type Value struct {
	valueType TypeID
	integer   *int32
	float     *float32
	boolean   *bool
	varchar   *string
	decimal   *decimal.Decimal
}

func NewInteger(value int32) Value {
	return Value{valueType: Integer, integer: &value}
}

func NewFloat(value float32) Value {
	return Value{valueType: Float, float: &value}
}

func NewBoolean(value bool) Value {
	return Value{valueType: Boolean, boolean: &value}
}

func NewVarchar(value string) Value {
	return Value{valueType: Varchar, varchar: &value}
}

func NewDecimal(value decimal.Decimal) Value {
	return Value{valueType: Decimal, decimal: &value}
}

func NewDecimalFromInt(value int64) Value {
	d := decimal.NewFromInt(value)
	return Value{valueType: Decimal, decimal: &d}
}

// NewValueFromBytes deserializes a value of the given type from data.
// Varchar and Decimal are expected in length prefixed form.
func NewValueFromBytes(data []byte, valueType TypeID) (ret *Value) {
	switch valueType {
	case Integer:
		v := int32(NewInt32FromBytes(data))
		vv := NewInteger(v)
		ret = &vv
	case Float:
		v := float32(NewFloat32FromBytes(data))
		vv := NewFloat(v)
		ret = &vv
	case Boolean:
		v := bool(NewBoolFromBytes(data))
		vv := NewBoolean(v)
		ret = &vv
	case Varchar:
		length := uint16(NewUInt16FromBytes(data))
		v := string(data[2 : 2+length])
		vv := NewVarchar(v)
		ret = &vv
	case Decimal:
		length := uint16(NewUInt16FromBytes(data))
		d, err := decimal.NewFromString(string(data[2 : 2+length]))
		if err != nil {
			return nil
		}
		vv := NewDecimal(d)
		ret = &vv
	}
	return ret
}

// Serialize converts the value to its stored byte form. Varchar and
// Decimal get a two byte length prefix.
func (v Value) Serialize() []byte {
	switch v.valueType {
	case Integer:
		return Int32(*v.integer).Serialize()
	case Float:
		return Float32(*v.float).Serialize()
	case Boolean:
		return Bool(*v.boolean).Serialize()
	case Varchar:
		length := UInt16(len(*v.varchar))
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, length)
		buf.Write([]byte(*v.varchar))
		return buf.Bytes()
	case Decimal:
		s := v.decimal.String()
		length := UInt16(len(s))
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, length)
		buf.Write([]byte(s))
		return buf.Bytes()
	}
	return []byte{}
}

// Size returns the number of bytes Serialize emits for this value.
func (v Value) Size() uint32 {
	switch v.valueType {
	case Varchar:
		return uint32(len(*v.varchar)) + 2
	case Decimal:
		return uint32(len(v.decimal.String())) + 2
	default:
		return v.valueType.Size()
	}
}

func (v Value) ValueType() TypeID { return v.valueType }

func (v Value) ToInteger() int32  { return *v.integer }
func (v Value) ToFloat() float32  { return *v.float }
func (v Value) ToBoolean() bool   { return *v.boolean }
func (v Value) ToVarchar() string { return *v.varchar }

// ToDecimal widens any numeric value to a Decimal. It is used by the
// aggregation layer so that running sums do not lose precision.
func (v Value) ToDecimal() decimal.Decimal {
	switch v.valueType {
	case Integer:
		return decimal.NewFromInt(int64(*v.integer))
	case Float:
		return decimal.NewFromFloat32(*v.float)
	case Decimal:
		return *v.decimal
	}
	panic(fmt.Sprintf("ToDecimal called on %v value", v.valueType))
}

func (v Value) CompareEquals(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Float:
		return *v.float == *right.float
	case Boolean:
		return *v.boolean == *right.boolean
	case Varchar:
		return *v.varchar == *right.varchar
	case Decimal:
		return v.decimal.Equal(*right.decimal)
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	return !v.CompareEquals(right)
}

func (v Value) CompareGreaterThan(right Value) bool {
	switch v.valueType {
	case Integer:
		return *v.integer > *right.integer
	case Float:
		return *v.float > *right.float
	case Varchar:
		return *v.varchar > *right.varchar
	case Decimal:
		return v.decimal.GreaterThan(*right.decimal)
	}
	return false
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	return v.CompareGreaterThan(right) || v.CompareEquals(right)
}

func (v Value) CompareLessThan(right Value) bool {
	return !v.CompareGreaterThanOrEqual(right)
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	return !v.CompareGreaterThan(right)
}

// Add returns the sum of two values of the same numeric type.
func (v Value) Add(right Value) Value {
	switch v.valueType {
	case Integer:
		return NewInteger(*v.integer + *right.integer)
	case Float:
		return NewFloat(*v.float + *right.float)
	case Decimal:
		return NewDecimal(v.decimal.Add(right.ToDecimal()))
	}
	panic(fmt.Sprintf("Add called on %v value", v.valueType))
}

func (v Value) Max(right Value) Value {
	if v.CompareGreaterThanOrEqual(right) {
		return v
	}
	return right
}

func (v Value) Min(right Value) Value {
	if v.CompareLessThanOrEqual(right) {
		return v
	}
	return right
}
