// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/give-a-mocha/DB2025/errors"
)

// A Value represents a view over SQL data stored in some materialized
// state. All values have a type and comparison functions and implement
// other type-specific functionality.
type Value struct {
	valueType ColType
	integer   *int32
	float     *float32
	varchar   *string
}

func NewInteger(value int32) Value {
	return Value{Integer, &value, nil, nil}
}

func NewFloat(value float32) Value {
	return Value{Float, nil, &value, nil}
}

func NewVarchar(value string) Value {
	return Value{Varchar, nil, nil, &value}
}

// NewValueFromBytes deserializes a value from the fixed-width raw bytes of
// a record slot. A Varchar is trimmed at the first zero byte, i.e. its
// logical length is the shorter of the declared column length and the
// position of the first NUL.
func NewValueFromBytes(data []byte, valueType ColType) (ret *Value) {
	switch valueType {
	case Integer:
		v := new(int32)
		binary.Read(bytes.NewBuffer(data), binary.LittleEndian, v)
		vInteger := NewInteger(*v)
		ret = &vInteger
	case Float:
		v := new(float32)
		binary.Read(bytes.NewBuffer(data), binary.LittleEndian, v)
		vFloat := NewFloat(*v)
		ret = &vFloat
	case Varchar:
		strLen := len(data)
		if idx := bytes.IndexByte(data, 0); idx >= 0 {
			strLen = idx
		}
		vVarchar := NewVarchar(string(data[:strLen]))
		ret = &vVarchar
	default:
		panic("unknown type tag is passed")
	}
	return ret
}

func (v Value) ValueType() ColType {
	return v.valueType
}

func (v Value) ToInteger() int32 {
	return *v.integer
}

func (v Value) ToFloat() float32 {
	return *v.float
}

func (v Value) ToVarchar() string {
	return *v.varchar
}

// Serialize returns the raw byte image of the value. Varchar returns the
// bare string bytes; padding to the declared column length is up to the
// caller which knows the layout.
func (v Value) Serialize() []byte {
	switch v.valueType {
	case Integer:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, v.ToInteger())
		return buf.Bytes()
	case Float:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, v.ToFloat())
		return buf.Bytes()
	case Varchar:
		return []byte(v.ToVarchar())
	default:
		panic("unknown type tag is passed")
	}
}

// Size returns the number of bytes Serialize produces
func (v Value) Size() uint32 {
	if v.valueType == Varchar {
		return uint32(len(*v.varchar))
	}
	return v.valueType.Size()
}

// Compare compares v against rhs and returns a negative, zero or positive
// result. operands must share a type, except that Integer and Float are
// mutually coercible: an Integer operand is promoted to Float whenever the
// types differ and both are numeric. any other mixed pairing fails with
// ErrIncompatibleType.
func (v Value) Compare(rhs Value) (int, error) {
	if v.valueType != rhs.valueType {
		if v.isNumeric() && rhs.isNumeric() {
			return compareFloat(v.toFloatWide(), rhs.toFloatWide()), nil
		}
		return 0, errors.ErrIncompatibleType
	}

	switch v.valueType {
	case Integer:
		lhsVal := v.ToInteger()
		rhsVal := rhs.ToInteger()
		if lhsVal < rhsVal {
			return -1, nil
		} else if lhsVal > rhsVal {
			return 1, nil
		}
		return 0, nil
	case Float:
		return compareFloat(v.ToFloat(), rhs.ToFloat()), nil
	case Varchar:
		// trimmed byte-wise comparison. a shorter string orders before a
		// longer string sharing its prefix.
		return strings.Compare(v.ToVarchar(), rhs.ToVarchar()), nil
	default:
		return 0, errors.ErrIncompatibleType
	}
}

// CastTo converts the value to the target column type. only the numeric
// pairing is convertible: Integer truncates from Float, Float widens from
// Integer.
func (v Value) CastTo(target ColType) (Value, error) {
	if v.valueType == target {
		return v, nil
	}
	if v.valueType == Integer && target == Float {
		return NewFloat(float32(v.ToInteger())), nil
	}
	if v.valueType == Float && target == Integer {
		return NewInteger(int32(v.ToFloat())), nil
	}
	return Value{}, errors.ErrIncompatibleType
}

func (v Value) isNumeric() bool {
	return v.valueType == Integer || v.valueType == Float
}

func (v Value) toFloatWide() float32 {
	if v.valueType == Integer {
		return float32(v.ToInteger())
	}
	return v.ToFloat()
}

// sign of the difference, not the raw subtraction, so that values near the
// type width boundary do not overflow the comparison
func compareFloat(lhs float32, rhs float32) int {
	diff := lhs - rhs
	if diff > 0 {
		return 1
	} else if diff < 0 {
		return -1
	}
	return 0
}
