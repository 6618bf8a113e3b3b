package core

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// TaggedValue is a single scalar value carrying its own ScalarTag. It is the
// Go rendering of the closed DataTypeValue sum type: one field per concrete
// representation, gated by Tag so only one is ever meaningful at a time.
//
// U128 and I128 have no native Go integer type wide enough to hold them;
// math/big.Int is the stdlib's only option and is used for those two arms
// only.
type TaggedValue struct {
	tag ScalarTag

	b bool
	u8 uint8
	u16 uint16
	u32 uint32
	u64 uint64
	u128 *big.Int
	usize uint64
	i8 int8
	i16 int16
	i32 int32
	i64 int64
	i128 *big.Int
	isize int64
	f32 float32
	f64 float64
	str string
}

// Tag returns the value's scalar type.
func (v TaggedValue) Tag() ScalarTag { return v.tag }

func NewBool(x bool) TaggedValue           { return TaggedValue{tag: TagBool, b: x} }
func NewU8(x uint8) TaggedValue            { return TaggedValue{tag: TagU8, u8: x} }
func NewU16(x uint16) TaggedValue          { return TaggedValue{tag: TagU16, u16: x} }
func NewU32(x uint32) TaggedValue          { return TaggedValue{tag: TagU32, u32: x} }
func NewU64(x uint64) TaggedValue          { return TaggedValue{tag: TagU64, u64: x} }
func NewU128(x *big.Int) TaggedValue       { return TaggedValue{tag: TagU128, u128: x} }
func NewUSize(x uint64) TaggedValue        { return TaggedValue{tag: TagUSize, usize: x} }
func NewI8(x int8) TaggedValue             { return TaggedValue{tag: TagI8, i8: x} }
func NewI16(x int16) TaggedValue           { return TaggedValue{tag: TagI16, i16: x} }
func NewI32(x int32) TaggedValue           { return TaggedValue{tag: TagI32, i32: x} }
func NewI64(x int64) TaggedValue           { return TaggedValue{tag: TagI64, i64: x} }
func NewI128(x *big.Int) TaggedValue       { return TaggedValue{tag: TagI128, i128: x} }
func NewISize(x int64) TaggedValue         { return TaggedValue{tag: TagISize, isize: x} }
func NewF32(x float32) TaggedValue         { return TaggedValue{tag: TagF32, f32: x} }
func NewF64(x float64) TaggedValue         { return TaggedValue{tag: TagF64, f64: x} }
func NewInternedString(x string) TaggedValue { return TaggedValue{tag: TagInternedString, str: x} }
func NewOwnedString(x string) TaggedValue  { return TaggedValue{tag: TagOwnedString, str: x} }

func (v TaggedValue) AsBool() (bool, bool)     { return v.b, v.tag == TagBool }
func (v TaggedValue) AsU8() (uint8, bool)      { return v.u8, v.tag == TagU8 }
func (v TaggedValue) AsU16() (uint16, bool)    { return v.u16, v.tag == TagU16 }
func (v TaggedValue) AsU32() (uint32, bool)    { return v.u32, v.tag == TagU32 }
func (v TaggedValue) AsU64() (uint64, bool)    { return v.u64, v.tag == TagU64 }
func (v TaggedValue) AsU128() (*big.Int, bool) { return v.u128, v.tag == TagU128 }
func (v TaggedValue) AsUSize() (uint64, bool)  { return v.usize, v.tag == TagUSize }
func (v TaggedValue) AsI8() (int8, bool)       { return v.i8, v.tag == TagI8 }
func (v TaggedValue) AsI16() (int16, bool)     { return v.i16, v.tag == TagI16 }
func (v TaggedValue) AsI32() (int32, bool)     { return v.i32, v.tag == TagI32 }
func (v TaggedValue) AsI64() (int64, bool)     { return v.i64, v.tag == TagI64 }
func (v TaggedValue) AsI128() (*big.Int, bool) { return v.i128, v.tag == TagI128 }
func (v TaggedValue) AsISize() (int64, bool)   { return v.isize, v.tag == TagISize }
func (v TaggedValue) AsF32() (float32, bool)   { return v.f32, v.tag == TagF32 }
func (v TaggedValue) AsF64() (float64, bool)   { return v.f64, v.tag == TagF64 }
func (v TaggedValue) AsInternedString() (string, bool) {
	return v.str, v.tag == TagInternedString
}
func (v TaggedValue) AsOwnedString() (string, bool) { return v.str, v.tag == TagOwnedString }

// AsString returns the backing string for either string tag.
func (v TaggedValue) AsString() (string, bool) {
	return v.str, v.tag == TagInternedString || v.tag == TagOwnedString
}

// AsFloat64 widens any numeric tag to a float64 for distance/ordering use.
// The second return is false for TagUnknown and the string tags.
func (v TaggedValue) AsFloat64() (float64, bool) {
	switch v.tag {
	case TagBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case TagU8:
		return float64(v.u8), true
	case TagU16:
		return float64(v.u16), true
	case TagU32:
		return float64(v.u32), true
	case TagU64:
		return float64(v.u64), true
	case TagUSize:
		return float64(v.usize), true
	case TagU128:
		if v.u128 == nil {
			return 0, true
		}
		f, _ := new(big.Float).SetInt(v.u128).Float64()
		return f, true
	case TagI8:
		return float64(v.i8), true
	case TagI16:
		return float64(v.i16), true
	case TagI32:
		return float64(v.i32), true
	case TagI64:
		return float64(v.i64), true
	case TagISize:
		return float64(v.isize), true
	case TagI128:
		if v.i128 == nil {
			return 0, true
		}
		f, _ := new(big.Float).SetInt(v.i128).Float64()
		return f, true
	case TagF32:
		return float64(v.f32), true
	case TagF64:
		return v.f64, true
	default:
		return 0, false
	}
}

// String renders the value for logging and neuron-id derivation, matching
// the "%v"-style Display impls original_source relies on for local neuron
// ids (each row's sensor value becomes the textual suffix of a NeuronID).
func (v TaggedValue) String() string {
	switch v.tag {
	case TagBool:
		return strconv.FormatBool(v.b)
	case TagU8:
		return strconv.FormatUint(uint64(v.u8), 10)
	case TagU16:
		return strconv.FormatUint(uint64(v.u16), 10)
	case TagU32:
		return strconv.FormatUint(uint64(v.u32), 10)
	case TagU64:
		return strconv.FormatUint(v.u64, 10)
	case TagU128:
		if v.u128 == nil {
			return "0"
		}
		return v.u128.String()
	case TagUSize:
		return strconv.FormatUint(v.usize, 10)
	case TagI8:
		return strconv.FormatInt(int64(v.i8), 10)
	case TagI16:
		return strconv.FormatInt(int64(v.i16), 10)
	case TagI32:
		return strconv.FormatInt(int64(v.i32), 10)
	case TagI64:
		return strconv.FormatInt(v.i64, 10)
	case TagI128:
		if v.i128 == nil {
			return "0"
		}
		return v.i128.String()
	case TagISize:
		return strconv.FormatInt(v.isize, 10)
	case TagF32:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case TagF64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case TagInternedString, TagOwnedString:
		return v.str
	default:
		return "<unknown>"
	}
}

// FromText parses a raw text field (as read from CSV or a CLI flag) into a
// TaggedValue of the given tag. It is the ingest boundary's single parsing
// entry point, grounded on the type-inference step of spec.md §4.5.1.
func FromText(text string, tag ScalarTag) (TaggedValue, error) {
	text = strings.TrimSpace(text)
	switch tag {
	case TagBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a bool", ErrTypeMismatch, text)
		}
		return NewBool(b), nil
	case TagU8:
		x, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a u8", ErrTypeMismatch, text)
		}
		return NewU8(uint8(x)), nil
	case TagU16:
		x, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a u16", ErrTypeMismatch, text)
		}
		return NewU16(uint16(x)), nil
	case TagU32:
		x, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a u32", ErrTypeMismatch, text)
		}
		return NewU32(uint32(x)), nil
	case TagU64:
		x, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a u64", ErrTypeMismatch, text)
		}
		return NewU64(x), nil
	case TagUSize:
		x, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a usize", ErrTypeMismatch, text)
		}
		return NewUSize(x), nil
	case TagU128:
		x, ok := new(big.Int).SetString(text, 10)
		if !ok || x.Sign() < 0 {
			return TaggedValue{}, fmt.Errorf("%w: %q is not a u128", ErrTypeMismatch, text)
		}
		return NewU128(x), nil
	case TagI8:
		x, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an i8", ErrTypeMismatch, text)
		}
		return NewI8(int8(x)), nil
	case TagI16:
		x, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an i16", ErrTypeMismatch, text)
		}
		return NewI16(int16(x)), nil
	case TagI32:
		x, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an i32", ErrTypeMismatch, text)
		}
		return NewI32(int32(x)), nil
	case TagI64:
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an i64", ErrTypeMismatch, text)
		}
		return NewI64(x), nil
	case TagISize:
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an isize", ErrTypeMismatch, text)
		}
		return NewISize(x), nil
	case TagI128:
		x, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an i128", ErrTypeMismatch, text)
		}
		return NewI128(x), nil
	case TagF32:
		x, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an f32", ErrTypeMismatch, text)
		}
		return NewF32(float32(x)), nil
	case TagF64:
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return TaggedValue{}, fmt.Errorf("%w: %q is not an f64", ErrTypeMismatch, text)
		}
		return NewF64(x), nil
	case TagInternedString:
		return NewInternedString(text), nil
	case TagOwnedString:
		return NewOwnedString(text), nil
	default:
		return TaggedValue{}, fmt.Errorf("%w: cannot parse value of tag %s", ErrInvalidType, tag)
	}
}
