package core

import "fmt"

// TaggedVector is a column of TaggedValue, one slot per row, sharing a
// single ScalarTag. It corresponds to DataVec/DataVecOption in
// original_source/src/dynamic/parser.rs: one concrete backing slice per
// scalar type, selected by a hand-written switch over the tag in each
// method (there is no generated dispatch table), plus a parallel present
// slice so the same type serves both the dense and optional ("skip nulls")
// ingest paths.
type TaggedVector struct {
	tag     ScalarTag
	present []bool

	bools   []bool
	u8s     []uint8
	u16s    []uint16
	u32s    []uint32
	u64s    []uint64
	u128s   []*TaggedValue
	usizes  []uint64
	i8s     []int8
	i16s    []int16
	i32s    []int32
	i64s    []int64
	i128s   []*TaggedValue
	isizes  []int64
	f32s    []float32
	f64s    []float64
	strs    []string
}

// NewVector creates an empty TaggedVector of the given tag.
func NewVector(tag ScalarTag) (*TaggedVector, error) {
	if tag == TagUnknown {
		return nil, fmt.Errorf("%w: cannot create a vector of unknown type", ErrInvalidType)
	}
	return &TaggedVector{tag: tag}, nil
}

// Tag returns the vector's scalar type.
func (vec *TaggedVector) Tag() ScalarTag { return vec.tag }

// Len returns the number of rows, present or absent.
func (vec *TaggedVector) Len() int { return len(vec.present) }

// Append adds v, which must share the vector's tag, as a present row.
func (vec *TaggedVector) Append(v TaggedValue) error {
	if v.Tag() != vec.tag {
		return fmt.Errorf("%w: vector holds %s, got %s", ErrTypeMismatch, vec.tag, v.Tag())
	}
	vec.present = append(vec.present, true)
	switch vec.tag {
	case TagBool:
		b, _ := v.AsBool()
		vec.bools = append(vec.bools, b)
	case TagU8:
		x, _ := v.AsU8()
		vec.u8s = append(vec.u8s, x)
	case TagU16:
		x, _ := v.AsU16()
		vec.u16s = append(vec.u16s, x)
	case TagU32:
		x, _ := v.AsU32()
		vec.u32s = append(vec.u32s, x)
	case TagU64:
		x, _ := v.AsU64()
		vec.u64s = append(vec.u64s, x)
	case TagU128:
		vec.u128s = append(vec.u128s, &v)
	case TagUSize:
		x, _ := v.AsUSize()
		vec.usizes = append(vec.usizes, x)
	case TagI8:
		x, _ := v.AsI8()
		vec.i8s = append(vec.i8s, x)
	case TagI16:
		x, _ := v.AsI16()
		vec.i16s = append(vec.i16s, x)
	case TagI32:
		x, _ := v.AsI32()
		vec.i32s = append(vec.i32s, x)
	case TagI64:
		x, _ := v.AsI64()
		vec.i64s = append(vec.i64s, x)
	case TagI128:
		vec.i128s = append(vec.i128s, &v)
	case TagISize:
		x, _ := v.AsISize()
		vec.isizes = append(vec.isizes, x)
	case TagF32:
		x, _ := v.AsF32()
		vec.f32s = append(vec.f32s, x)
	case TagF64:
		x, _ := v.AsF64()
		vec.f64s = append(vec.f64s, x)
	case TagInternedString, TagOwnedString:
		s, _ := v.AsString()
		vec.strs = append(vec.strs, s)
	}
	return nil
}

// AppendAbsent records a row with no value (a null cell), keeping the
// vector's length in step with the table it belongs to without inserting
// into any sensor graph for that row — it is simply skipped by Ingest.
func (vec *TaggedVector) AppendAbsent() {
	vec.present = append(vec.present, false)
	switch vec.tag {
	case TagBool:
		vec.bools = append(vec.bools, false)
	case TagU8:
		vec.u8s = append(vec.u8s, 0)
	case TagU16:
		vec.u16s = append(vec.u16s, 0)
	case TagU32:
		vec.u32s = append(vec.u32s, 0)
	case TagU64:
		vec.u64s = append(vec.u64s, 0)
	case TagU128:
		vec.u128s = append(vec.u128s, nil)
	case TagUSize:
		vec.usizes = append(vec.usizes, 0)
	case TagI8:
		vec.i8s = append(vec.i8s, 0)
	case TagI16:
		vec.i16s = append(vec.i16s, 0)
	case TagI32:
		vec.i32s = append(vec.i32s, 0)
	case TagI64:
		vec.i64s = append(vec.i64s, 0)
	case TagI128:
		vec.i128s = append(vec.i128s, nil)
	case TagISize:
		vec.isizes = append(vec.isizes, 0)
	case TagF32:
		vec.f32s = append(vec.f32s, 0)
	case TagF64:
		vec.f64s = append(vec.f64s, 0)
	case TagInternedString, TagOwnedString:
		vec.strs = append(vec.strs, "")
	}
}

// At returns the value at row i and whether it is present. A false second
// return means the row was a null cell (AppendAbsent), not a tag mismatch.
func (vec *TaggedVector) At(i int) (TaggedValue, bool) {
	if i < 0 || i >= len(vec.present) || !vec.present[i] {
		return TaggedValue{}, false
	}
	switch vec.tag {
	case TagBool:
		return NewBool(vec.bools[i]), true
	case TagU8:
		return NewU8(vec.u8s[i]), true
	case TagU16:
		return NewU16(vec.u16s[i]), true
	case TagU32:
		return NewU32(vec.u32s[i]), true
	case TagU64:
		return NewU64(vec.u64s[i]), true
	case TagU128:
		if vec.u128s[i] == nil {
			return TaggedValue{}, false
		}
		return *vec.u128s[i], true
	case TagUSize:
		return NewUSize(vec.usizes[i]), true
	case TagI8:
		return NewI8(vec.i8s[i]), true
	case TagI16:
		return NewI16(vec.i16s[i]), true
	case TagI32:
		return NewI32(vec.i32s[i]), true
	case TagI64:
		return NewI64(vec.i64s[i]), true
	case TagI128:
		if vec.i128s[i] == nil {
			return TaggedValue{}, false
		}
		return *vec.i128s[i], true
	case TagISize:
		return NewISize(vec.isizes[i]), true
	case TagF32:
		return NewF32(vec.f32s[i]), true
	case TagF64:
		return NewF64(vec.f64s[i]), true
	case TagInternedString:
		return NewInternedString(vec.strs[i]), true
	case TagOwnedString:
		return NewOwnedString(vec.strs[i]), true
	default:
		return TaggedValue{}, false
	}
}

// DataCategoryOf returns the DataCategory of a vector's scalar tag.
func DataCategoryOf(vec *TaggedVector) DataCategory {
	return CategoryOf(vec.tag)
}
