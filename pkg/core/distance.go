package core

import (
	"fmt"
	"math"
)

// Distance measures how far apart two values of the same ScalarTag are.
// Numeric (discrete and continuous) tags use absolute difference; the bool
// and string tags are categorical and use identity distance (0 when equal,
// 1 otherwise), matching spec.md §4.1's "external pure-function collaborator"
// description and original_source's fuzzy-search-by-distance behavior
// (src/algorithm/predict.rs's `.distance(&test_reference_value)` call).
func Distance(a, b TaggedValue) (float64, error) {
	if a.Tag() != b.Tag() {
		return 0, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, a.Tag(), b.Tag())
	}

	switch CategoryOf(a.Tag()) {
	case CategoryCategorical:
		if a.Tag() == TagBool {
			ab, _ := a.AsBool()
			bb, _ := b.AsBool()
			if ab == bb {
				return 0, nil
			}
			return 1, nil
		}
		as, _ := a.AsString()
		bs, _ := b.AsString()
		if as == bs {
			return 0, nil
		}
		return 1, nil
	case CategoryOrdinal, CategoryContinuous:
		af, ok := a.AsFloat64()
		if !ok {
			return 0, fmt.Errorf("%w: %s has no numeric representation", ErrTypeMismatch, a.Tag())
		}
		bf, _ := b.AsFloat64()
		return math.Abs(af - bf), nil
	default:
		return 0, fmt.Errorf("%w: cannot measure distance for %s", ErrInvalidType, a.Tag())
	}
}
