package core

import "testing"

func TestCategoryOfBoolAndStringsAreCategorical(t *testing.T) {
	for _, tag := range []ScalarTag{TagBool, TagInternedString, TagOwnedString} {
		if got := CategoryOf(tag); got != CategoryCategorical {
			t.Errorf("CategoryOf(%s) = %v, want CategoryCategorical", tag, got)
		}
	}
}

func TestCategoryOfIntegersAreOrdinal(t *testing.T) {
	for _, tag := range []ScalarTag{TagU8, TagU16, TagU32, TagU64, TagU128, TagUSize, TagI8, TagI16, TagI32, TagI64, TagI128, TagISize} {
		if got := CategoryOf(tag); got != CategoryOrdinal {
			t.Errorf("CategoryOf(%s) = %v, want CategoryOrdinal", tag, got)
		}
	}
}

func TestCategoryOfFloatsAreContinuous(t *testing.T) {
	for _, tag := range []ScalarTag{TagF32, TagF64} {
		if got := CategoryOf(tag); got != CategoryContinuous {
			t.Errorf("CategoryOf(%s) = %v, want CategoryContinuous", tag, got)
		}
	}
}
