package core

import (
	"errors"
	"testing"
)

func TestDistanceNumeric(t *testing.T) {
	d, err := Distance(NewF64(1.5), NewF64(4.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 2.5 {
		t.Errorf("Distance(1.5, 4.0) = %v, want 2.5", d)
	}
}

func TestDistanceCategorical(t *testing.T) {
	d, err := Distance(NewOwnedString("a"), NewOwnedString("a"))
	if err != nil || d != 0 {
		t.Errorf("Distance(a, a) = (%v, %v), want (0, nil)", d, err)
	}
	d, err = Distance(NewOwnedString("a"), NewOwnedString("b"))
	if err != nil || d != 1 {
		t.Errorf("Distance(a, b) = (%v, %v), want (1, nil)", d, err)
	}
}

func TestDistanceBoolIsIdentityNotNumeric(t *testing.T) {
	d, err := Distance(NewBool(true), NewBool(true))
	if err != nil || d != 0 {
		t.Errorf("Distance(true, true) = (%v, %v), want (0, nil)", d, err)
	}
	d, err = Distance(NewBool(true), NewBool(false))
	if err != nil || d != 1 {
		t.Errorf("Distance(true, false) = (%v, %v), want (1, nil)", d, err)
	}
}

func TestDistanceTypeMismatch(t *testing.T) {
	_, err := Distance(NewI32(1), NewF64(1))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Distance across tags: err = %v, want ErrTypeMismatch", err)
	}
}
