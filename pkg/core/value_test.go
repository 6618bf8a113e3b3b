package core

import (
	"math/big"
	"testing"
)

func TestFromTextRoundTrip(t *testing.T) {
	cases := []struct {
		text string
		tag  ScalarTag
		want string
	}{
		{"true", TagBool, "true"},
		{"42", TagI32, "42"},
		{"3.5", TagF64, "3.5"},
		{"hello", TagOwnedString, "hello"},
		{"  7  ", TagU8, "7"},
	}
	for _, c := range cases {
		v, err := FromText(c.text, c.tag)
		if err != nil {
			t.Fatalf("FromText(%q, %s): unexpected error: %v", c.text, c.tag, err)
		}
		if v.Tag() != c.tag {
			t.Errorf("FromText(%q, %s): tag = %s, want %s", c.text, c.tag, v.Tag(), c.tag)
		}
		if got := v.String(); got != c.want {
			t.Errorf("FromText(%q, %s).String() = %q, want %q", c.text, c.tag, got, c.want)
		}
	}
}

func TestFromTextRejectsMismatch(t *testing.T) {
	if _, err := FromText("not-a-number", TagI32); err == nil {
		t.Fatal("expected error parsing non-numeric text as i32")
	}
}

func TestFromTextUnknownTag(t *testing.T) {
	if _, err := FromText("x", TagUnknown); err == nil {
		t.Fatal("expected error parsing into TagUnknown")
	}
}

func TestU128RoundTrip(t *testing.T) {
	big128, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	v := NewU128(big128)
	got, ok := v.AsU128()
	if !ok {
		t.Fatal("AsU128 reported not-ok for a u128 value")
	}
	if got.Cmp(big128) != 0 {
		t.Errorf("AsU128() = %s, want %s", got, big128)
	}
}

func TestAsFloat64Widening(t *testing.T) {
	v := NewI16(-7)
	f, ok := v.AsFloat64()
	if !ok || f != -7 {
		t.Errorf("AsFloat64() = (%v, %v), want (-7, true)", f, ok)
	}

	s := NewOwnedString("x")
	if _, ok := s.AsFloat64(); ok {
		t.Error("AsFloat64() on a string value should report not-ok")
	}
}
