package utils

import "testing"

func TestFormatReal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{25000, "R$ 25.000,00"},
		{1234.5, "R$ 1.234,50"},
		{-99.99, "-R$ 99,99"},
	}
	for _, tc := range cases {
		if got := FormatReal(tc.in); got != tc.want {
			t.Fatalf("FormatReal(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Casa   na   praia "); got != "Casa na praia" {
		t.Fatalf("got %q", got)
	}
}
