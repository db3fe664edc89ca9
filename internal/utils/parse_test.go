package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"5", 1, 5},
		{"", 7, 7},
		{"abc", 7, 7},
		{"-3", 7, -3},
		{" 5", 7, 7}, // no trimming; callers pass raw query values
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 50); got != 1 {
		t.Fatalf("below: %d", got)
	}
	if got := ClampInt(99, 1, 50); got != 50 {
		t.Fatalf("above: %d", got)
	}
	if got := ClampInt(25, 1, 50); got != 25 {
		t.Fatalf("inside: %d", got)
	}
}
