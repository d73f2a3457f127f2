package helper

import "testing"

func TestStrToBytes(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"128", 128},
		{"256b", 256},
		{"2K", 2048},
		{"4k", 4096},
		{"256m", 268435456},
		{"1g", 1073741824},
	}
	for _, tc := range cases {
		if got := StrToBytes(tc.in); got != tc.want {
			t.Errorf("StrToBytes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
