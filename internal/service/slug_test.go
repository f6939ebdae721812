package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Lin Wei-Min", "lin-wei-min"},
		{"Brutalist  Blackwork!", "brutalist-blackwork"},
		{"Already-Slugged", "already-slugged"},
		{"  spaced out  ", "spaced-out"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
