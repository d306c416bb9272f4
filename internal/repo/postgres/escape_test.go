package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"red", "red"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\dir`, `c:\\dir`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
