package timeline

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase passthrough", in: "golang", want: "golang"},
		{name: "uppercase folded", in: "DevOps", want: "devops"},
		{name: "spaces become hyphens", in: "dev log", want: "dev-log"},
		{name: "punctuation collapsed", in: "C++ / Rust!", want: "c-rust"},
		{name: "leading and trailing junk", in: "  #go  ", want: "go"},
		{name: "digits kept", in: "year 2024", want: "year-2024"},
		{name: "empty", in: "", want: ""},
		{name: "only junk", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
