package timeline

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "plain date",
			in:   "2024-12-20",
			want: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339",
			in:   "2024-12-20T08:30:00Z",
			want: time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "datetime without offset",
			in:   "2024-12-20T08:30:00",
			want: time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "datetime with space",
			in:   "2024-12-20 08:30:00",
			want: time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "surrounding whitespace",
			in:   "  2024-12-20  ",
			want: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		},
		{name: "garbage", in: "next tuesday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	in := time.Date(2024, 12, 20, 23, 59, 59, 123, time.UTC)
	want := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	if got := dayOf(in); !got.Equal(want) {
		t.Errorf("dayOf() = %v, want %v", got, want)
	}
}

func TestPrimaryTag(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{name: "first tag wins", rec: Record{Tags: []string{"go", "notes"}}, want: "go"},
		{name: "trimmed", rec: Record{Tags: []string{" go "}}, want: "go"},
		{name: "no tags", rec: Record{}, want: ""},
		{name: "blank tag", rec: Record{Tags: []string{"   "}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.PrimaryTag(); got != tt.want {
				t.Errorf("PrimaryTag() = %q, want %q", got, tt.want)
			}
		})
	}
}
