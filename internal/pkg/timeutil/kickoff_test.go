package timeutil

import (
	"testing"
	"time"
)

func TestParseKickoff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // RFC3339, empty means "no parse"
	}{
		{"ISO space", "2025-09-27 19:45", "2025-09-27T19:45:00Z"},
		{"ISO T", "2025-09-27T19:45", "2025-09-27T19:45:00Z"},
		{"ISO T with Z", "2025-09-27T19:45Z", "2025-09-27T19:45:00Z"},
		{"ISO with seconds", "2025-05-01T20:00:00", "2025-05-01T20:00:00Z"},
		{"ISO with offset", "2025-05-01T20:00:00+02:00", "2025-05-01T18:00:00Z"},
		{"dotted with time", "27.09.2025 19:45", "2025-09-27T19:45:00Z"},
		{"dotted date only", "27.09.2025", "2025-09-27T00:00:00Z"},
		{"slashed with time", "27/09/2025 19:45", "2025-09-27T19:45:00Z"},
		{"embedded in row text", "Arsenal - Chelsea 27.09.2025 19:45 2.10 3.30", "2025-09-27T19:45:00Z"},
		{"empty", "", ""},
		{"garbage", "kickoff at some point", ""},
		{"bare time", "19:45", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKickoff(tt.input)
			if tt.want == "" {
				if ok {
					t.Fatalf("ParseKickoff(%q) = %v, want no parse", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseKickoff(%q) failed, want %s", tt.input, tt.want)
			}
			want, err := time.Parse(time.RFC3339, tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseKickoff(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestFromUnix(t *testing.T) {
	got := FromUnix(1746129600) // 2025-05-01T20:00:00Z
	want := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("FromUnix = %v, want %v", got, want)
	}
}
