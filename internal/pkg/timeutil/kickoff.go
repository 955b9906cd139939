package timeutil

import (
	"regexp"
	"time"
)

// Providers report kickoff times in a handful of shapes. We accept
// "YYYY-MM-DD HH:MM[:SS]" (space or T, optional Z/offset) and
// "DD.MM.YYYY [HH:MM]" / "DD/MM/YYYY [HH:MM]". Anything else is treated
// as an unknown kickoff, never as an error.
var (
	isoPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2}(?::\d{2})?)(Z|[+-]\d{2}:\d{2})?`)
	dmyPattern = regexp.MustCompile(`(\d{2})[./](\d{2})[./](\d{4})(?:\D{1,3}(\d{2}:\d{2}))?`)
)

// ParseKickoff extracts a kickoff time from provider text. Timestamps with
// no offset are read as UTC, which is what every wired provider serves.
func ParseKickoff(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	if m := isoPattern.FindStringSubmatch(text); m != nil {
		hm := m[2]
		if len(hm) == 5 {
			hm += ":00"
		}
		off := m[3]
		if off == "" || off == "Z" {
			off = "+00:00"
		}
		if t, err := time.Parse(time.RFC3339, m[1]+"T"+hm+off); err == nil {
			return t.UTC(), true
		}
	}
	if m := dmyPattern.FindStringSubmatch(text); m != nil {
		hm := m[4]
		if hm == "" {
			hm = "00:00"
		}
		if t, err := time.Parse("2006-01-02 15:04", m[3]+"-"+m[2]+"-"+m[1]+" "+hm); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FromUnix converts a provider epoch timestamp to UTC.
func FromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
