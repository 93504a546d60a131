package timetable

import (
	"testing"
	"time"
)

func TestResolveSemesterStart(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	june := time.Date(2026, time.June, 15, 9, 0, 0, 0, loc)
	november := time.Date(2025, time.November, 20, 9, 0, 0, 0, loc)

	tests := []struct {
		name     string
		duration string
		now      time.Time
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "explicit year",
			duration: "26 Jan 2026",
			now:      june,
			want:     time.Date(2026, time.January, 26, 12, 0, 0, 0, loc),
		},
		{
			name:     "full span with year at the end",
			duration: "26 Jan - 10 May 2026",
			now:      november,
			// The trailing year belongs to the end date; the start year
			// is inferred (Jan start seen from November -> next year).
			want: time.Date(2026, time.January, 26, 12, 0, 0, 0, loc),
		},
		{
			name:     "missing year, same-year start",
			duration: "26 Jan",
			now:      june,
			want:     time.Date(2026, time.January, 26, 12, 0, 0, 0, loc),
		},
		{
			name:     "missing year, year-end generation of Jan semester",
			duration: "26 Jan",
			now:      november,
			want:     time.Date(2026, time.January, 26, 12, 0, 0, 0, loc),
		},
		{
			name:     "missing year, late-year start stays this year",
			duration: "15 Sep",
			now:      november,
			want:     time.Date(2025, time.September, 15, 12, 0, 0, 0, loc),
		},
		{
			name:     "empty string",
			duration: "",
			now:      june,
			wantErr:  true,
		},
		{
			name:     "whitespace only",
			duration: "   ",
			now:      june,
			wantErr:  true,
		},
		{
			name:     "unmatched pattern",
			duration: "Jan 26 2026",
			now:      june,
			wantErr:  true,
		},
		{
			name:     "unknown month",
			duration: "26 Fry 2026",
			now:      june,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSemesterStart(tt.duration, tt.now, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSemesterStart(%q) error = %v, wantErr %v", tt.duration, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveSemesterStart(%q) = %v, want %v", tt.duration, got, tt.want)
			}
			if got.Hour() != 12 {
				t.Errorf("start should be anchored at local noon, got hour %d", got.Hour())
			}
		})
	}
}
