package timetable

import (
	"testing"
	"time"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8:00 AM", "08:00:00", false},
		{"12:00 AM", "00:00:00", false},
		{"12:00 PM", "12:00:00", false},
		{"12:30 AM", "00:30:00", false},
		{"1:05 PM", "13:05:00", false},
		{"11:59 PM", "23:59:00", false},
		{"11:00 am", "11:00:00", false},

		{"", "", true},
		{"8:00", "", true},
		{"8 AM", "", true},
		{"ab:cd PM", "", true},
		{"8:xx PM", "", true},
		{"13:00 PM", "", true},
		{"0:30 AM", "", true},
		{"8:60 AM", "", true},
		{"8:00 XM", "", true},
		{"8:00 AM PM", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := To24Hour(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("To24Hour(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("To24Hour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatStampUsesWallClock(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	// 00:30 local is the previous day in UTC; the stamp must keep the
	// local date.
	at := time.Date(2026, time.January, 5, 0, 30, 0, 0, loc)
	if got, want := FormatStamp(at), "20260105T003000"; got != want {
		t.Errorf("FormatStamp() = %q, want %q", got, want)
	}
}

func TestMonthFromAbbrev(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Month
		wantErr bool
	}{
		{"Jan", time.January, false},
		{"dec", time.December, false},
		{" May ", time.May, false},
		{"SEP", time.September, false},
		{"Janu", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := monthFromAbbrev(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("monthFromAbbrev(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("monthFromAbbrev(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
