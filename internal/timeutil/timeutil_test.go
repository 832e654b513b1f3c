package timeutil

import (
	"testing"
	"time"
)

func TestLogicalDateString(t *testing.T) {
	cases := []struct {
		name      string
		time      time.Time
		resetHour int
		want      string
	}{
		{
			name:      "midnight reset keeps the calendar date",
			time:      time.Date(2026, time.March, 10, 0, 30, 0, 0, time.Local),
			resetHour: 0,
			want:      "2026-03-10",
		},
		{
			name:      "before the reset hour belongs to the previous day",
			time:      time.Date(2026, time.March, 10, 2, 30, 0, 0, time.Local),
			resetHour: 3,
			want:      "2026-03-09",
		},
		{
			name:      "at the reset hour belongs to the current day",
			time:      time.Date(2026, time.March, 10, 3, 0, 0, 0, time.Local),
			resetHour: 3,
			want:      "2026-03-10",
		},
		{
			name:      "after the reset hour belongs to the current day",
			time:      time.Date(2026, time.March, 10, 23, 59, 0, 0, time.Local),
			resetHour: 3,
			want:      "2026-03-10",
		},
		{
			name:      "month boundary",
			time:      time.Date(2026, time.March, 1, 1, 0, 0, 0, time.Local),
			resetHour: 3,
			want:      "2026-02-28",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LogicalDateString(tc.time, tc.resetHour)
			if got != tc.want {
				t.Errorf("Expected: %s, but got: %s", tc.want, got)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		time time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			time: time.Date(2026, time.March, 9, 15, 0, 0, 0, time.Local),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local),
		},
		{
			name: "wednesday maps back to monday",
			time: time.Date(2026, time.March, 11, 8, 0, 0, 0, time.Local),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday belongs to the preceding monday",
			time: time.Date(2026, time.March, 15, 23, 0, 0, 0, time.Local),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.time)
			if !got.Equal(tc.want) {
				t.Errorf("Expected: %v, but got: %v", tc.want, got)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, time.February)

	wantStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local)

	if !start.Equal(wantStart) {
		t.Errorf("Expected start to be: %v, but got: %v", wantStart, start)
	}

	if !end.Equal(wantEnd) {
		t.Errorf("Expected end to be: %v, but got: %v", wantEnd, end)
	}
}

func TestDiffDays(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "forward",
			from: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local),
			to:   time.Date(2026, time.March, 13, 0, 0, 0, 0, time.Local),
			want: 3,
		},
		{
			name: "backward",
			from: time.Date(2026, time.March, 13, 0, 0, 0, 0, time.Local),
			to:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local),
			want: -3,
		},
		{
			name: "same day",
			from: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local),
			to:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "dst transition still rounds to whole days",
			from: time.Date(2026, time.March, 27, 0, 0, 0, 0, time.Local),
			to:   time.Date(2026, time.March, 30, 0, 0, 0, 0, time.Local),
			want: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DiffDays(tc.from, tc.to)
			if got != tc.want {
				t.Errorf("Expected: %d, but got: %d", tc.want, got)
			}
		})
	}
}

func TestMillisRoundTrip(t *testing.T) {
	original := time.Date(2026, time.March, 10, 12, 34, 56, 0, time.Local)

	got := FromMillis(ToMillis(original))
	if !got.Equal(original) {
		t.Errorf("Expected: %v, but got: %v", original, got)
	}
}
