package config

import (
	"testing"
)

func TestParseGoal(t *testing.T) {
	cases := []struct {
		input       string
		wantHours   int
		wantMinutes int
		wantErr     bool
	}{
		{input: "22", wantHours: 22},
		{input: "22h", wantHours: 22},
		{input: "22h30m", wantHours: 22, wantMinutes: 30},
		{input: "22:30", wantHours: 22, wantMinutes: 30},
		{input: " 20:00 ", wantHours: 20},
		{input: "0:30", wantMinutes: 30},
		{input: "23:59", wantHours: 23, wantMinutes: 59},
		{input: "24", wantErr: true},
		{input: "24:00", wantErr: true},
		{input: "22:60", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "22:-5", wantErr: true},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "22:30:15", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			hours, minutes, err := ParseGoal(tc.input)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q", tc.input)
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if hours != tc.wantHours || minutes != tc.wantMinutes {
				t.Errorf(
					"Expected %d hours and %d minutes, but got: %d and %d",
					tc.wantHours,
					tc.wantMinutes,
					hours,
					minutes,
				)
			}
		})
	}
}
