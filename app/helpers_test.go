package app

import (
	"testing"
	"time"
)

func TestMonthFromNumber(t *testing.T) {
	cases := []struct {
		input   int
		want    time.Month
		wantErr bool
	}{
		{input: 1, want: time.January},
		{input: 6, want: time.June},
		{input: 12, want: time.December},
		{input: 0, wantErr: true},
		{input: 13, wantErr: true},
		{input: -3, wantErr: true},
	}

	for _, tc := range cases {
		got, err := monthFromNumber(tc.input)

		if tc.wantErr {
			if err == nil {
				t.Errorf("Expected an error for month %d", tc.input)
			}

			continue
		}

		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if got != tc.want {
			t.Errorf("Expected: %v, but got: %v", tc.want, got)
		}
	}
}
