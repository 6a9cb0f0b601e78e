package models

import (
	"testing"
	"time"
)

func TestClassifyShow(t *testing.T) {
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  ShowClass
	}{
		{name: "future", start: now.Add(time.Hour), want: ShowUpcoming},
		{name: "past", start: now.Add(-time.Hour), want: ShowPast},
		{name: "one nanosecond ahead", start: now.Add(time.Nanosecond), want: ShowUpcoming},
		{name: "one nanosecond behind", start: now.Add(-time.Nanosecond), want: ShowPast},
		{name: "exactly now is neither", start: now, want: ShowCurrent},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyShow(tc.start, now); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
