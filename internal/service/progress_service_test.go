package service

import (
	"testing"
	"time"

	"singlang/internal/models"
)

func TestComputeStreak(t *testing.T) {
	today := date(2026, time.March, 10)
	daysAgo := func(offsets ...int) []time.Time {
		days := make([]time.Time, len(offsets))
		for i, off := range offsets {
			days[i] = today.AddDate(0, 0, -off)
		}
		return days
	}

	tests := []struct {
		name string
		days []time.Time
		want models.Streak
	}{
		{
			name: "no logins",
			days: nil,
			want: models.Streak{},
		},
		{
			name: "single login today",
			days: daysAgo(0),
			want: models.Streak{CurrentStreak: 1, BestStreak: 1},
		},
		{
			name: "run ending today with an older break",
			days: daysAgo(0, 1, 2, 5),
			want: models.Streak{CurrentStreak: 3, BestStreak: 3},
		},
		{
			name: "no login today zeroes the current streak",
			days: daysAgo(3, 4),
			want: models.Streak{CurrentStreak: 0, BestStreak: 2},
		},
		{
			name: "best streak can predate the current one",
			days: daysAgo(0, 1, 5, 6, 7, 8),
			want: models.Streak{CurrentStreak: 2, BestStreak: 4},
		},
		{
			name: "two day gap breaks the run",
			days: daysAgo(0, 2, 4),
			want: models.Streak{CurrentStreak: 1, BestStreak: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeStreak(tt.days, today)
			if got != tt.want {
				t.Errorf("computeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
