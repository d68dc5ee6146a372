package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStart(t *testing.T) {
	march := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	october := time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	september := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period string
		now    time.Time
		want   time.Time
	}{
		{"week", PeriodWeek, march, march.AddDate(0, 0, -7)},
		{"month", PeriodMonth, march, march.AddDate(0, -1, 0)},
		{"semester in spring", PeriodSemester, march, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"semester in fall", PeriodSemester, october, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"semester on september 1st", PeriodSemester, september, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"all has no bound", PeriodAll, march, time.Time{}},
		{"unknown falls back to all", "yearly", march, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, periodStart(tt.period, tt.now))
		})
	}
}
