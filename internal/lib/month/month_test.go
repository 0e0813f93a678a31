package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "обычный месяц",
			month:     3,
			year:      2025,
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "декабрь переходит в следующий год",
			month:     12,
			year:      2025,
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "февраль високосного года",
			month:     2,
			year:      2024,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.month, tt.year)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWindow_HalfOpen(t *testing.T) {
	start, end := Window(6, 2025)

	// последний момент месяца входит в окно, начало следующего — нет
	lastMoment := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.True(t, !lastMoment.Before(start) && lastMoment.Before(end))
	assert.False(t, end.Before(end))
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		monthStr  string
		yearStr   string
		wantMonth int
		wantYear  int
		wantErr   bool
	}{
		{
			name:      "пустые параметры дают текущий месяц",
			monthStr:  "",
			yearStr:   "",
			wantMonth: 8,
			wantYear:  2025,
		},
		{
			name:      "явные месяц и год",
			monthStr:  "2",
			yearStr:   "2024",
			wantMonth: 2,
			wantYear:  2024,
		},
		{
			name:      "только месяц, год текущий",
			monthStr:  "1",
			yearStr:   "",
			wantMonth: 1,
			wantYear:  2025,
		},
		{
			name:     "месяц вне диапазона",
			monthStr: "13",
			yearStr:  "2024",
			wantErr:  true,
		},
		{
			name:     "нулевой месяц",
			monthStr: "0",
			yearStr:  "2024",
			wantErr:  true,
		},
		{
			name:     "нечисловой месяц",
			monthStr: "march",
			yearStr:  "2024",
			wantErr:  true,
		},
		{
			name:     "отрицательный год",
			monthStr: "5",
			yearStr:  "-1",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, year, err := Resolve(tt.monthStr, tt.yearStr, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, m)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}
