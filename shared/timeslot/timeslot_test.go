package timeslot_test

import (
	"errors"
	"fmt"
	"schedly/shared/timeslot"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:00", want: 540},
		{input: "16:30", want: 990},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "9:30", wantErr: true},
		{input: "09:3", wantErr: true},
		{input: " 9:30", wantErr: true},
		{input: "009:30", wantErr: true},
		{input: "not-a-time", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := timeslot.Minutes(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, timeslot.ErrInvalidWallClock)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for minutes := 0; minutes < 24*60; minutes++ {
		formatted, err := timeslot.FormatMinutes(minutes)
		assert.NoError(t, err)

		back, err := timeslot.Minutes(formatted)
		assert.NoError(t, err)
		assert.Equal(t, minutes, back)
	}
}

func TestFormatMinutesOutOfRange(t *testing.T) {
	for _, minutes := range []int{-1, 1440, 1475} {
		_, err := timeslot.FormatMinutes(minutes)
		assert.ErrorIs(t, err, timeslot.ErrMinutesOutOfDay, "minutes=%d", minutes)
	}
}

func TestWeekdayInZone(t *testing.T) {
	tests := []struct {
		name string
		date string
		zone string
		want int
	}{
		{name: "monday utc", date: "2026-01-05", zone: "UTC", want: 1},
		{name: "sunday utc", date: "2026-01-04", zone: "UTC", want: 0},
		{name: "saturday utc", date: "2026-01-03", zone: "UTC", want: 6},
		{name: "same civil date in jakarta", date: "2026-01-05", zone: "Asia/Jakarta", want: 1},
		{name: "dst spring forward day", date: "2026-03-08", zone: "America/New_York", want: 0},
		{name: "dst fall back day", date: "2026-11-01", zone: "America/New_York", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeslot.WeekdayInZone(tt.date, tt.zone)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every Monday-UTC date matches weekday 1 in UTC and nothing adjacent does.
func TestWeekdayInZoneMondayProperty(t *testing.T) {
	mondays := []string{"2026-01-05", "2026-01-12", "2026-06-01", "2026-12-28"}
	for _, date := range mondays {
		got, err := timeslot.WeekdayInZone(date, "UTC")
		assert.NoError(t, err)
		assert.Equal(t, 1, got, "date=%s", date)
	}

	notMondays := []string{"2026-01-04", "2026-01-06"}
	for _, date := range notMondays {
		got, err := timeslot.WeekdayInZone(date, "UTC")
		assert.NoError(t, err)
		assert.NotEqual(t, 1, got, "date=%s", date)
	}
}

func TestWeekdayInZoneErrors(t *testing.T) {
	_, err := timeslot.WeekdayInZone("2026-01-05", "Not/AZone")
	assert.ErrorIs(t, err, timeslot.ErrInvalidTimezone)

	_, err = timeslot.WeekdayInZone("05-01-2026", "UTC")
	assert.Error(t, err)
}

// Monday 09:00-17:00 with a 30 minute meeting and 5 minute buffer packs on a
// 35 minute stride: 09:00, 09:35, ..., 16:00. 16:35 is excluded because
// 16:35+30 runs past 17:00.
func TestGenerateThirtyWithFiveBuffer(t *testing.T) {
	slots := timeslot.Generate(540, 1020, 30, 5)

	expected := []int{}
	for v := 540; v+30 <= 1020; v += 35 {
		expected = append(expected, v)
	}

	assert.Equal(t, expected, slots)
	assert.Equal(t, 540, slots[0])
	assert.Equal(t, 960, slots[len(slots)-1]) // 16:00

	formatted := make([]string, len(slots))
	for i, slot := range slots {
		var err error
		formatted[i], err = timeslot.FormatMinutes(slot)
		assert.NoError(t, err)
	}

	assert.Equal(t, "09:00", formatted[0])
	assert.Equal(t, "09:35", formatted[1])
	assert.Equal(t, "16:00", formatted[len(formatted)-1])
}

func TestGenerateProperties(t *testing.T) {
	cases := []struct {
		start, end, duration, buffer int
	}{
		{540, 1020, 30, 5},
		{540, 1020, 30, 0},
		{0, 1439, 60, 15},
		{600, 660, 60, 0},
		{600, 659, 60, 0},
		{600, 600, 30, 0},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d-%d/%d+%d", c.start, c.end, c.duration, c.buffer), func(t *testing.T) {
			slots := timeslot.Generate(c.start, c.end, c.duration, c.buffer)

			for i, slot := range slots {
				assert.LessOrEqual(t, slot+c.duration, c.end, "slot must fit inside the window")

				if i > 0 {
					assert.Greater(t, slot, slots[i-1], "slots must be strictly increasing")
					assert.Equal(t, c.duration+c.buffer, slot-slots[i-1], "stride must be duration+buffer")
				}
			}
		})
	}
}

func TestGenerateDegenerateInput(t *testing.T) {
	assert.Empty(t, timeslot.Generate(540, 1020, 0, 5))
	assert.Empty(t, timeslot.Generate(540, 1020, -30, 5))
	assert.Empty(t, timeslot.Generate(540, 1020, 30, -1))
	assert.Empty(t, timeslot.Generate(1020, 540, 30, 5))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{name: "identical", aStart: 600, aEnd: 630, bStart: 600, bEnd: 630, want: true},
		{name: "partial overlap", aStart: 600, aEnd: 630, bStart: 615, bEnd: 645, want: true},
		{name: "contained", aStart: 600, aEnd: 700, bStart: 615, bEnd: 645, want: true},
		{name: "touching end to start", aStart: 600, aEnd: 630, bStart: 630, bEnd: 660, want: false},
		{name: "touching start to end", aStart: 630, aEnd: 660, bStart: 600, bEnd: 630, want: false},
		{name: "disjoint", aStart: 600, aEnd: 630, bStart: 700, bEnd: 730, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeslot.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, timeslot.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap must be symmetric")
		})
	}
}

func TestMinutesErrorKind(t *testing.T) {
	_, err := timeslot.Minutes("25:99")
	if !errors.Is(err, timeslot.ErrInvalidWallClock) {
		t.Errorf("expected ErrInvalidWallClock, got %v", err)
	}
}
