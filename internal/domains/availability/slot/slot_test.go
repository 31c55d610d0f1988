package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    int
		wantErr bool
	}{
		{name: "midnight", clock: "00:00", want: 0},
		{name: "morning", clock: "09:30", want: 570},
		{name: "last minute", clock: "23:59", want: 1439},
		{name: "missing zero padding", clock: "9:30", wantErr: true},
		{name: "hour out of range", clock: "24:00", wantErr: true},
		{name: "minute out of range", clock: "10:60", wantErr: true},
		{name: "garbage", clock: "soon", wantErr: true},
		{name: "empty", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinute(0))
	assert.Equal(t, "09:05", FormatMinute(545))
	assert.Equal(t, "23:59", FormatMinute(1439))
}

func TestGenerate(t *testing.T) {
	window := Window{OpenMinute: 540, CloseMinute: 720} // 09:00-12:00

	t.Run("steps from open time and stops before close", func(t *testing.T) {
		slots := Generate(window, 45, false, 0)

		times := make([]string, len(slots))
		for i, s := range slots {
			times[i] = s.Time
		}

		assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, times)
	})

	t.Run("slot landing exactly on close is excluded", func(t *testing.T) {
		slots := Generate(window, 60, false, 0)

		require.Len(t, slots, 3)
		assert.Equal(t, "11:00", slots[2].Time)
	})

	t.Run("future day keeps every slot available", func(t *testing.T) {
		slots := Generate(window, 45, false, 1439)

		for _, s := range slots {
			assert.True(t, s.Available, s.Time)
		}
	})

	t.Run("today suppresses slots at or before now", func(t *testing.T) {
		slots := Generate(window, 45, true, 615) // now 10:15

		byTime := make(map[string]bool, len(slots))
		for _, s := range slots {
			byTime[s.Time] = s.Available
		}

		assert.False(t, byTime["09:00"])
		assert.False(t, byTime["09:45"])
		assert.True(t, byTime["10:30"])
		assert.True(t, byTime["11:15"])
	})

	t.Run("slot exactly at now is suppressed", func(t *testing.T) {
		slots := Generate(window, 45, true, 540)

		require.NotEmpty(t, slots)
		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)
	})

	t.Run("empty window yields no slots", func(t *testing.T) {
		assert.Empty(t, Generate(Window{}, 30, false, 0))
		assert.Empty(t, Generate(Window{OpenMinute: 600, CloseMinute: 600}, 30, false, 0))
	})

	t.Run("non-positive step yields no slots", func(t *testing.T) {
		assert.Empty(t, Generate(window, 0, false, 0))
	})
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(minute int) time.Time { return day.Add(time.Duration(minute) * time.Minute) }

	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{name: "disjoint", startA: 540, endA: 600, startB: 660, endB: 720, want: false},
		{name: "back to back is legal", startA: 540, endA: 600, startB: 600, endB: 660, want: false},
		{name: "partial overlap", startA: 540, endA: 610, startB: 600, endB: 660, want: true},
		{name: "containment", startA: 540, endA: 720, startB: 600, endB: 660, want: true},
		{name: "identical", startA: 540, endA: 600, startB: 540, endB: 600, want: true},
		{name: "reversed back to back", startA: 600, endA: 660, startB: 540, endB: 600, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.startA), at(tt.endA), at(tt.startB), at(tt.endB))
			assert.Equal(t, tt.want, got)
		})
	}
}
