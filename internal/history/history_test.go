package history

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history", "carbonfocus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSaveAndByDate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	readings := engine.Readings{engine.KeyElectricityKWh: 10, engine.KeyBusKm: 5}
	entry, err := store.Save(ctx, day("2026-08-30"), readings, 2.93)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", entry.Date)
	assert.InDelta(t, 2.93, entry.TotalKg, 1e-9)
	assert.NotEmpty(t, entry.ID)

	got, err := store.ByDate(ctx, day("2026-08-30"))
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.InDelta(t, 10, got.Readings[engine.KeyElectricityKWh], 1e-9)
}

func TestSaveUpsertsByDate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, day("2026-08-30"), engine.Readings{engine.KeyBusKm: 5}, 0.6)
	require.NoError(t, err)

	second, err := store.Save(ctx, day("2026-08-30"), engine.Readings{engine.KeyBusKm: 10}, 1.2)
	require.NoError(t, err)

	// Re-saving a date overwrites the payload but keeps the original row.
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 1.2, second.TotalKg, 1e-9)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRangeAndDailyTotals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	dates := []string{"2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"}
	for i, d := range dates {
		_, err := store.Save(ctx, day(d), engine.Readings{}, float64(i+1))
		require.NoError(t, err)
	}

	entries, err := store.Range(ctx, day("2026-08-26"), day("2026-08-27"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-26", entries[0].Date)
	assert.Equal(t, "2026-08-27", entries[1].Date)

	totals, err := store.DailyTotals(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, totals)
}

func TestTotalFor(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, day("2026-08-30"), engine.Readings{}, 4.5)
	require.NoError(t, err)

	total, ok, err := store.TotalFor(ctx, day("2026-08-30"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 4.5, total, 1e-9)

	_, ok, err = store.TotalFor(ctx, day("2026-08-29"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreak(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Three consecutive days, then a gap, then one more.
	for _, d := range []string{"2026-08-24", "2026-08-28", "2026-08-29", "2026-08-30"} {
		_, err := store.Save(ctx, day(d), engine.Readings{}, 1)
		require.NoError(t, err)
	}

	streak, err := store.Streak(ctx, day("2026-08-30"))
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	streak, err = store.Streak(ctx, day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestBadges(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, d := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		_, err := store.Save(ctx, day(d), engine.Readings{}, 20+float64(i)*2)
		require.NoError(t, err)
	}

	badges, err := store.Badges(ctx, day("2026-08-30"), 5.0)
	require.NoError(t, err)
	assert.Contains(t, badges, "First entry logged")
	assert.Contains(t, badges, "Low impact day")
	assert.Contains(t, badges, "3-day streak")
	assert.Contains(t, badges, "Better than your week")
	assert.NotContains(t, badges, "7-day streak")
}

func TestExportCSV(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, day("2026-08-30"), engine.Readings{engine.KeyBusKm: 5}, 0.6)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,total_kg,readings", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2026-08-30,0.60,"))
	assert.Contains(t, lines[1], "bus_km")
}

func TestDailyTotalsEmptyStore(t *testing.T) {
	store := openTestStore(t)

	totals, err := store.DailyTotals(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
