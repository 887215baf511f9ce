package clock_test

import (
	"testing"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestManual_AdvanceAndSet(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)
	require.Equal(t, start, c.Now())

	c.Advance(31 * time.Minute)
	require.Equal(t, start.Add(31*time.Minute), c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())
}

func TestToday(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	ts := time.Date(2024, 6, 1, 22, 0, 0, 0, bogota)
	require.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), clock.Today(ts))
}

func TestOrSystem(t *testing.T) {
	require.IsType(t, clock.System{}, clock.OrSystem(nil))
	m := clock.NewManual(time.Time{})
	require.Same(t, m, clock.OrSystem(m))
}
