package service

import (
	"testing"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueByMonth(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	totals := []store.OrderTotal{
		{Amount: decimal.RequireFromString("100.00"), CreatedAt: time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.RequireFromString("50.50"), CreatedAt: time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.RequireFromString("200.00"), CreatedAt: time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)},
		// Outside the six-month window, must not count.
		{Amount: decimal.RequireFromString("999.00"), CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	bars := RevenueByMonth(totals, now, 6)
	require.Len(t, bars, 6)

	names := make([]string, 0, len(bars))
	for _, b := range bars {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}, names)

	assert.True(t, bars[3].Value.Equal(decimal.RequireFromString("200.00")), "June bar: %s", bars[3].Value)
	assert.True(t, bars[4].Value.IsZero(), "July has no orders")
	assert.True(t, bars[5].Value.Equal(decimal.RequireFromString("150.50")), "August bar: %s", bars[5].Value)
}

func TestRevenueByMonthEmptyTotals(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	bars := RevenueByMonth(nil, now, 6)
	require.Len(t, bars, 6)
	assert.Equal(t, "Aug", bars[0].Name)
	assert.Equal(t, "Jan", bars[5].Name)
	for _, b := range bars {
		assert.True(t, b.Value.IsZero())
	}
}

func TestRevenueByMonthYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	totals := []store.OrderTotal{
		{Amount: decimal.RequireFromString("75.00"), CreatedAt: time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC)},
	}

	bars := RevenueByMonth(totals, now, 6)
	require.Len(t, bars, 6)
	assert.Equal(t, "Sep", bars[0].Name)
	assert.Equal(t, "Dec", bars[3].Name)
	assert.True(t, bars[3].Value.Equal(decimal.RequireFromString("75.00")))
}
