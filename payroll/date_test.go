package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := payroll.ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2025-13-40", "10/03/2025"} {
		_, err := payroll.ParseDate(in)
		assert.ErrorIs(t, err, payroll.ErrInvalidDate, "input %q", in)
	}
}

func TestPeriod_TotalDays_Inclusive(t *testing.T) {
	// Same start and end yields 1, not 0.
	d := payroll.NewDate(2025, time.March, 10)
	assert.Equal(t, 1, payroll.Period{Start: d, End: d}.TotalDays())

	p := payroll.Period{Start: payroll.NewDate(2025, time.March, 1), End: payroll.NewDate(2025, time.March, 30)}
	assert.Equal(t, 30, p.TotalDays())

	// Across a month boundary.
	q := payroll.Period{Start: payroll.NewDate(2025, time.January, 15), End: payroll.NewDate(2025, time.February, 14)}
	assert.Equal(t, 31, q.TotalDays())
}

func TestPeriod_Reversed_NotSymmetric(t *testing.T) {
	// GIVEN: a reversed range (end before start)
	// THEN: the count is non-positive and Validate rejects it - order
	// matters, a forward range is required

	fwd := payroll.Period{Start: payroll.NewDate(2025, time.March, 1), End: payroll.NewDate(2025, time.March, 10)}
	rev := payroll.Period{Start: fwd.End, End: fwd.Start}

	assert.Equal(t, 10, fwd.TotalDays())
	assert.LessOrEqual(t, rev.TotalDays(), 0)
	assert.NotEqual(t, fwd.TotalDays(), rev.TotalDays())

	assert.NoError(t, fwd.Validate())
	assert.ErrorIs(t, rev.Validate(), payroll.ErrInvalidPeriod)
}

func TestPeriod_Contains_InclusiveBounds(t *testing.T) {
	p := payroll.Period{Start: payroll.NewDate(2025, time.March, 1), End: payroll.NewDate(2025, time.March, 31)}

	assert.True(t, p.Contains(payroll.NewDate(2025, time.March, 1)))
	assert.True(t, p.Contains(payroll.NewDate(2025, time.March, 31)))
	assert.True(t, p.Contains(payroll.NewDate(2025, time.March, 15)))
	assert.False(t, p.Contains(payroll.NewDate(2025, time.February, 28)))
	assert.False(t, p.Contains(payroll.NewDate(2025, time.April, 1)))
}

func TestParsePeriod_BadEndpoint(t *testing.T) {
	_, err := payroll.ParsePeriod("2025-03-01", "garbage")
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)

	_, err = payroll.ParsePeriod("garbage", "2025-03-01")
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)
}

func TestDaysBetween_Signed(t *testing.T) {
	a := payroll.NewDate(2025, time.March, 1)
	b := payroll.NewDate(2025, time.March, 10)

	assert.Equal(t, 9, payroll.DaysBetween(a, b))
	assert.Equal(t, -9, payroll.DaysBetween(b, a))
	assert.Equal(t, 0, payroll.DaysBetween(a, a))
}
