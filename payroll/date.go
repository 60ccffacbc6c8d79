package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day (payments and periods are date-stamped, not timed)
// =============================================================================

// Date is a calendar day, normalized to midnight UTC. Comparisons are
// calendar comparisons; time-of-day never participates.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "2006-01-02" date. Failures wrap ErrInvalidDate
// so the display layer can fall back to a placeholder instead of crashing.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic and properties
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }

func (d Date) String() string { return d.t.Format(dateLayout) }

// DaysBetween returns the signed number of days from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive date range. A same-day period spans one day.
type Period struct {
	Start Date
	End   Date
}

// ParsePeriod builds a period from two ISO dates. Either endpoint failing
// to parse reports ErrInvalidDate.
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Period{}, err
	}
	return Period{Start: s, End: e}, nil
}

// TotalDays returns the inclusive day count: same start and end yields 1.
// A reversed period yields a non-positive count; callers that need a
// non-degenerate range must Validate first.
func (p Period) TotalDays() int {
	return DaysBetween(p.Start, p.End) + 1
}

// Contains reports whether the date falls within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Validate reports ErrInvalidPeriod when End precedes Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: %s after %s", ErrInvalidPeriod, p.Start, p.End)
	}
	return nil
}

func (p Period) String() string {
	return p.Start.String() + " to " + p.End.String()
}
