package activity

import "time"

// Period is a calendar window anchored on a reference instant.
type Period int

// Supported periods.
const (
	Week Period = iota
	Month
	Year
)

// String returns the period name.
func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// Calendar fixes the time zone used to cut days, weeks, months and years.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar for loc. A nil location means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's time zone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Date is a civil date in the calendar's time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t.
func (c Calendar) DateOf(t time.Time) Date {
	y, m, d := t.In(c.Location()).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Prev returns the day before d.
func (d Date) Prev() Date {
	y, m, day := time.Date(d.Year, d.Month, d.Day-1, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Bounds returns the half-open window [start, end) of period p that
// contains ref.
func (c Calendar) Bounds(p Period, ref time.Time) (start, end time.Time) {
	loc := c.Location()
	local := ref.In(loc)
	y, m, d := local.Date()

	switch p {
	case Week:
		// Weekday is 0 for Sunday; shift so Monday is 0.
		offset := (int(local.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		end = time.Date(y, m, d-offset+7, 0, 0, 0, 0, loc)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	}
	return start, end
}
