package activity

import "time"

// Summary is the activity derived from a set of card creation times.
type Summary struct {
	Streak         int
	CardsThisWeek  int
	CardsThisMonth int
	CardsThisYear  int
}

// Summarize computes the streak and window counts as of ref. Creation
// times after ref are ignored.
func (c Calendar) Summarize(created []time.Time, ref time.Time) Summary {
	return Summary{
		Streak:         c.Streak(created, ref),
		CardsThisWeek:  c.CountIn(Week, created, ref),
		CardsThisMonth: c.CountIn(Month, created, ref),
		CardsThisYear:  c.CountIn(Year, created, ref),
	}
}

// CountIn counts the creation times that fall in the period containing
// ref and not after ref.
func (c Calendar) CountIn(p Period, created []time.Time, ref time.Time) int {
	start, end := c.Bounds(p, ref)
	count := 0
	for _, t := range created {
		if t.After(ref) {
			continue
		}
		if !t.Before(start) && t.Before(end) {
			count++
		}
	}
	return count
}

// Streak counts consecutive days with at least one card, ending today or,
// when today has none yet, yesterday. A day without cards before that
// resets the streak to zero.
func (c Calendar) Streak(created []time.Time, ref time.Time) int {
	if len(created) == 0 {
		return 0
	}

	days := make(map[Date]struct{}, len(created))
	for _, t := range created {
		if t.After(ref) {
			continue
		}
		days[c.DateOf(t)] = struct{}{}
	}

	day := c.DateOf(ref)
	if _, ok := days[day]; !ok {
		day = day.Prev()
	}

	streak := 0
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.Prev()
	}
}
