package holiday

import (
	"sync"
	"time"
)

// GermanState selects the federal state whose regional holidays apply on top
// of the nationwide ones.
type GermanState string

const (
	StateBadenWuerttemberg    GermanState = "BW"
	StateBavaria              GermanState = "BY"
	StateHesse                GermanState = "HE"
	StateLowerSaxony          GermanState = "NI"
	StateNorthRhineWestphalia GermanState = "NW"
	StateRhinelandPalatinate  GermanState = "RP"
	StateSaarland             GermanState = "SL"
)

// GermanCalendar computes German statutory holidays: the nationwide fixed
// dates, the Easter-relative ones, and the configured state's additions.
// Computed years are cached.
type GermanCalendar struct {
	state GermanState

	mu    sync.Mutex
	years map[int]map[string]string
}

// Germany returns a calendar for the given federal state. An empty state
// defaults to Hesse.
func Germany(state GermanState) *GermanCalendar {
	if state == "" {
		state = StateHesse
	}
	return &GermanCalendar{state: state, years: make(map[int]map[string]string)}
}

func (c *GermanCalendar) IsHoliday(date time.Time) (bool, string) {
	c.mu.Lock()
	year := date.Year()
	holidays, ok := c.years[year]
	if !ok {
		holidays = c.computeYear(year)
		c.years[year] = holidays
	}
	c.mu.Unlock()

	name, ok := holidays[date.Format("2006-01-02")]
	return ok, name
}

func (c *GermanCalendar) computeYear(year int) map[string]string {
	holidays := make(map[string]string)
	add := func(d time.Time, name string) {
		holidays[d.Format("2006-01-02")] = name
	}
	fixed := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	easter := easterSunday(year)

	add(fixed(time.January, 1), "Neujahr")
	add(easter.AddDate(0, 0, -2), "Karfreitag")
	add(easter.AddDate(0, 0, 1), "Ostermontag")
	add(fixed(time.May, 1), "Tag der Arbeit")
	add(easter.AddDate(0, 0, 39), "Christi Himmelfahrt")
	add(easter.AddDate(0, 0, 50), "Pfingstmontag")
	add(fixed(time.October, 3), "Tag der Deutschen Einheit")
	add(fixed(time.December, 25), "1. Weihnachtstag")
	add(fixed(time.December, 26), "2. Weihnachtstag")

	switch c.state {
	case StateBadenWuerttemberg, StateBavaria, StateHesse, StateNorthRhineWestphalia, StateRhinelandPalatinate, StateSaarland:
		add(easter.AddDate(0, 0, 60), "Fronleichnam")
	}
	switch c.state {
	case StateBadenWuerttemberg, StateBavaria:
		add(fixed(time.January, 6), "Heilige Drei Könige")
		add(fixed(time.November, 1), "Allerheiligen")
	case StateNorthRhineWestphalia, StateRhinelandPalatinate, StateSaarland:
		add(fixed(time.November, 1), "Allerheiligen")
	case StateLowerSaxony:
		add(fixed(time.October, 31), "Reformationstag")
	}
	if c.state == StateSaarland {
		add(fixed(time.August, 15), "Mariä Himmelfahrt")
	}

	return holidays
}

// easterSunday computes Easter Sunday with the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
