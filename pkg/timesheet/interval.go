package timesheet

const (
	minutesPerDay = 24 * 60

	// The night window is 23:00-06:00; its end is anchored past midnight.
	nightStartMinute = 23 * 60
	nightEndMinute   = 30 * 60
)

// RideInterval is one recorded start/end pair representing a single continuous
// ride. An end before its start means the ride crosses midnight.
type RideInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// span is a ride anchored to a common day: minutes since that day's midnight,
// with the end extended past 1440 when the ride wraps. All overnight-aware
// arithmetic (duration, night overlap, gap computation) goes through this one
// anchoring rule.
type span struct {
	start int
	end   int
}

func newSpan(r RideInterval) span {
	s := r.Start.Minutes()
	e := r.End.Minutes()
	if e < s {
		e += minutesPerDay
	}
	return span{start: s, end: e}
}

func (s span) interval() RideInterval {
	return RideInterval{
		Start: TimeOfDay{Hour: s.start / 60, Minute: s.start % 60},
		End:   TimeOfDay{Hour: (s.end % minutesPerDay) / 60, Minute: s.end % 60},
	}
}

func (s span) nightOverlapMinutes() int {
	overlap := min(s.end, nightEndMinute) - max(s.start, nightStartMinute)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// DurationHours returns the elapsed hours from start to end on the same
// calendar day, treating an end before the start as the following day.
// Absent endpoints contribute nothing.
func DurationHours(start, end *TimeOfDay) float64 {
	if start == nil || end == nil {
		return 0
	}
	sp := newSpan(RideInterval{Start: *start, End: *end})
	return float64(sp.end-sp.start) / 60
}

// NightOverlapHours returns the overlap, in hours, between the shift interval
// and the 23:00-06:00 night window, both overnight-aware. The result never
// exceeds the shift's own duration nor the window's 7-hour span.
func NightOverlapHours(start, end *TimeOfDay) float64 {
	if start == nil || end == nil {
		return 0
	}
	sp := newSpan(RideInterval{Start: *start, End: *end})
	return float64(sp.nightOverlapMinutes()) / 60
}
