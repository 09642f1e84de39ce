package holiday

import "time"

// StubCalendar is an in-memory Calendar for tests.
type StubCalendar struct {
	days map[string]string
}

func NewStubCalendar() *StubCalendar {
	return &StubCalendar{days: make(map[string]string)}
}

func (s *StubCalendar) Add(date time.Time, name string) {
	s.days[date.Format("2006-01-02")] = name
}

func (s *StubCalendar) IsHoliday(date time.Time) (bool, string) {
	name, ok := s.days[date.Format("2006-01-02")]
	return ok, name
}

func (s *StubCalendar) Cleanup() {
	s.days = make(map[string]string)
}
