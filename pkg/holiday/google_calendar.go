package holiday

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultGoogleCalendarID is Google's public German holiday feed.
const DefaultGoogleCalendarID = "de.german#holiday@group.v.calendar.google.com"

// GoogleCalendar reads statutory holidays from a public Google Calendar
// holiday feed. Years must be preloaded with LoadYear; IsHoliday only serves
// the local cache and never touches the network.
type GoogleCalendar struct {
	svc        *calendar.Service
	calendarID string

	mu    sync.RWMutex
	days  map[string]string
	years map[int]bool
}

func NewGoogleCalendar(ctx context.Context, apiKey string, calendarID string) (*GoogleCalendar, error) {
	if calendarID == "" {
		calendarID = DefaultGoogleCalendarID
	}
	svc, err := calendar.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendar{
		svc:        svc,
		calendarID: calendarID,
		days:       make(map[string]string),
		years:      make(map[int]bool),
	}, nil
}

// LoadYear fetches all holiday events of the given year into the cache.
// Loading an already cached year is a no-op.
func (c *GoogleCalendar) LoadYear(ctx context.Context, year int) error {
	c.mu.RLock()
	loaded := c.years[year]
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	timeMin := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	timeMax := timeMin.AddDate(1, 0, 0)
	events, err := c.svc.Events.List(c.calendarID).
		Context(ctx).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(100).
		Do()
	if err != nil {
		return fmt.Errorf("failed to list holiday events for %d: %w", year, err)
	}

	c.mu.Lock()
	for _, item := range events.Items {
		// Holiday feed entries are all-day events carrying a plain date.
		if item.Start == nil || item.Start.Date == "" {
			continue
		}
		c.days[item.Start.Date] = item.Summary
	}
	c.years[year] = true
	c.mu.Unlock()

	log.Debugf("loaded %d holiday events for %d from calendar %s", len(events.Items), year, c.calendarID)
	return nil
}

func (c *GoogleCalendar) IsHoliday(date time.Time) (bool, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.days[date.Format("2006-01-02")]
	return ok, name
}
