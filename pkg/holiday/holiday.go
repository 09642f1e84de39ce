// Package holiday provides the holiday-calendar capability consumed by the
// time-sheet engine. Calendars are injected by the caller, so the engine never
// hard-codes a jurisdiction.
package holiday

import (
	"context"
	"time"
)

type Calendar interface {
	// IsHoliday reports whether the date is a statutory holiday and, if so,
	// the holiday's name.
	IsHoliday(date time.Time) (bool, string)
}

// YearLoader is implemented by calendars that fetch their holiday data from a
// remote source. Callers preload the years they are about to query so that
// IsHoliday itself never blocks.
type YearLoader interface {
	LoadYear(ctx context.Context, year int) error
}
