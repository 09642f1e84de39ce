package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time without a date component. Whether an interval of
// two TimeOfDay values crosses midnight is decided by the caller: an end
// before its start means the interval wraps into the next day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// timeLayouts are tried in order when parsing a textual time token.
var timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04:05 PM"}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTime converts a raw time token into a TimeOfDay. It accepts "HH:MM",
// "HH:MM:SS", their 12-hour AM/PM variants, and the compact numeric form used
// by some ride logs (830 and 0830 both mean 08:30). An empty token is "no
// time" and yields (nil, nil); any other unparseable token yields a
// *ParseError.
func ParseTime(raw string) (*TimeOfDay, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
		}
	}

	if value, err := strconv.Atoi(trimmed); err == nil {
		hours := value / 100
		minutes := value % 100
		if hours >= 0 && hours < 24 && minutes >= 0 && minutes < 60 {
			return &TimeOfDay{Hour: hours, Minute: minutes}, nil
		}
	}

	return nil, &ParseError{Raw: raw}
}
