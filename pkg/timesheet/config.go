package timesheet

// Config carries the recognized aggregation thresholds, all in minutes.
type Config struct {
	// MergeGapMinutes is the largest gap between two rides that still counts
	// as one continuous duty period.
	MergeGapMinutes int
	// BreakMinGapMinutes is the threshold a gap must exceed to be an
	// accountable break.
	BreakMinGapMinutes int
	// BreakCapMinutes bounds a single qualifying gap and the day's break
	// total; longer gaps are off-duty, not break.
	BreakCapMinutes int
}

func DefaultConfig() Config {
	return Config{
		MergeGapMinutes:    15,
		BreakMinGapMinutes: 15,
		BreakCapMinutes:    120,
	}
}

// Validate rejects out-of-range options before any ledger is built.
func (c Config) Validate() error {
	if c.MergeGapMinutes < 0 {
		return &ConfigError{Option: "mergeGapMinutes", Value: c.MergeGapMinutes}
	}
	if c.BreakMinGapMinutes < 0 {
		return &ConfigError{Option: "breakMinGapMinutes", Value: c.BreakMinGapMinutes}
	}
	if c.BreakCapMinutes < c.BreakMinGapMinutes {
		return &ConfigError{Option: "breakCapMinutes", Value: c.BreakCapMinutes}
	}
	return nil
}
