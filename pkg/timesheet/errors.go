package timesheet

import "fmt"

// ParseError reports a single unparseable time token. It is non-fatal: the
// offending ride is dropped (and audited) while the rest of the day is still
// computed.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse time %q", e.Raw)
}

// ConfigError reports an out-of-range engine option. It is fatal: ComputeMonth
// rejects the whole run before building any ledger.
type ConfigError struct {
	Option string
	Value  int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value %d for option %s", e.Value, e.Option)
}
