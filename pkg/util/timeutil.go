package util

import "time"

// NowUTC is the clock used across the pipeline. Report timestamps, token
// expiry, and the rendered "Prepared" date all flow from here; the report
// service swaps it for a fixed clock in tests.
func NowUTC() time.Time {
	return time.Now().UTC()
}
