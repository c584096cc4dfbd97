package util

import "time"

// NowUTC is the default clock for session tokens; tests swap it for a fixed time.
func NowUTC() time.Time {
	return time.Now().UTC()
}
