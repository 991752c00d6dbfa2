// Package common provides shared utilities for equitylens
package common

import "time"

// FreshnessDefault is the fallback TTL for cached provider data. The
// provider plan refreshes slowly and rate-limits aggressively, so every
// data kind shares one window: at most one fetch per (kind, ticker) per
// window.
//
// Quotes are intraday snapshots yet still get the 10-minute window; the
// dashboard is a research view, not a trading terminal.
const FreshnessDefault = 10 * time.Minute

// IsFresh returns true if updated is within ttl of now.
// A zero timestamp is never fresh.
func IsFresh(now, updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
