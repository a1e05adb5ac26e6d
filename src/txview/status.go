package txview

import "time"

type Status string

const (
	StatusProcessed Status = "Processed"
	StatusPending   Status = "Pending"
)

// DefaultPendingThreshold is how long a transaction stays Pending.
const DefaultPendingThreshold = 2 * 24 * time.Hour

// ResolveStatus reports Processed only when date is strictly older than
// threshold. A date sitting exactly on the threshold is still Pending.
func ResolveStatus(date, now time.Time, threshold time.Duration) Status {
	if now.Sub(date) > threshold {
		return StatusProcessed
	}
	return StatusPending
}
