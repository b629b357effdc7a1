package domain

import "time"

const (
	// MaxPendingAge is how long a pending materialization may run before
	// other callers treat it as abandoned and may take over the lock
	MaxPendingAge = 5 * time.Minute

	// ErrorCooldown is the minimum wait before retrying a failed materialization
	ErrorCooldown = time.Hour

	// PendingWait is how long an observer of a pending asset waits before
	// re-checking once and falling back to the placeholder
	PendingWait = 300 * time.Millisecond

	// ResolveBatchWidth is the number of concurrent materializations a
	// batch resolve may run
	ResolveBatchWidth = 5

	// AssetRefreshTTL is how long a ready asset is served before a
	// background re-materialization is scheduled
	AssetRefreshTTL = 30 * 24 * time.Hour
)
