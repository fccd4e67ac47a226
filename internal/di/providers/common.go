package providers

import "time"

// Lifecycle bounds shared by the handles in this package.
const (
	shutdownTimeout = 30 * time.Second
	reindexTimeout  = time.Minute
)
