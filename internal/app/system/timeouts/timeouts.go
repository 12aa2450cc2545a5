// internal/app/system/timeouts/timeouts.go
package timeouts

import "time"

// Shared context deadlines. Handlers derive their contexts from the
// request and apply these instead of sprinkling literals.

// Ping is the budget for a health-check database ping.
func Ping() time.Duration { return 2 * time.Second }

// Query is the budget for a single read or write against Mongo.
func Query() time.Duration { return 10 * time.Second }

// Upload is the budget for storing a blob plus the owning document write.
func Upload() time.Duration { return 30 * time.Second }
