package domain

import "time"

// Clock decouples services from the wall clock for deterministic tests.
type Clock interface {
	Now() time.Time
}
