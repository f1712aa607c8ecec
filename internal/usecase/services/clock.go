package services

import (
	"time"

	"github.com/minibank-io/minibank/internal/domain"
)

// Verify that SystemClock implements the domain.Clock interface
var _ domain.Clock = SystemClock{}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
