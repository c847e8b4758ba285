package testutil

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Epoch is the default start time of test clocks.
var Epoch = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// NewMockClock creates a mock clock that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Epoch)
}
