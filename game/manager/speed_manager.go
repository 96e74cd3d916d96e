package manager

import (
	"time"

	"classic-snake/game/types"
)

// SpeedManager ramps the tick interval down as food is eaten.
type SpeedManager struct {
	Base   time.Duration
	Factor float64
	Min    time.Duration
}

func NewSpeedManager(base, min time.Duration) *SpeedManager {
	if base <= 0 {
		base = types.BaseTickInterval
	}
	if min <= 0 {
		min = types.MinTickInterval
	}
	if min > base {
		min = base
	}
	return &SpeedManager{
		Base:   base,
		Factor: types.SpeedupFactor,
		Min:    min,
	}
}

// Next returns the interval after one food, floored at Min.
func (sm *SpeedManager) Next(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * sm.Factor)
	if next < sm.Min {
		return sm.Min
	}
	return next
}
