package session

import (
	"context"
	"time"

	"classic-snake/input"
)

// FrameInterval is the default redraw period of Run (about 60 fps).
const FrameInterval = time.Second / 60

// Run drives the session from a single goroutine until ctx is cancelled,
// the actions channel is closed or a quit action arrives. Actions produced
// on other goroutines reach the game only through the channel. draw is
// called after every frame.
func (s *Session) Run(ctx context.Context, actions <-chan input.Action, frame time.Duration, draw func(now time.Time)) error {
	if frame <= 0 {
		frame = FrameInterval
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case action, ok := <-actions:
			if !ok {
				return nil
			}
			now := time.Now()
			if !s.Handle(action, now) {
				return nil
			}
			draw(now)
		case now := <-ticker.C:
			s.Update(now)
			draw(now)
		}
	}
}
