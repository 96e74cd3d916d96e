package session

import (
	"time"

	"classic-snake/game"
)

// FlashDuration is how long the board overlay stays visible.
const FlashDuration = 120 * time.Millisecond

type FlashKind int

const (
	FlashNone FlashKind = iota
	FlashFood
	FlashGameOver
)

type flash struct {
	kind  FlashKind
	until time.Time
}

func flashFor(ev game.Event) FlashKind {
	switch {
	case ev.Type == game.EventFoodEaten:
		return FlashFood
	case ev.Type.Terminal():
		return FlashGameOver
	}
	return FlashNone
}

func (f *flash) trigger(kind FlashKind, now time.Time) {
	if kind == FlashNone {
		return
	}
	f.kind = kind
	f.until = now.Add(FlashDuration)
}

func (f *flash) active(now time.Time) FlashKind {
	if f.kind == FlashNone || !now.Before(f.until) {
		return FlashNone
	}
	return f.kind
}
