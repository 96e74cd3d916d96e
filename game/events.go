package game

import (
	"time"

	"classic-snake/game/manager"
	"classic-snake/game/types"
)

// RunState is the lifecycle state of a game
type RunState int

const (
	NotStarted RunState = iota
	Running
	GameOver
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "not_started"
	}
}

// EventType identifies the transition produced by a Step
type EventType int

const (
	EventNone EventType = iota
	EventMoved
	EventFoodEaten
	EventGameOver
	EventWon
)

func (t EventType) String() string {
	switch t {
	case EventMoved:
		return "moved"
	case EventFoodEaten:
		return "food_eaten"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	default:
		return "none"
	}
}

// Terminal reports whether the event ended the game
func (t EventType) Terminal() bool {
	return t == EventGameOver || t == EventWon
}

// DeathCause explains why a game ended
type DeathCause string

const (
	CauseNone      DeathCause = ""
	CauseWall      DeathCause = "wall-collision"
	CauseSelf      DeathCause = "self-collision"
	CauseBoardFull DeathCause = "board-full"
)

func causeFromCollision(c manager.CollisionType) DeathCause {
	switch c {
	case manager.WallCollision:
		return CauseWall
	case manager.SelfCollision:
		return CauseSelf
	default:
		return CauseNone
	}
}

// Event is emitted by Step for renderers, sound and persistence to react to.
type Event struct {
	Type     EventType
	Tick     uint64
	Head     types.Point
	Score    int
	Length   int
	Interval time.Duration
	Cause    DeathCause
	NewBest  bool
}

func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
