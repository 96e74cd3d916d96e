package game

import (
	"time"

	"classic-snake/game/types"
)

// Snapshot is an immutable copy of the game handed to renderers and other
// readers that must not touch the live simulation.
type Snapshot struct {
	GridSize  int             `json:"gridSize"`
	Snake     []types.Point   `json:"snake"`
	Food      types.Point     `json:"food"`
	HasFood   bool            `json:"hasFood"`
	Direction types.Direction `json:"direction"`
	Score     int             `json:"score"`
	BestScore int             `json:"bestScore"`
	Interval  time.Duration   `json:"intervalNs"`
	State     RunState        `json:"state"`
	Ticks     uint64          `json:"ticks"`
	LastEvent EventType       `json:"lastEvent"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		GridSize:  g.Grid.Size,
		Snake:     g.Body(),
		Food:      g.food,
		HasFood:   g.hasFood,
		Direction: g.snake.Direction,
		Score:     g.stateMgr.GetScore(),
		BestScore: g.stateMgr.GetHighScore(),
		Interval:  g.interval,
		State:     g.state,
		Ticks:     g.ticks,
		LastEvent: g.last.Type,
	}
}

// Head returns the head of the snake in the snapshot
func (s Snapshot) Head() types.Point {
	if len(s.Snake) == 0 {
		return types.Point{}
	}
	return s.Snake[0]
}
