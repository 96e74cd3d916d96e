// Package input turns raw key names, on-screen buttons and swipe gestures
// into actions the session understands. Only unit directions leave here.
package input

import (
	"math"
	"strings"

	"classic-snake/game/types"
)

// SwipeThreshold is the minimum gesture length, in pixels, that counts.
const SwipeThreshold = 20.0

type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionStart
	ActionPause
	ActionQuit
	ActionTurnLeft
	ActionTurnRight
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionUp:        "up",
	ActionDown:      "down",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionStart:     "start",
	ActionPause:     "pause",
	ActionQuit:      "quit",
	ActionTurnLeft:  "turn-left",
	ActionTurnRight: "turn-right",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Direction returns the absolute direction for movement actions and None
// for everything else.
func (a Action) Direction() types.Direction {
	switch a {
	case ActionUp:
		return types.Up
	case ActionDown:
		return types.Down
	case ActionLeft:
		return types.Left
	case ActionRight:
		return types.Right
	}
	return types.None
}

// IsMovement reports whether the action steers the snake.
func (a Action) IsMovement() bool {
	return a.Direction() != types.None || a == ActionTurnLeft || a == ActionTurnRight
}

// Resolve maps a movement action to an absolute direction given the
// snake's current heading. Relative turns need the heading; absolute ones
// ignore it.
func (a Action) Resolve(current types.Direction) types.Direction {
	switch a {
	case ActionTurnLeft:
		return current.TurnLeft()
	case ActionTurnRight:
		return current.TurnRight()
	}
	return a.Direction()
}

func DefaultBindings() map[string]Action {
	return map[string]Action{
		"up":     ActionUp,
		"w":      ActionUp,
		"down":   ActionDown,
		"s":      ActionDown,
		"left":   ActionLeft,
		"a":      ActionLeft,
		"right":  ActionRight,
		"d":      ActionRight,
		"space":  ActionStart,
		"enter":  ActionStart,
		"r":      ActionStart,
		"p":      ActionPause,
		"q":      ActionQuit,
		"escape": ActionQuit,
		",":      ActionTurnLeft,
		".":      ActionTurnRight,
	}
}

// Mapper resolves key names to actions. Key names are case-insensitive.
type Mapper struct {
	bindings map[string]Action
}

func NewMapper() *Mapper {
	return &Mapper{bindings: DefaultBindings()}
}

func (m *Mapper) Key(key string) Action {
	return m.bindings[normalize(key)]
}

func normalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	case " ":
		return "space"
	case "esc":
		return "escape"
	case "return":
		return "enter"
	}
	return key
}

// Swipe classifies a drag by its dominant axis. Gestures shorter than
// threshold on both axes return None. Screen Y grows downward.
func Swipe(dx, dy, threshold float64) types.Direction {
	if math.Max(math.Abs(dx), math.Abs(dy)) < threshold {
		return types.None
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return types.Right
		}
		return types.Left
	}
	if dy > 0 {
		return types.Down
	}
	return types.Up
}

// Gesture tracks a single pointer drag from press to release.
type Gesture struct {
	startX, startY float64
	active         bool
}

func (g *Gesture) Begin(x, y float64) {
	g.startX, g.startY = x, y
	g.active = true
}

// End finishes the drag and returns its direction, or None.
func (g *Gesture) End(x, y float64) types.Direction {
	if !g.active {
		return types.None
	}
	g.active = false
	return Swipe(x-g.startX, y-g.startY, SwipeThreshold)
}

func (g *Gesture) Active() bool {
	return g.active
}
