// Package layout computes window geometry: board placement and cell size,
// the side panel, the D-pad and the Start button. It has no raylib
// dependency so it can be tested headless.
package layout

import (
	"classic-snake/game"
	"classic-snake/game/types"
)

const (
	MinBoard      = 240 // smallest board side in pixels
	BorderPadding = 10
	PanelDivisor  = 7 // side panel takes 1/PanelDivisor of the width
	minPanel      = 150
	minButton     = 28
	maxButton     = 64
)

type Rect struct {
	X, Y, W, H int32
}

func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (int32, int32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Control identifies an on-screen button.
type Control int

const (
	ControlNone Control = iota
	ControlStart
	ControlUp
	ControlDown
	ControlLeft
	ControlRight
)

// Direction maps a D-pad control to its direction.
func (c Control) Direction() types.Direction {
	switch c {
	case ControlUp:
		return types.Up
	case ControlDown:
		return types.Down
	case ControlLeft:
		return types.Left
	case ControlRight:
		return types.Right
	}
	return types.None
}

type Layout struct {
	ScreenW, ScreenH int32
	GridSize         int
	CellSize         int32
	Board            Rect
	Panel            Rect
	Graph            Rect
	Start            Rect
	DPad             map[Control]Rect
	FontSize         int32
	LineHeight       int32
}

// Compute lays out a screen of w×h pixels for an n×n grid. The board never
// shrinks below MinBoard, even if that means overflowing a tiny window.
func Compute(w, h int32, n int) Layout {
	if n <= 0 {
		n = types.DefaultGridSize
	}
	l := Layout{ScreenW: w, ScreenH: h, GridSize: n}

	panelW := max(w/PanelDivisor, minPanel)
	gameW := max(w-panelW, 0)
	l.Panel = Rect{X: gameW, Y: 0, W: panelW, H: h}

	button := clamp(min(gameW, h)/12, minButton, maxButton)
	controlsH := 3*button + BorderPadding

	available := min(gameW-2*BorderPadding, h-2*BorderPadding-controlsH)
	available = max(available, MinBoard)
	l.CellSize = available / int32(n)
	if l.CellSize*int32(n) < MinBoard {
		l.CellSize = (MinBoard + int32(n) - 1) / int32(n)
	}
	side := l.CellSize * int32(n)
	l.Board = Rect{
		X: max((gameW-side)/2, BorderPadding),
		Y: BorderPadding,
		W: side,
		H: side,
	}

	// D-pad centered under the board, Start button to its left.
	cx, _ := l.Board.Center()
	top := l.Board.Y + l.Board.H + BorderPadding
	l.DPad = map[Control]Rect{
		ControlUp:    {X: cx - button/2, Y: top, W: button, H: button},
		ControlLeft:  {X: cx - button/2 - button, Y: top + button, W: button, H: button},
		ControlRight: {X: cx + button/2, Y: top + button, W: button, H: button},
		ControlDown:  {X: cx - button/2, Y: top + 2*button, W: button, H: button},
	}
	l.Start = Rect{X: l.Board.X, Y: top + button, W: min(3*button, cx-button/2-button-l.Board.X-BorderPadding), H: button}
	if l.Start.W < 2*button {
		l.Start.W = 2 * button
	}

	l.FontSize = max(min(h/45, panelW/15), 10)
	l.LineHeight = max(min(h/35, panelW/12), l.FontSize+2)

	graphH := h / 5
	l.Graph = Rect{
		X: l.Panel.X + BorderPadding,
		Y: h - graphH - 2*l.FontSize,
		W: panelW - 2*BorderPadding,
		H: graphH,
	}
	return l
}

// CellRect returns the pixel rectangle of grid cell p.
func (l Layout) CellRect(p types.Point) Rect {
	return Rect{
		X: l.Board.X + int32(p.X)*l.CellSize,
		Y: l.Board.Y + int32(p.Y)*l.CellSize,
		W: l.CellSize,
		H: l.CellSize,
	}
}

// ControlAt returns the button under the pointer.
func (l Layout) ControlAt(x, y int32) Control {
	if l.Start.Contains(x, y) {
		return ControlStart
	}
	for c, r := range l.DPad {
		if r.Contains(x, y) {
			return c
		}
	}
	return ControlNone
}

// StartLabel is the caption of the Start button for the given state.
func StartLabel(running bool) string {
	if running {
		return "Restart"
	}
	return "Start"
}

func clamp(v, lo, hi int32) int32 {
	return max(lo, min(v, hi))
}

// Overlay returns the message drawn over the board, or "" while playing.
func Overlay(state game.RunState, paused bool, last game.EventType) string {
	switch {
	case state == game.NotStarted:
		return "Press Space to start"
	case state == game.GameOver && last == game.EventWon:
		return "Board full! You win"
	case state == game.GameOver:
		return "Game Over! Press Space"
	case paused:
		return "Paused"
	}
	return ""
}
