package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"classic-snake/game"
	"classic-snake/game/types"
	"classic-snake/session"
	"classic-snake/stats"
	"classic-snake/ui/layout"
)

const maxScores = 200 // points shown in the score graph

var (
	boardColor    = rl.NewColor(17, 24, 39, 255)
	gridColor     = rl.NewColor(31, 41, 55, 255)
	snakeColor    = rl.NewColor(34, 197, 94, 255)
	headColor     = rl.NewColor(134, 239, 172, 255)
	foodColor     = rl.NewColor(239, 68, 68, 255)
	panelColor    = rl.NewColor(30, 30, 30, 255)
	flashFood     = rl.NewColor(34, 197, 94, 255)
	flashGameOver = rl.NewColor(239, 68, 68, 255)
	buttonColor   = rl.NewColor(55, 65, 81, 255)
)

// Frame is everything one draw call needs.
type Frame struct {
	Live   session.Live
	Flash  session.FlashKind
	Stats  stats.Summary
	Scores []int
	Layout layout.Layout
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Draw(f Frame) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	snap := f.Live.Game
	l := f.Layout

	r.drawBoard(l)
	if snap.HasFood {
		cell := l.CellRect(snap.Food)
		rl.DrawRectangle(cell.X+1, cell.Y+1, cell.W-2, cell.H-2, foodColor)
	}
	r.drawSnake(l, snap)
	r.drawFlash(l, f.Flash)

	if msg := layout.Overlay(snap.State, f.Live.Paused, snap.LastEvent); msg != "" {
		size := l.FontSize * 2
		width := rl.MeasureText(msg, size)
		cx, cy := l.Board.Center()
		rl.DrawText(msg, cx-width/2, cy-size/2, size, rl.White)
	}

	r.drawControls(l, snap.State == game.Running)
	r.drawStatsPanel(f)
	rl.EndDrawing()
}

func (r *Renderer) drawBoard(l layout.Layout) {
	b := l.Board
	rl.DrawRectangle(b.X-1, b.Y-1, b.W+2, b.H+2, rl.DarkGray)
	rl.DrawRectangle(b.X, b.Y, b.W, b.H, boardColor)
	for i := int32(1); i < int32(l.GridSize); i++ {
		offset := i * l.CellSize
		rl.DrawLine(b.X+offset, b.Y, b.X+offset, b.Y+b.H, gridColor)
		rl.DrawLine(b.X, b.Y+offset, b.X+b.W, b.Y+offset, gridColor)
	}
}

func (r *Renderer) drawSnake(l layout.Layout, snap game.Snapshot) {
	// Tail first so the head is drawn on top.
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		cell := l.CellRect(snap.Snake[i])
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		rl.DrawRectangle(cell.X+1, cell.Y+1, cell.W-2, cell.H-2, color)
	}
	if len(snap.Snake) > 0 {
		r.drawHeading(l.CellRect(snap.Head()), snap.Direction)
	}
}

// drawHeading marks the head with a triangle pointing where it moves.
func (r *Renderer) drawHeading(cell layout.Rect, dir types.Direction) {
	x, y := float32(cell.X), float32(cell.Y)
	s := float32(cell.W)
	h := s / 2
	switch dir {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: x + s, Y: y + h},
			rl.Vector2{X: x + h, Y: y},
			rl.Vector2{X: x + h, Y: y + s},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: x, Y: y + h},
			rl.Vector2{X: x + h, Y: y + s},
			rl.Vector2{X: x + h, Y: y},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: x + h, Y: y + s},
			rl.Vector2{X: x + s, Y: y + h},
			rl.Vector2{X: x, Y: y + h},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: x + h, Y: y},
			rl.Vector2{X: x, Y: y + h},
			rl.Vector2{X: x + s, Y: y + h},
			rl.Yellow)
	}
}

func (r *Renderer) drawFlash(l layout.Layout, kind session.FlashKind) {
	var color rl.Color
	switch kind {
	case session.FlashFood:
		color = flashFood
	case session.FlashGameOver:
		color = flashGameOver
	default:
		return
	}
	b := l.Board
	rl.DrawRectangle(b.X, b.Y, b.W, b.H, rl.Fade(color, 0.25))
	rl.DrawRectangleLines(b.X-2, b.Y-2, b.W+4, b.H+4, color)
}

func (r *Renderer) drawControls(l layout.Layout, running bool) {
	r.drawButton(l.Start, layout.StartLabel(running), l.FontSize)

	labels := map[layout.Control]string{
		layout.ControlUp:    "^",
		layout.ControlDown:  "v",
		layout.ControlLeft:  "<",
		layout.ControlRight: ">",
	}
	for c, rect := range l.DPad {
		r.drawButton(rect, labels[c], l.FontSize)
	}
}

func (r *Renderer) drawButton(rect layout.Rect, label string, fontSize int32) {
	rl.DrawRectangle(rect.X, rect.Y, rect.W, rect.H, buttonColor)
	rl.DrawRectangleLines(rect.X, rect.Y, rect.W, rect.H, rl.Gray)
	width := rl.MeasureText(label, fontSize)
	cx, cy := rect.Center()
	rl.DrawText(label, cx-width/2, cy-fontSize/2, fontSize, rl.White)
}

func (r *Renderer) drawStatsPanel(f Frame) {
	l := f.Layout
	p := l.Panel
	fontSize, lineHeight := l.FontSize, l.LineHeight
	x := p.X + 10
	y := p.Y + 10

	rl.DrawRectangle(p.X, p.Y, p.W, p.H, panelColor)

	snap := f.Live.Game
	lines := []struct {
		text  string
		color rl.Color
	}{
		{fmt.Sprintf("Score: %d", snap.Score), rl.White},
		{fmt.Sprintf("Best: %d", snap.BestScore), rl.Yellow},
		{fmt.Sprintf("Length: %d", len(snap.Snake)), rl.White},
		{fmt.Sprintf("Speed: %.1f/s", cellsPerSecond(snap)), rl.White},
		{"", rl.White},
		{"History:", rl.White},
		{fmt.Sprintf("Games: %d", f.Stats.GamesPlayed), rl.LightGray},
		{fmt.Sprintf("Avg: %.2f", f.Stats.AverageScore), rl.LightGray},
		{fmt.Sprintf("Median: %.1f", f.Stats.MedianScore), rl.LightGray},
		{fmt.Sprintf("Max: %d", f.Stats.MaxScore), rl.LightGray},
		{fmt.Sprintf("Avg time: %.0fs", f.Stats.AverageDuration), rl.LightGray},
	}
	for _, line := range lines {
		if line.text != "" {
			rl.DrawText(line.text, x, y, fontSize, line.color)
		}
		y += lineHeight
	}

	r.drawScoreGraph(l, f.Scores, f.Stats.AverageScore)
}

func cellsPerSecond(snap game.Snapshot) float64 {
	if snap.Interval <= 0 {
		return 0
	}
	return float64(1e9) / float64(snap.Interval)
}

// drawScoreGraph plots the most recent final scores with a dashed average.
func (r *Renderer) drawScoreGraph(l layout.Layout, scores []int, avg float64) {
	g := l.Graph
	rl.DrawRectangleLines(g.X, g.Y, g.W, g.H, rl.White)
	rl.DrawText("Scores", g.X, g.Y-l.FontSize-5, l.FontSize, rl.White)

	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}

	px := func(i int) int32 {
		return g.X + int32(float32(g.W)*float32(i)/float32(maxScores))
	}
	py := func(v float64) int32 {
		return g.Y + g.H - int32(float32(g.H)*float32(v)/float32(maxScore))
	}

	for i := 1; i < len(scores); i++ {
		rl.DrawLine(px(i-1), py(float64(scores[i-1])), px(i), py(float64(scores[i])), snakeColor)
	}

	avgY := py(avg)
	for x := g.X; x < g.X+g.W; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}
