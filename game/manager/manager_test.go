package manager

import (
	"testing"
	"time"

	"classic-snake/game/entity"
	"classic-snake/game/types"
)

func TestCheckCollision(t *testing.T) {
	grid := types.Grid{Size: 20}
	cm := NewCollisionManager(grid)
	snake := &entity.Snake{Body: []types.Point{{5, 5}, {4, 5}, {3, 5}}}

	tests := []struct {
		name string
		pos  types.Point
		want CollisionType
	}{
		{"free cell", types.Point{6, 5}, NoCollision},
		{"right wall", types.Point{20, 5}, WallCollision},
		{"left wall", types.Point{-1, 5}, WallCollision},
		{"top wall", types.Point{5, -1}, WallCollision},
		{"bottom wall", types.Point{5, 20}, WallCollision},
		{"body", types.Point{4, 5}, SelfCollision},
		{"tail counts", types.Point{3, 5}, SelfCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cm.CheckCollision(tt.pos, snake); got != tt.want {
				t.Errorf("CheckCollision(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestGenerateFoodAvoidsSnake(t *testing.T) {
	grid := types.Grid{Size: 5}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 42)

	// Cover every row but the last.
	body := make([]types.Point, 0, 20)
	for y := 0; y < 4; y++ {
		for i := 0; i < 5; i++ {
			x := i
			if y%2 == 1 {
				x = 4 - i
			}
			body = append(body, types.Point{X: x, Y: y})
		}
	}
	snake := &entity.Snake{Body: body}

	for i := 0; i < 200; i++ {
		food, ok := fm.GenerateFood(snake)
		if !ok {
			t.Fatal("expected a free cell")
		}
		if snake.Occupies(food) {
			t.Fatalf("food %v placed on the snake", food)
		}
		if !grid.Contains(food) {
			t.Fatalf("food %v outside the grid", food)
		}
	}
}

func TestGenerateFoodSingleFreeCellFallsBackToScan(t *testing.T) {
	grid := types.Grid{Size: 4}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 7)

	free := types.Point{X: 2, Y: 3}
	body := make([]types.Point, 0, 15)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := types.Point{X: x, Y: y}
			if p != free {
				body = append(body, p)
			}
		}
	}
	snake := &entity.Snake{Body: body}

	food, ok := fm.GenerateFood(snake)
	if !ok {
		t.Fatal("expected the last free cell to be found")
	}
	if food != free {
		t.Errorf("expected food at %v, got %v", free, food)
	}
}

func TestGenerateFoodBoardFull(t *testing.T) {
	grid := types.Grid{Size: 2}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 1)
	snake := &entity.Snake{Body: []types.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}

	done := make(chan bool)
	go func() {
		_, ok := fm.GenerateFood(snake)
		done <- ok
	}()

	select {
	case ok := <-done:
		if ok {
			t.Error("expected no free cell on a full board")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("GenerateFood did not terminate on a full board")
	}
}

func TestGenerateFoodDeterministicForSeed(t *testing.T) {
	grid := types.Grid{Size: 20}
	snake := entity.NewSnake(types.Point{X: 6, Y: 10}, 3)

	a := NewFoodManager(grid, NewCollisionManager(grid), 99)
	b := NewFoodManager(grid, NewCollisionManager(grid), 99)
	for i := 0; i < 10; i++ {
		fa, _ := a.GenerateFood(snake)
		fb, _ := b.GenerateFood(snake)
		if fa != fb {
			t.Fatalf("draw %d differs: %v vs %v", i, fa, fb)
		}
	}
}

func TestSpeedManagerNext(t *testing.T) {
	sm := NewSpeedManager(125*time.Millisecond, 60*time.Millisecond)

	next := sm.Next(125 * time.Millisecond)
	want := time.Duration(float64(125*time.Millisecond) * 0.97)
	if next != want {
		t.Errorf("Next(125ms) = %v, want %v", next, want)
	}

	if got := sm.Next(61 * time.Millisecond); got != 60*time.Millisecond {
		t.Errorf("expected floor at 60ms, got %v", got)
	}
	if got := sm.Next(60 * time.Millisecond); got != 60*time.Millisecond {
		t.Errorf("expected to stay at floor, got %v", got)
	}

	// Repeated speedups converge on the floor and never go below it.
	d := sm.Base
	for i := 0; i < 200; i++ {
		d = sm.Next(d)
		if d < sm.Min {
			t.Fatalf("interval %v dropped below floor", d)
		}
	}
	if d != sm.Min {
		t.Errorf("expected to reach the floor, got %v", d)
	}
}

func TestSpeedManagerDefaults(t *testing.T) {
	sm := NewSpeedManager(0, 0)
	if sm.Base != types.BaseTickInterval {
		t.Errorf("expected default base %v, got %v", types.BaseTickInterval, sm.Base)
	}
	if sm.Min != types.MinTickInterval {
		t.Errorf("expected default min %v, got %v", types.MinTickInterval, sm.Min)
	}

	clamped := NewSpeedManager(50*time.Millisecond, 80*time.Millisecond)
	if clamped.Min != clamped.Base {
		t.Errorf("min above base should clamp to base, got %v", clamped.Min)
	}
}

func TestStateManager(t *testing.T) {
	sm := NewStateManager(3)

	sm.AddPoint()
	sm.AddPoint()
	if sm.Finish() {
		t.Error("score 2 must not beat best 3")
	}
	if sm.GetHighScore() != 3 {
		t.Errorf("expected best 3, got %d", sm.GetHighScore())
	}

	sm.Reset()
	for i := 0; i < 5; i++ {
		sm.AddPoint()
	}
	if !sm.Finish() {
		t.Error("score 5 should beat best 3")
	}
	if sm.GetHighScore() != 5 {
		t.Errorf("expected best 5, got %d", sm.GetHighScore())
	}

	sm.SetHighScore(4)
	if sm.GetHighScore() != 5 {
		t.Error("SetHighScore must not lower the best")
	}
}
