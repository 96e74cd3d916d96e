package types

import "testing"

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Point
	}{
		{Up, Point{0, -1}},
		{Right, Point{1, 0}},
		{Down, Point{0, 1}},
		{Left, Point{-1, 0}},
		{None, Point{0, 0}},
	}

	for _, tt := range tests {
		if got := tt.dir.Vector(); got != tt.want {
			t.Errorf("%v.Vector() = %v, want %v", tt.dir, got, tt.want)
		}
		if tt.dir != None {
			if back := DirectionFromVector(tt.want); back != tt.dir {
				t.Errorf("DirectionFromVector(%v) = %v, want %v", tt.want, back, tt.dir)
			}
		}
	}

	if d := DirectionFromVector(Point{1, 1}); d != None {
		t.Errorf("diagonal vector should map to None, got %v", d)
	}
}

func TestOpposite(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		if !d.IsOpposite(d.Opposite()) {
			t.Errorf("%v should be opposite of %v", d, d.Opposite())
		}
		if d.IsOpposite(d) {
			t.Errorf("%v should not be opposite of itself", d)
		}
		v, o := d.Vector(), d.Opposite().Vector()
		if v.X != -o.X || v.Y != -o.Y {
			t.Errorf("opposite vector of %v is %v", v, o)
		}
	}

	if None.IsOpposite(None) {
		t.Error("None must never be opposite")
	}
}

func TestTurns(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		if d.TurnLeft().TurnRight() != d {
			t.Errorf("left then right from %v should return to it", d)
		}
		if d.TurnRight().TurnRight() != d.Opposite() {
			t.Errorf("two right turns from %v should reverse it", d)
		}
	}
	if Up.TurnLeft() != Left || Up.TurnRight() != Right {
		t.Error("unexpected turns from Up")
	}
}

func TestGridContains(t *testing.T) {
	g := Grid{Size: 20}
	inside := []Point{{0, 0}, {19, 19}, {10, 0}, {0, 19}}
	outside := []Point{{-1, 0}, {0, -1}, {20, 5}, {5, 20}}

	for _, p := range inside {
		if !g.Contains(p) {
			t.Errorf("%v should be inside", p)
		}
	}
	for _, p := range outside {
		if g.Contains(p) {
			t.Errorf("%v should be outside", p)
		}
	}
	if g.Cells() != 400 {
		t.Errorf("Cells() = %d, want 400", g.Cells())
	}
}

func TestIsAdjacent(t *testing.T) {
	if !IsAdjacent(Point{5, 5}, Point{5, 6}) {
		t.Error("vertical neighbours should be adjacent")
	}
	if IsAdjacent(Point{5, 5}, Point{4, 6}) {
		t.Error("diagonal cells are not adjacent")
	}
	if IsAdjacent(Point{5, 5}, Point{5, 5}) {
		t.Error("a cell is not adjacent to itself")
	}
}
