package entity

import "classic-snake/game/types"

// Snake is an ordered body, head first. Every segment is adjacent to the
// next one and no two segments share a cell.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
}

// NewSnake lays out a horizontal body of the given length with the head at
// head and the rest trailing to the left, moving right.
func NewSnake(head types.Point, length int) *Snake {
	body := make([]types.Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, types.Point{X: head.X - i, Y: head.Y})
	}
	return &Snake{
		Body:      body,
		Direction: types.Right,
	}
}

// Move prepends the new head
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment, tail included, sits on p
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Cells returns the occupied cells as a set
func (s *Snake) Cells() map[types.Point]bool {
	cells := make(map[types.Point]bool, len(s.Body))
	for _, part := range s.Body {
		cells[part] = true
	}
	return cells
}

// Clone returns a deep copy
func (s *Snake) Clone() *Snake {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return &Snake{Body: body, Direction: s.Direction}
}

// Valid checks the body invariants: contiguous and without duplicates.
func (s *Snake) Valid() bool {
	seen := make(map[types.Point]bool, len(s.Body))
	for i, part := range s.Body {
		if seen[part] {
			return false
		}
		seen[part] = true
		if i > 0 && !types.IsAdjacent(s.Body[i-1], part) {
			return false
		}
	}
	return true
}
