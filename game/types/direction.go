package types

// Direction is one of the four cardinal directions
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Vector converts a Direction into its unit displacement. Y grows downwards.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

// IsOpposite reports whether other is the exact reverse of d
func (d Direction) IsOpposite(other Direction) bool {
	return d != None && d.Opposite() == other
}

// TurnLeft returns the direction after a 90° counter-clockwise rotation.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a 90° clockwise rotation.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// DirectionFromVector maps a unit vector back to a Direction. Anything that
// is not a unit vector maps to None.
func DirectionFromVector(v Point) Direction {
	switch v {
	case Point{X: 0, Y: -1}:
		return Up
	case Point{X: 1, Y: 0}:
		return Right
	case Point{X: 0, Y: 1}:
		return Down
	case Point{X: -1, Y: 0}:
		return Left
	default:
		return None
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
