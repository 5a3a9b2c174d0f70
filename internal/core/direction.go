package core

import "fmt"

// Direction is one of the four cardinal facings, or none.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionUp
	DirectionRight
	DirectionDown
	DirectionLeft
	DirectionStill
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionStill:
		return "still"
	default:
		return "unknown"
	}
}

// ParseDirection is the inverse of String. Unrecognized names map to
// DirectionUnknown and ok=false.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirectionUp, true
	case "right":
		return DirectionRight, true
	case "down":
		return DirectionDown, true
	case "left":
		return DirectionLeft, true
	case "still":
		return DirectionStill, true
	}
	return DirectionUnknown, false
}

// UnmarshalText lets directions be written by name in YAML files.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return &ParseError{Kind: "direction", Value: string(text)}
	}
	*d = parsed
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Offset returns the (col, row) step for one tile in this direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionRight:
		return 1, 0
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vector returns the unit vector for this direction.
func (d Direction) Vector() Vector2d {
	dx, dy := d.Offset()
	return Vector2d{X: float64(dx), Y: float64(dy)}
}

// IsMovement reports whether the direction points somewhere.
func (d Direction) IsMovement() bool {
	dx, dy := d.Offset()
	return dx != 0 || dy != 0
}

// Opposite returns the reverse facing.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionRight:
		return DirectionLeft
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	default:
		return d
	}
}

// TurnedRight rotates the facing clockwise.
func (d Direction) TurnedRight() Direction {
	switch d {
	case DirectionUp:
		return DirectionRight
	case DirectionRight:
		return DirectionDown
	case DirectionDown:
		return DirectionLeft
	case DirectionLeft:
		return DirectionUp
	default:
		return d
	}
}

// TurnedLeft rotates the facing counter-clockwise.
func (d Direction) TurnedLeft() Direction {
	return d.TurnedRight().Opposite()
}

// DirectionFromOffset maps a one-tile step back to a facing.
func DirectionFromOffset(dx, dy int) Direction {
	switch {
	case dx == 0 && dy < 0:
		return DirectionUp
	case dx > 0 && dy == 0:
		return DirectionRight
	case dx == 0 && dy > 0:
		return DirectionDown
	case dx < 0 && dy == 0:
		return DirectionLeft
	case dx == 0 && dy == 0:
		return DirectionStill
	default:
		return DirectionUnknown
	}
}

// ParseError reports a value that does not belong to a closed set of names.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("core: unknown %s %q", e.Kind, e.Value)
}
