package board

// Color represents the color of a disc or player.
type Color uint8

const (
	Black Color = iota
	White
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Sign returns +1 for black and -1 for white. Scores computed from black's
// point of view are multiplied by it to get the mover's point of view.
func (c Color) Sign() float64 {
	if c == White {
		return -1
	}
	return 1
}

// Int returns the protocol encoding of a color: 1 black, -1 white, 0 none.
func (c Color) Int() int {
	switch c {
	case Black:
		return 1
	case White:
		return -1
	default:
		return 0
	}
}

// ColorFromInt decodes the protocol encoding of a color.
func ColorFromInt(v int) Color {
	switch v {
	case 1:
		return Black
	case -1:
		return White
	default:
		return NoColor
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}
