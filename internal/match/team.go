package match

// Team identifies one of the two sides in a match
type Team int

const (
	Red Team = iota
	Blue
)

// String returns the lowercase team name
func (t Team) String() string {
	switch t {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Other returns the opposing team
func (t Team) Other() Team {
	if t == Red {
		return Blue
	}
	return Red
}

// Winner is the outcome of a round or match
type Winner int

const (
	Draw Winner = iota
	RedWins
	BlueWins
)

// String returns the string representation of a winner
func (w Winner) String() string {
	switch w {
	case RedWins:
		return "red"
	case BlueWins:
		return "blue"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Team returns the winning team. ok is false for a draw.
func (w Winner) Team() (Team, bool) {
	switch w {
	case RedWins:
		return Red, true
	case BlueWins:
		return Blue, true
	default:
		return Red, false
	}
}
