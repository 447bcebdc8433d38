package match

import "time"

// PlayerState is the combat state of a single player
type PlayerState struct {
	ID        string
	Health    int
	Ammo      int
	Team      Team
	Alive     bool
	Kills     int
	Deaths    int
	LastThrow time.Time

	// Present is false once the player has left the arena
	Present bool
}

// AliveCount holds the number of alive players per team
type AliveCount struct {
	Red  int
	Blue int
}

// Winner compares the two sides; the larger side wins and equal sides draw
func (c AliveCount) Winner() Winner {
	switch {
	case c.Red > c.Blue:
		return RedWins
	case c.Blue > c.Red:
		return BlueWins
	default:
		return Draw
	}
}

// AnyTeamEliminated reports whether at least one team has nobody left
func (c AliveCount) AnyTeamEliminated() bool {
	return c.Red == 0 || c.Blue == 0
}
