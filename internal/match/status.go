package match

import "time"

// Status is the per-player overlay payload pushed to the presentation layer
type Status struct {
	PlayerID         string
	Round            int
	MaxRounds        int
	ScoreRed         int
	ScoreBlue        int
	Team             Team
	Health           int
	MaxHealth        int
	Ammo             int
	MaxAmmo          int
	Kills            int
	Deaths           int
	Alive            bool
	SecondsRemaining int
}

// Snapshot is a read-only view of the whole match
type Snapshot struct {
	Round            int
	MaxRounds        int
	ScoreRed         int
	ScoreBlue        int
	Running          bool
	RoundActive      bool
	SecondsRemaining int
	Players          []Status
}

// secondsRemaining floors the time left until deadline, never below zero
func secondsRemaining(deadline, now time.Time) int {
	remain := deadline.Sub(now)
	if remain <= 0 {
		return 0
	}
	return int(remain / time.Second)
}
