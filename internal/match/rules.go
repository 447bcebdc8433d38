package match

import "time"

// Rules holds the tunable constants of a match
type Rules struct {
	MaxHealth      int
	MaxAmmo        int
	RoundDuration  time.Duration
	MaxRounds      int
	WinScore       int
	RestartDelay   time.Duration
	ThrowCooldown  time.Duration
	StatusInterval time.Duration

	// EnforceCooldown rejects throws inside ThrowCooldown. Off by default:
	// the cooldown is tracked but not applied.
	EnforceCooldown bool
}

// DefaultRules returns the standard best-of-five rules
func DefaultRules() Rules {
	return Rules{
		MaxHealth:      3,
		MaxAmmo:        3,
		RoundDuration:  2 * time.Minute,
		MaxRounds:      5,
		WinScore:       3,
		RestartDelay:   2 * time.Second,
		ThrowCooldown:  600 * time.Millisecond,
		StatusInterval: 200 * time.Millisecond,
	}
}
