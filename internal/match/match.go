package match

// Match tracks the cross-round state: score, round counter and whether the
// match is still running
type Match struct {
	rules        Rules
	ScoreRed     int
	ScoreBlue    int
	CurrentRound int
	Running      bool

	// generation increments on every start so stale scheduled work from a
	// previous match can recognise itself
	generation uint64
}

// NewMatch creates a match that has not started yet
func NewMatch(rules Rules) *Match {
	return &Match{rules: rules, CurrentRound: 1}
}

// Start zeroes the score and opens round one
func (m *Match) Start() {
	m.ScoreRed = 0
	m.ScoreBlue = 0
	m.CurrentRound = 1
	m.Running = true
	m.generation++
}

// Generation identifies the current match instance
func (m *Match) Generation() uint64 {
	return m.generation
}

// RecordRound adds the round winner's point and reports whether a team has
// now reached the win score. Draws score nothing.
func (m *Match) RecordRound(outcome RoundOutcome) bool {
	switch outcome.Winner {
	case RedWins:
		m.ScoreRed++
	case BlueWins:
		m.ScoreBlue++
	}
	return m.Decided()
}

// Decided reports whether either team has reached the win score
func (m *Match) Decided() bool {
	return m.ScoreRed >= m.rules.WinScore || m.ScoreBlue >= m.rules.WinScore
}

// AdvanceRound moves the counter to the next round
func (m *Match) AdvanceRound() {
	m.CurrentRound++
}

// DeclareWinner stops the match. Red wins only with a strictly higher
// score; anything else goes to Blue.
func (m *Match) DeclareWinner() Team {
	m.Running = false
	if m.ScoreRed > m.ScoreBlue {
		return Red
	}
	return Blue
}

// FindMVP returns the first player holding the strictly greatest kill count.
// With nobody present it returns nil.
func FindMVP(players []*PlayerState) *MVP {
	var mvp *MVP
	maxKills := -1
	for _, p := range players {
		if p.Kills > maxKills {
			maxKills = p.Kills
			mvp = &MVP{PlayerID: p.ID, Kills: p.Kills}
		}
	}
	return mvp
}
