package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoundFixture(ids ...string) (*Registry, *Rounds) {
	rules := DefaultRules()
	r := NewRegistry(rules)
	for _, id := range ids {
		r.GetOrCreate(id)
	}
	return r, NewRounds(rules, r)
}

func kill(r *Registry, id string) {
	p, _ := r.Lookup(id)
	p.Health = 0
	p.Alive = false
}

func TestRounds_StartOnlyFromIdle(t *testing.T) {
	_, rounds := newRoundFixture("a", "b")

	require.True(t, rounds.Start(testStart))
	assert.Equal(t, PhaseActive, rounds.Phase())
	assert.Equal(t, testStart.Add(2*time.Minute), rounds.Deadline())

	assert.False(t, rounds.Start(at(time.Second)), "second start must be refused")
	assert.Equal(t, testStart.Add(2*time.Minute), rounds.Deadline())
}

func TestRounds_StartResetsPresentPlayers(t *testing.T) {
	r, rounds := newRoundFixture("a", "b", "c")
	kill(r, "a")
	r.Leave("c")
	c, _ := r.Lookup("c")
	c.Ammo = 0

	rounds.Start(testStart)

	a, _ := r.Lookup("a")
	assert.True(t, a.Alive)
	assert.Equal(t, 3, a.Health)
	assert.Equal(t, 0, c.Ammo, "departed players are not reset")
}

func TestRounds_Poll(t *testing.T) {
	t.Run("keeps running while both teams stand", func(t *testing.T) {
		_, rounds := newRoundFixture("a", "b")
		rounds.Start(testStart)

		_, ended := rounds.Poll(at(time.Minute))
		assert.False(t, ended)
		assert.True(t, rounds.Active())
	})

	t.Run("deadline itself is not a timeout", func(t *testing.T) {
		_, rounds := newRoundFixture("a", "b")
		rounds.Start(testStart)

		_, ended := rounds.Poll(at(2 * time.Minute))
		assert.False(t, ended)
	})

	t.Run("timeout with equal counts draws", func(t *testing.T) {
		_, rounds := newRoundFixture("a", "b")
		rounds.Start(testStart)

		outcome, ended := rounds.Poll(at(2*time.Minute + time.Millisecond))
		require.True(t, ended)
		assert.Equal(t, Draw, outcome.Winner)
		assert.Equal(t, EndTimeout, outcome.Reason)
		assert.Equal(t, PhaseIdle, rounds.Phase())
	})

	t.Run("timeout with more red alive", func(t *testing.T) {
		r, rounds := newRoundFixture("a", "b", "c", "d")
		rounds.Start(testStart)
		kill(r, "b")

		outcome, ended := rounds.Poll(at(3 * time.Minute))
		require.True(t, ended)
		assert.Equal(t, RedWins, outcome.Winner)
		assert.Equal(t, 2, outcome.RedAlive)
		assert.Equal(t, 1, outcome.BlueAlive)
	})

	t.Run("elimination ends the round", func(t *testing.T) {
		r, rounds := newRoundFixture("a", "b", "c", "d")
		rounds.Start(testStart)
		kill(r, "a")
		kill(r, "c")

		outcome, ended := rounds.Poll(at(time.Second))
		require.True(t, ended)
		assert.Equal(t, BlueWins, outcome.Winner)
		assert.Equal(t, EndElimination, outcome.Reason)
	})

	t.Run("both teams wiped is a draw", func(t *testing.T) {
		r, rounds := newRoundFixture("a", "b")
		rounds.Start(testStart)
		kill(r, "a")
		kill(r, "b")

		outcome, ended := rounds.Poll(at(time.Second))
		require.True(t, ended)
		assert.Equal(t, Draw, outcome.Winner)
		assert.Equal(t, 0, outcome.RedAlive)
		assert.Equal(t, 0, outcome.BlueAlive)
	})

	t.Run("idle rounds are not polled", func(t *testing.T) {
		_, rounds := newRoundFixture("a")
		_, ended := rounds.Poll(at(time.Hour))
		assert.False(t, ended)
	})
}

func TestRounds_EndIsGuarded(t *testing.T) {
	_, rounds := newRoundFixture("a", "b")
	rounds.Start(testStart)

	_, ok := rounds.End(EndTimeout)
	require.True(t, ok)

	_, ok = rounds.End(EndTimeout)
	assert.False(t, ok)
}
