package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_TeamsAlternateInJoinOrder(t *testing.T) {
	r := NewRegistry(DefaultRules())

	for i := 0; i < 7; i++ {
		p := r.GetOrCreate(fmt.Sprintf("p%d", i))
		expected := Red
		if i%2 == 1 {
			expected = Blue
		}
		assert.Equal(t, expected, p.Team, "player %d", i)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	rules := DefaultRules()
	r := NewRegistry(rules)

	t.Run("new entry starts full", func(t *testing.T) {
		p := r.GetOrCreate("alice")
		assert.Equal(t, rules.MaxHealth, p.Health)
		assert.Equal(t, rules.MaxAmmo, p.Ammo)
		assert.True(t, p.Alive)
		assert.True(t, p.Present)
		assert.Zero(t, p.Kills)
		assert.Zero(t, p.Deaths)
	})

	t.Run("existing entry is returned unchanged", func(t *testing.T) {
		p := r.GetOrCreate("alice")
		p.Health = 1
		p.Kills = 2

		again := r.GetOrCreate("alice")
		assert.Same(t, p, again)
		assert.Equal(t, 1, again.Health)
		assert.Equal(t, Blue, r.NextTeam(), "lookup must not flip the toggle")
	})
}

func TestRegistry_ResetForRound(t *testing.T) {
	rules := DefaultRules()

	t.Run("keeps team and counters", func(t *testing.T) {
		r := NewRegistry(rules)
		p := r.GetOrCreate("alice")
		p.Health = 0
		p.Ammo = 0
		p.Alive = false
		p.Kills = 4
		p.Deaths = 2

		r.ResetForRound("alice")

		assert.Equal(t, rules.MaxHealth, p.Health)
		assert.Equal(t, rules.MaxAmmo, p.Ammo)
		assert.True(t, p.Alive)
		assert.Equal(t, Red, p.Team)
		assert.Equal(t, 4, p.Kills)
		assert.Equal(t, 2, p.Deaths)
	})

	t.Run("flips the toggle for known players", func(t *testing.T) {
		r := NewRegistry(rules)
		r.GetOrCreate("alice")
		require.Equal(t, Blue, r.NextTeam())

		r.ResetForRound("alice")
		assert.Equal(t, Red, r.NextTeam())
		assert.Equal(t, Red, r.GetOrCreate("bob").Team)
	})

	t.Run("unknown player is created", func(t *testing.T) {
		r := NewRegistry(rules)
		p := r.ResetForRound("carol")
		assert.Equal(t, Red, p.Team)
		assert.Equal(t, 1, r.Len())
	})
}

func TestRegistry_CountAliveByTeam(t *testing.T) {
	r := NewRegistry(DefaultRules())
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		r.GetOrCreate(id)
	}
	// a, c, e red; b, d blue
	assert.Equal(t, AliveCount{Red: 3, Blue: 2}, r.CountAliveByTeam())

	p, _ := r.Lookup("c")
	p.Alive = false
	r.Leave("d")
	assert.Equal(t, AliveCount{Red: 2, Blue: 1}, r.CountAliveByTeam())

	r.Join("d")
	assert.Equal(t, AliveCount{Red: 2, Blue: 2}, r.CountAliveByTeam())
}

func TestRegistry_LeaveKeepsRecord(t *testing.T) {
	r := NewRegistry(DefaultRules())
	r.GetOrCreate("alice")
	bob := r.GetOrCreate("bob")
	bob.Kills = 3

	assert.True(t, r.Leave("bob"))
	assert.False(t, r.Leave("nobody"))
	assert.Len(t, r.Players(), 1)

	back := r.Join("bob")
	assert.Equal(t, Blue, back.Team)
	assert.Equal(t, 3, back.Kills)
	assert.Equal(t, Red, r.NextTeam(), "rejoin must not consume a team slot")
}

func TestRegistry_ResetStats(t *testing.T) {
	r := NewRegistry(DefaultRules())
	p := r.GetOrCreate("alice")
	p.Kills, p.Deaths = 5, 6
	r.Leave("alice")

	r.ResetStats()
	assert.Zero(t, p.Kills)
	assert.Zero(t, p.Deaths)
}
