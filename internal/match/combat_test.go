package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCombatFixture() (*Registry, *Combat) {
	r := NewRegistry(DefaultRules())
	r.GetOrCreate("alice")
	r.GetOrCreate("bob")
	return r, NewCombat(r)
}

func TestCombat_HitRemovesOneHealth(t *testing.T) {
	r, c := newCombatFixture()

	result := c.ApplyHit("alice", "bob")
	require.True(t, result.Applied)
	assert.False(t, result.Eliminated)

	bob, _ := r.Lookup("bob")
	assert.Equal(t, 2, bob.Health)
	assert.True(t, bob.Alive)
}

func TestCombat_Elimination(t *testing.T) {
	r, c := newCombatFixture()

	c.ApplyHit("alice", "bob")
	c.ApplyHit("alice", "bob")
	result := c.ApplyHit("alice", "bob")

	require.True(t, result.Eliminated)
	alice, _ := r.Lookup("alice")
	bob, _ := r.Lookup("bob")
	assert.Equal(t, 0, bob.Health)
	assert.False(t, bob.Alive)
	assert.Equal(t, 1, bob.Deaths)
	assert.Equal(t, 1, alice.Kills)
}

func TestCombat_DeadPartiesAreNoOps(t *testing.T) {
	tests := []struct {
		name     string
		attacker string
		target   string
		kill     string
	}{
		{name: "dead target", attacker: "alice", target: "bob", kill: "bob"},
		{name: "dead attacker", attacker: "bob", target: "alice", kill: "bob"},
		{name: "unknown attacker", attacker: "ghost", target: "alice"},
		{name: "unknown target", attacker: "alice", target: "ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := newCombatFixture()
			if tt.kill != "" {
				p, _ := r.Lookup(tt.kill)
				p.Health = 0
				p.Alive = false
			}
			alice, _ := r.Lookup("alice")
			bob, _ := r.Lookup("bob")
			before := [2]PlayerState{*alice, *bob}

			result := c.ApplyHit(tt.attacker, tt.target)

			assert.False(t, result.Applied)
			assert.Equal(t, before, [2]PlayerState{*alice, *bob})
		})
	}
}

func TestCombat_NoFriendlyFireCheck(t *testing.T) {
	r := NewRegistry(DefaultRules())
	r.GetOrCreate("alice") // red
	r.GetOrCreate("bob")   // blue
	r.GetOrCreate("carol") // red
	c := NewCombat(r)

	result := c.ApplyHit("alice", "carol")
	assert.True(t, result.Applied)

	carol, _ := r.Lookup("carol")
	assert.Equal(t, 2, carol.Health)
}

func TestCombat_HealthNeverNegative(t *testing.T) {
	r, c := newCombatFixture()
	for i := 0; i < 10; i++ {
		c.ApplyHit("alice", "bob")
	}
	bob, _ := r.Lookup("bob")
	assert.Equal(t, 0, bob.Health)
	assert.Equal(t, 1, bob.Deaths)
}
