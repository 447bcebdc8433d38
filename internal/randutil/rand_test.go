package randutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDerive(t *testing.T) {
	seen := make(map[int64]bool)
	for n := 0; n < 100; n++ {
		s := Derive(7, n)
		assert.False(t, seen[s], "duplicate child seed at %d", n)
		seen[s] = true
		assert.Equal(t, s, Derive(7, n))
	}
	assert.NotEqual(t, Derive(7, 0), Derive(8, 0))
}

func TestChance(t *testing.T) {
	r := New(1)
	for i := 0; i < 100; i++ {
		assert.False(t, Chance(r, 0))
		assert.True(t, Chance(r, 1))
	}
}

func TestJitter(t *testing.T) {
	r := New(3)
	for i := 0; i < 1000; i++ {
		d := Jitter(r, 400*time.Millisecond)
		assert.GreaterOrEqual(t, d, 200*time.Millisecond)
		assert.Less(t, d, 600*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), Jitter(r, time.Duration(0)))
}
