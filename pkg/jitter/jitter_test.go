package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_Bounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := Duration(time.Second, DefaultJitter)
		assert.GreaterOrEqual(t, got, time.Second)
		assert.LessOrEqual(t, got, 1500*time.Millisecond)
	}
}

func TestDuration_NoFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
	assert.Equal(t, time.Duration(0), Duration(0, DefaultJitter))
}

func TestDurationWithRand_Deterministic(t *testing.T) {
	a := DurationWithRand(time.Second, 0.5, rand.New(rand.NewSource(1)))
	b := DurationWithRand(time.Second, 0.5, rand.New(rand.NewSource(1)))
	assert.Equal(t, a, b)
}

func TestExponentialBackoff_Capped(t *testing.T) {
	assert.Equal(t, 4*time.Second, ExponentialBackoff(time.Second, 8*time.Second, 2, 0))
	assert.Equal(t, 8*time.Second, ExponentialBackoff(time.Second, 8*time.Second, 10, 0))
}
