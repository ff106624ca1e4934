package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(0)
	b := NewRandomSource(0)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.UniformReal(), b.UniformReal())
		assert.Equal(t, a.IntInRange(0, 1099), b.IntInRange(0, 1099))
	}
}

func TestRandomSourceSeedsDiffer(t *testing.T) {
	a := NewRandomSource(0)
	b := NewRandomSource(1)

	same := true
	for i := 0; i < 10; i++ {
		if a.UniformReal() != b.UniformReal() {
			same = false
		}
	}
	assert.False(t, same, "different seeds produced identical streams")
}

func TestUniformRealRange(t *testing.T) {
	r := NewRandomSource(42)
	for i := 0; i < 1000; i++ {
		v := r.UniformReal()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestIntInRangeInclusiveBounds(t *testing.T) {
	r := NewRandomSource(42)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntInRange(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	// Both ends of the inclusive range show up.
	assert.True(t, seen[3])
	assert.True(t, seen[5])

	assert.Equal(t, 2, r.IntInRange(2, 2))
}
