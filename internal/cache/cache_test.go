package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "projects:all", Key("projects", nil))

	a := Key("projects", map[string]string{"category": "kitchen"})
	b := Key("projects", map[string]string{"category": "kitchen"})
	c := Key("projects", map[string]string{"category": "bathroom"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "projects:")
}

func TestGetSetExpiry(t *testing.T) {
	c := New(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("k:1", "v")
	v, ok := c.Get("k:1")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	hits, misses := c.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestPrune(t *testing.T) {
	c := New(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		c.Set(Key("projects", i), i)
	}
	now = now.Add(30 * time.Second)
	c.Set("fresh:1", "v")
	assert.Equal(t, 0, c.Prune())

	now = now.Add(45 * time.Second)
	assert.Equal(t, 10, c.Prune())
	assert.Equal(t, 1, c.Len())
}

// Просроченные записи, которые никто не читает, уходят при следующих Set.
func TestSetSweepsExpired(t *testing.T) {
	c := New(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.sweepAt = now.Add(time.Minute)

	for i := 0; i < 100; i++ {
		c.Set(Key("projects", i), i)
	}
	assert.Equal(t, 100, c.Len())

	now = now.Add(2 * time.Minute)
	c.Set("projects:new", 1)
	assert.Equal(t, 1, c.Len())
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set(Key("projects", nil), 1)
	c.Set(Key("projects", "featured"), 2)
	c.Set(Key("projects_detail", "x"), 3)
	c.Set(Key("services", nil), 4)

	assert.Equal(t, 2, c.Invalidate("projects"))
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(Key("services", nil))
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestRemember(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fn := func() ([]int, error) {
		calls++
		return []int{1, 2}, nil
	}

	got, err := Remember(c, "nums:all", fn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = Remember(c, "nums:all", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = Remember(c, "nums:fail", func() ([]int, error) { return nil, errors.New("boom") })
	require.Error(t, err)
	_, ok := c.Get("nums:fail")
	assert.False(t, ok)

	// nil-кэш просто вызывает функцию
	_, err = Remember[[]int](nil, "nums:all", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
