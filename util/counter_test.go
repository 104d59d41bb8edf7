package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter()
	c.Add("b")
	c.Add("a")
	c.Add("b")

	assert.Equal(t, 2, c.Distinct())
	assert.Equal(t, 2, c.Count("b"))
	assert.Equal(t, 0, c.Count("missing"))

	keys, counts := c.KeysAndCounts()
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []int{1, 2}, counts)

	c.Reset()
	assert.Equal(t, 0, c.Distinct())
}
