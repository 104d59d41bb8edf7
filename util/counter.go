package util

import "sort"

// Counter is a string multiset with deterministic iteration order
type Counter struct {
	counts map[string]int
}

func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
	}
}

func (c *Counter) Add(key string) {
	c.counts[key] += 1
}

func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Distinct is the number of unique keys seen
func (c *Counter) Distinct() int {
	return len(c.counts)
}

// Keys in sorted order with their multiplicities
func (c *Counter) KeysAndCounts() ([]string, []int) {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]int, len(keys))
	for i, k := range keys {
		counts[i] = c.counts[k]
	}
	return keys, counts
}

func (c *Counter) Reset() {
	c.counts = make(map[string]int)
}
