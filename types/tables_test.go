package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState string

func (s testState) Hash() string { return string(s) }

type testAction string

func (a testAction) Hash() string { return string(a) }

func TestValueTableDiff(t *testing.T) {
	a := NewValueTable()
	a.Set("s1", 1)
	a.Set("s2", 2)

	b := a.Copy()
	assert.Equal(t, float64(0), a.Diff(b))

	b.Set("s2", 2.5)
	b.Set("s3", 1)
	// 0.5 from s2 plus 1 from the key only b has
	assert.InDelta(t, 1.5, a.Diff(b), 1e-9)
	assert.InDelta(t, 1.5, b.Diff(a), 1e-9)
}

func TestValueTableGetCreates(t *testing.T) {
	v := NewValueTable()
	assert.False(t, v.Has("s"))
	assert.Equal(t, 0.5, v.Get("s", 0.5))
	assert.True(t, v.Has("s"))
	assert.Equal(t, 1, v.Len())
}

func TestQTableMaxAmongTieBreak(t *testing.T) {
	q := NewQTable()
	actions := []Action{testAction("a"), testAction("b"), testAction("c")}

	// all zero: the first action in enumeration order wins
	action, val := q.MaxAmong("s", actions, 0)
	assert.Equal(t, "a", action.Hash())
	assert.Equal(t, float64(0), val)

	// a strict improvement moves the maximum
	q.Set("s", "c", 1)
	action, val = q.MaxAmong("s", actions, 0)
	assert.Equal(t, "c", action.Hash())
	assert.Equal(t, float64(1), val)

	// an equal value later in the order does not displace the first maximum
	q.Set("s", "b", 1)
	action, _ = q.MaxAmong("s", actions, 0)
	assert.Equal(t, "b", action.Hash())
}

func TestQTableMaxKnown(t *testing.T) {
	q := NewQTable()
	assert.Equal(t, float64(0), q.MaxKnown("unseen", 0))

	q.Set("s", "a", -2)
	q.Set("s", "b", -1)
	assert.Equal(t, float64(-1), q.MaxKnown("s", 0))
}

func TestPolicyTableRoundTrip(t *testing.T) {
	p := NewPolicyTable()
	p.Set("s1", "Up")
	p.Set("s2", "Left")

	bs, err := json.Marshal(p)
	require.NoError(t, err)

	restored := NewPolicyTable()
	require.NoError(t, json.Unmarshal(bs, restored))
	a, ok := restored.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, "Up", a)
	assert.Equal(t, 2, restored.Len())
}

func TestTraceReturn(t *testing.T) {
	trace := NewTrace()
	trace.Append(0, testState("s0"), testAction("a"), 1, testState("s1"))
	trace.Append(1, testState("s1"), testAction("a"), 2, testState("s2"))
	trace.Append(2, testState("s2"), testAction("a"), 4, testState("s3"))

	assert.InDelta(t, 7, trace.Return(0, 1), 1e-9)
	assert.InDelta(t, 1+0.5*2+0.25*4, trace.Return(0, 0.5), 1e-9)
	assert.InDelta(t, 4, trace.Return(2, 0.5), 1e-9)

	_, _, reward, next, ok := trace.Last()
	assert.True(t, ok)
	assert.Equal(t, float64(4), reward)
	assert.Equal(t, "s3", next.Hash())
}
