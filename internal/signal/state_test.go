package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesOnlyOnChange(t *testing.T) {
	s := New(false)
	var got []bool
	s.Subscribe(func(v bool) { got = append(got, v) })

	assert.True(t, s.Set(true))
	assert.False(t, s.Set(true))
	assert.True(t, s.Set(false))

	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, s.Get())
}

func TestUnsubscribe(t *testing.T) {
	s := New(0)
	calls := 0
	unsub := s.Subscribe(func(int) { calls++ })
	s.Set(1)
	unsub()
	unsub()
	s.Set(2)
	assert.Equal(t, 1, calls)
}

func TestReader(t *testing.T) {
	s := New("a")
	r := s.Reader()
	assert.Equal(t, "a", r.Get())

	var seen string
	r.Subscribe(func(v string) { seen = v })
	s.Set("b")
	assert.Equal(t, "b", r.Get())
	assert.Equal(t, "b", seen)

	var unbound Reader[string]
	assert.Equal(t, "", unbound.Get())
	unbound.Subscribe(func(string) {})()
}
