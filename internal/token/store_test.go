package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAndClear(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.Get())

	s.Set("tok-1")
	assert.Equal(t, "tok-1", s.Get())

	s.Clear()
	assert.Equal(t, "", s.Get())
}

func TestStore_SubscribersSeeEveryChange(t *testing.T) {
	s := NewStore()

	var seen []string
	s.Subscribe(func(tok string) { seen = append(seen, tok) })

	s.Set("tok-1")
	s.Set("tok-2")
	s.Clear()

	assert.Equal(t, []string{"tok-1", "tok-2", ""}, seen)
}
