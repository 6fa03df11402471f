package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_AddAndGet(t *testing.T) {
	// GIVEN an arena with two entities
	var a Arena
	e1 := a.Add(1, 0.5)
	e2 := a.Add(2, 1.5)

	// THEN they are retrievable by id and listed in id order
	assert.Same(t, e1, a.Get(1))
	assert.Same(t, e2, a.Get(2))
	assert.Nil(t, a.Get(0))
	assert.Nil(t, a.Get(3))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []*Entity{e1, e2}, a.All())
	assert.Equal(t, NoStation, e1.Server)
}

func TestArena_AddOutOfOrderPanics(t *testing.T) {
	var a Arena
	assert.Panics(t, func() { a.Add(2, 0) })
}

func TestEntity_Sojourn(t *testing.T) {
	e := &Entity{Arrival: 3, Departure: 10.5}
	assert.Equal(t, 7.5, e.Sojourn())
}
