package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

func TestDeliveryBuffer_DrainIsDestructive(t *testing.T) {
	b := services.NewDeliveryBuffer()
	match := entities.Match{ID: "m1", Region: entities.RegionNA}

	b.Push("p1", match)

	first := b.Drain("p1")
	assert.Equal(t, []entities.Match{match}, first)

	second := b.Drain("p1")
	assert.Empty(t, second, "a second drain before any new push must return nothing")
}

func TestDeliveryBuffer_DrainUnknownPlayerIsEmpty(t *testing.T) {
	b := services.NewDeliveryBuffer()
	assert.Empty(t, b.Drain("ghost"))
}

func TestDeliveryBuffer_MultipleMatchesQueueInOrder(t *testing.T) {
	b := services.NewDeliveryBuffer()
	m1 := entities.Match{ID: "m1"}
	m2 := entities.Match{ID: "m2"}

	b.Push("p1", m1)
	b.Push("p1", m2)

	assert.Equal(t, []entities.Match{m1, m2}, b.Drain("p1"))
}
