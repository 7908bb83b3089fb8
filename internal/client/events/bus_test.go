package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe(func() { order = append(order, 1) })
	bus.Subscribe(func() { order = append(order, 2) })
	bus.Subscribe(func() { order = append(order, 3) })

	bus.TriggerLogout()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	var first, second int
	unsubscribe := bus.Subscribe(func() { first++ })
	bus.Subscribe(func() { second++ })

	bus.TriggerLogout()
	unsubscribe()
	bus.TriggerLogout()

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	// Повторная отписка безопасна
	unsubscribe()
	bus.TriggerLogout()
	assert.Equal(t, 1, first)
}

func TestBus_EachTriggerDeliversOnce(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(func() { calls++ })

	bus.TriggerLogout()
	bus.TriggerLogout()

	assert.Equal(t, 2, calls)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()

	// Публикация без подписчиков не паникует
	assert.NotPanics(t, func() { bus.TriggerLogout() })
}

func TestBus_SubscribeFromCallback(t *testing.T) {
	bus := NewBus()

	late := 0
	bus.Subscribe(func() {
		// Подписка из callback не должна деадлочить
		bus.Subscribe(func() { late++ })
	})

	bus.TriggerLogout()
	assert.Equal(t, 0, late)

	bus.TriggerLogout()
	assert.Equal(t, 1, late)
}
