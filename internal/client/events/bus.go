package events

import "sync"

// Bus доставляет событие принудительного logout от транспортного слоя
// к состоянию сессии. Единственный тип события - forced logout: шина
// сознательно не растет в общий event system.
//
// Подписчиков может быть несколько; уведомления доставляются синхронно
// в порядке подписки.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	fn func()
	id int
}

// NewBus создает новую шину событий сессии
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe регистрирует callback и возвращает функцию отписки.
// Отписка идемпотентна.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber{fn: fn, id: id})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// TriggerLogout уведомляет всех живых подписчиков о принудительном logout.
// Callbacks вызываются вне мьютекса: подписчик может отписаться или
// подписать другого из своего callback.
func (b *Bus) TriggerLogout() {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
