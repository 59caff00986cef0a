package subscription

import (
	"sync"
	"time"
)

const DefaultBufferSize = 64

type SubscriptionManager struct {
	mu     sync.Mutex
	subs   map[Topic][]chan Event // topic -> список каналов подписчиков
	buffer int
}

func NewSubscriptionManager() *SubscriptionManager {
	return NewSubscriptionManagerWithBuffer(DefaultBufferSize)
}

// NewSubscriptionManagerWithBuffer - buffer событий на подписчика; при переполненном буфере событие теряется
func NewSubscriptionManagerWithBuffer(buffer int) *SubscriptionManager {
	if buffer < 1 {
		buffer = 1
	}
	return &SubscriptionManager{
		subs:   make(map[Topic][]chan Event),
		buffer: buffer,
	}
}

func (m *SubscriptionManager) Subscribe(topic Topic) (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, m.buffer)

	m.subs[topic] = append(m.subs[topic], ch)

	// функция для отписки
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[topic]
		for i, sub := range subscribers {
			if sub == ch {
				m.subs[topic] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

// Publish никогда не ждет подписчиков: запись в канал неблокирующая
func (m *SubscriptionManager) Publish(topic Topic, event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.Entity == "" {
		event.Entity = topic
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	for _, sub := range m.subs[topic] {
		select {
		case sub <- event:
		default:
			// буфер подписчика полон - событие для него теряется
		}
	}
}
