package mocks

import (
	"sync"

	"github.com/VitaminP8/socialgraph/internal/subscription"
)

// MockSubscriptionManager запоминает опубликованные события для проверок в тестах
type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          map[subscription.Topic][]chan subscription.Event
	notifications map[subscription.Topic][]subscription.Event
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:          make(map[subscription.Topic][]chan subscription.Event),
		notifications: make(map[subscription.Topic][]subscription.Event),
	}
}

func (m *MockSubscriptionManager) Subscribe(topic subscription.Topic) (<-chan subscription.Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan subscription.Event, 16)
	m.subs[topic] = append(m.subs[topic], ch)

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

func (m *MockSubscriptionManager) Publish(topic subscription.Topic, event subscription.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[topic] {
		select {
		case sub <- event:
		default:
		}
	}
	m.notifications[topic] = append(m.notifications[topic], event)
}

// Events возвращает все события, опубликованные в topic
func (m *MockSubscriptionManager) Events(topic subscription.Topic) []subscription.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]subscription.Event, len(m.notifications[topic]))
	copy(out, m.notifications[topic])
	return out
}
