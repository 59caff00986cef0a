package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.Subscribe(TopicPost)
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)

		manager.mu.Lock()
		subscribers, exists := manager.subs[TopicPost]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 1)

		cancel()

		manager.mu.Lock()
		subscribers = manager.subs[TopicPost]
		manager.mu.Unlock()
		assert.Len(t, subscribers, 0)
	})

	t.Run("Multiple subscriptions to the same topic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel1 := manager.Subscribe(TopicUser)
		_, cancel2 := manager.Subscribe(TopicUser)
		_, cancel3 := manager.Subscribe(TopicUser)

		manager.mu.Lock()
		assert.Len(t, manager.subs[TopicUser], 3)
		manager.mu.Unlock()

		// Отменяем вторую подписку
		cancel2()

		manager.mu.Lock()
		assert.Len(t, manager.subs[TopicUser], 2)
		manager.mu.Unlock()

		cancel1()
		cancel3()

		manager.mu.Lock()
		assert.Len(t, manager.subs[TopicUser], 0)
		manager.mu.Unlock()
	})

	t.Run("Cancel twice is harmless", func(t *testing.T) {
		manager := NewSubscriptionManager()
		_, cancel := manager.Subscribe(TopicComment)
		cancel()
		assert.NotPanics(t, cancel)
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	t.Run("Should send event to subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.Subscribe(TopicComment)
		defer cancel()

		manager.Publish(TopicComment, Event{Op: OpCreate, ID: "c1"})

		select {
		case ev := <-ch:
			assert.Equal(t, OpCreate, ev.Op)
			assert.Equal(t, "c1", ev.ID)
			assert.Equal(t, TopicComment, ev.Entity)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for event")
		}
	})

	t.Run("Multiple subscribers should all receive the event", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe(TopicPost)
		ch2, cancel2 := manager.Subscribe(TopicPost)
		ch3, cancel3 := manager.Subscribe(TopicPost)
		defer cancel1()
		defer cancel2()
		defer cancel3()

		manager.Publish(TopicPost, Event{Op: OpLike, ID: "p1", Related: []string{"u1"}})

		for i, ch := range []<-chan Event{ch1, ch2, ch3} {
			select {
			case ev := <-ch:
				assert.Equal(t, []string{"u1"}, ev.Related, "Subscriber %d got wrong event", i+1)
			case <-time.After(time.Second):
				t.Fatalf("Subscriber %d timed out waiting for event", i+1)
			}
		}
	})

	t.Run("Should only send to subscribers of the topic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe(TopicUser)
		ch2, cancel2 := manager.Subscribe(TopicPost)
		defer cancel1()
		defer cancel2()

		manager.Publish(TopicUser, Event{Op: OpDelete, ID: "u1"})

		select {
		case ev := <-ch1:
			assert.Equal(t, "u1", ev.ID)
		case <-time.After(time.Second):
			t.Fatal("User subscriber timed out waiting for event")
		}

		select {
		case <-ch2:
			t.Fatal("Post subscriber should not receive the event")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Slow subscriber does not block publisher", func(t *testing.T) {
		manager := NewSubscriptionManagerWithBuffer(2)
		ch, cancel := manager.Subscribe(TopicPost)
		defer cancel()

		start := time.Now()
		for i := 0; i < 50; i++ {
			manager.Publish(TopicPost, Event{Op: OpUpdate, ID: strconv.Itoa(i)})
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)

		// в канале остались только первые события, остальные отброшены
		assert.Equal(t, "0", (<-ch).ID)
		assert.Equal(t, "1", (<-ch).ID)
		select {
		case ev := <-ch:
			t.Fatalf("unexpected event %s", ev.ID)
		default:
		}
	})

	t.Run("Slow subscriber does not delay other subscribers", func(t *testing.T) {
		manager := NewSubscriptionManagerWithBuffer(1)
		_, cancelSlow := manager.Subscribe(TopicUser)
		defer cancelSlow()
		fast, cancelFast := manager.Subscribe(TopicUser)
		defer cancelFast()

		manager.Publish(TopicUser, Event{Op: OpCreate, ID: "u1"})
		<-fast
		manager.Publish(TopicUser, Event{Op: OpUpdate, ID: "u1"})

		select {
		case ev := <-fast:
			assert.Equal(t, OpUpdate, ev.Op)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("fast subscriber should receive the second event")
		}
	})

	t.Run("Publishing without subscribers should not panic", func(t *testing.T) {
		manager := NewSubscriptionManager()
		assert.NotPanics(t, func() {
			manager.Publish(TopicPost, Event{Op: OpCreate, ID: "p1"})
		})
	})
}

func TestSubscriptionManager_Concurrent(t *testing.T) {
	t.Run("Concurrent subscriptions and publications", func(t *testing.T) {
		manager := NewSubscriptionManager()

		numSubscribers := 10
		numPublications := 5

		var wg sync.WaitGroup
		cancels := make([]func(), numSubscribers)
		received := make([]int, numSubscribers)
		var mu sync.Mutex

		for i := 0; i < numSubscribers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				ch, cancel := manager.Subscribe(TopicComment)
				cancels[idx] = cancel

				go func(idx int, ch <-chan Event) {
					for ev := range ch {
						require.Equal(t, TopicComment, ev.Entity)
						mu.Lock()
						received[idx]++
						mu.Unlock()
					}
				}(idx, ch)
			}(i)
		}
		wg.Wait()

		for i := 0; i < numPublications; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				manager.Publish(TopicComment, Event{Op: OpCreate, ID: strconv.Itoa(1000 + idx)})
			}(i)
		}
		wg.Wait()

		// Даем время на обработку всех сообщений
		time.Sleep(500 * time.Millisecond)

		for _, cancel := range cancels {
			cancel()
		}

		mu.Lock()
		for i := 0; i < numSubscribers; i++ {
			assert.Equal(t, numPublications, received[i], "Subscriber %d did not receive all events", i)
		}
		mu.Unlock()
	})

	t.Run("Concurrent subscribes and unsubscribes", func(t *testing.T) {
		manager := NewSubscriptionManager()

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ch, cancel := manager.Subscribe(TopicUser)
				time.Sleep(5 * time.Millisecond)
				cancel()

				_, ok := <-ch
				assert.False(t, ok, "Channel should be closed after cancel")
			}()
		}
		wg.Wait()

		manager.mu.Lock()
		assert.Len(t, manager.subs[TopicUser], 0)
		manager.mu.Unlock()
	})
}
