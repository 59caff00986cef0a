package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/storage/memory"
	"github.com/VitaminP8/socialgraph/internal/subscription"
	"github.com/VitaminP8/socialgraph/models"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("Calls pass through and are recorded", func(t *testing.T) {
		rec := NewRecorder()
		stores := WrapStores(memory.NewStores(), rec)

		id, err := stores.Users.InsertUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
		require.NoError(t, err)
		_, err = stores.Users.GetUser(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, []string{"Users.InsertUser", "Users.GetUser"}, rec.Calls())
		assert.Equal(t, 1, rec.Count("Users.GetUser"))

		rec.Reset()
		assert.Empty(t, rec.Calls())
	})

	t.Run("Injected failure skips the store", func(t *testing.T) {
		rec := NewRecorder()
		inner := memory.NewStores()
		stores := WrapStores(inner, rec)

		boom := errors.New("boom")
		rec.FailOn("Posts.InsertPost", boom)

		_, err := stores.Posts.InsertPost(ctx, &models.Post{Content: "x", Author: primitive.NewObjectID()})
		assert.ErrorIs(t, err, boom)

		posts, err := inner.Posts.ListPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestMockSubscriptionManager(t *testing.T) {
	m := NewMockSubscriptionManager()
	ch, cancel := m.Subscribe(subscription.TopicPost)

	m.Publish(subscription.TopicPost, subscription.Event{Op: subscription.OpCreate, ID: "p1"})
	m.Publish(subscription.TopicUser, subscription.Event{Op: subscription.OpDelete, ID: "u1"})

	ev := <-ch
	assert.Equal(t, "p1", ev.ID)
	assert.Len(t, m.Events(subscription.TopicPost), 1)
	assert.Len(t, m.Events(subscription.TopicUser), 1)
	assert.Empty(t, m.Events(subscription.TopicComment))

	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}
