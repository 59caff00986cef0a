package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

func strPtr(s string) *string { return &s }

func TestUserPostgresStorage_InsertUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful insert", func(t *testing.T) {
		s := NewUserPostgresStorage(setupTestDB(t))
		postID := primitive.NewObjectID()

		id, err := s.InsertUser(ctx, &models.User{
			Name:     "Alice",
			Email:    "a@x.com",
			Password: "hash",
			Posts:    []primitive.ObjectID{postID},
		})
		require.NoError(t, err)
		assert.False(t, id.IsZero())

		u, err := s.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "hash", u.Password)
		assert.Equal(t, []primitive.ObjectID{postID}, u.Posts)
		assert.NotNil(t, u.Comments)
		assert.Empty(t, u.Comments)
	})

	t.Run("Duplicate email is rejected by the unique index", func(t *testing.T) {
		s := NewUserPostgresStorage(setupTestDB(t))

		_, err := s.InsertUser(ctx, &models.User{Email: "dup@x.com"})
		require.NoError(t, err)

		_, err = s.InsertUser(ctx, &models.User{Email: "dup@x.com"})
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})
}

func TestUserPostgresStorage_Lookups(t *testing.T) {
	ctx := context.Background()
	s := NewUserPostgresStorage(setupTestDB(t))

	id1, err := s.InsertUser(ctx, &models.User{Email: "1@x.com"})
	require.NoError(t, err)
	id2, err := s.InsertUser(ctx, &models.User{Email: "2@x.com"})
	require.NoError(t, err)

	t.Run("Get unknown user", func(t *testing.T) {
		_, err := s.GetUser(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Find by email", func(t *testing.T) {
		u, err := s.FindUserByEmail(ctx, "2@x.com")
		require.NoError(t, err)
		assert.Equal(t, id2, u.ID)

		_, err = s.FindUserByEmail(ctx, "3@x.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Batch lookup", func(t *testing.T) {
		users, err := s.GetUsers(ctx, []primitive.ObjectID{id1, primitive.NewObjectID(), id2})
		require.NoError(t, err)
		assert.Len(t, users, 2)

		users, err = s.GetUsers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("List", func(t *testing.T) {
		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestUserPostgresStorage_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s := NewUserPostgresStorage(setupTestDB(t))

	c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
	id, err := s.InsertUser(ctx, &models.User{Name: "Alice", Email: "a@x.com", Comments: []primitive.ObjectID{c1, c2}})
	require.NoError(t, err)

	t.Run("Partial update", func(t *testing.T) {
		matched, err := s.UpdateUser(ctx, id, user.Update{Name: strPtr("Alicia"), LikedPosts: []primitive.ObjectID{c1}})
		require.NoError(t, err)
		assert.True(t, matched)

		u, err := s.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", u.Name)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, []primitive.ObjectID{c1}, u.LikedPosts)
		assert.Len(t, u.Comments, 2)
	})

	t.Run("Pull comment", func(t *testing.T) {
		matched, err := s.PullComment(ctx, id, c1)
		require.NoError(t, err)
		assert.True(t, matched)

		u, err := s.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{c2}, u.Comments)
	})

	t.Run("Unknown user", func(t *testing.T) {
		matched, err := s.UpdateUser(ctx, primitive.NewObjectID(), user.Update{Name: strPtr("x")})
		require.NoError(t, err)
		assert.False(t, matched)

		matched, err = s.PullComment(ctx, primitive.NewObjectID(), c1)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("Delete", func(t *testing.T) {
		removed, err := s.DeleteUser(ctx, id)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.DeleteUser(ctx, id)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}
