package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/mocks"
	"github.com/VitaminP8/socialgraph/internal/storage/memory"
	"github.com/VitaminP8/socialgraph/models"
)

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStores()
	rec := mocks.NewRecorder()
	svc := NewService(mocks.WrapStores(inner, rec))

	userID, err := inner.Users.InsertUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	postID, err := inner.Posts.InsertPost(ctx, &models.Post{Content: "hello", Author: userID})
	require.NoError(t, err)
	commentID, err := inner.Comments.InsertComment(ctx, &models.Comment{Text: "hi", Author: userID, Post: postID})
	require.NoError(t, err)

	t.Run("Existing documents", func(t *testing.T) {
		u, err := svc.GetUser(ctx, userID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "Ann", u.Name)

		p, err := svc.GetPost(ctx, postID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "hello", p.Content)

		c, err := svc.GetComment(ctx, commentID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "hi", c.Text)
	})

	t.Run("Invalid id fails before storage access", func(t *testing.T) {
		rec.Reset()

		_, err := svc.GetPost(ctx, "not-a-valid-id")
		assert.ErrorIs(t, err, apperror.ErrInvalidID)
		_, err = svc.GetUser(ctx, "123")
		assert.ErrorIs(t, err, apperror.ErrInvalidID)
		_, err = svc.GetComment(ctx, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidID)

		assert.Empty(t, rec.Calls())
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		missing := primitive.NewObjectID().Hex()

		_, err := svc.GetUser(ctx, missing)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		_, err = svc.GetPost(ctx, missing)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		_, err = svc.GetComment(ctx, missing)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Storage failure keeps its cause", func(t *testing.T) {
		boom := errors.New("boom")
		rec.FailOn("Users.GetUser", boom)
		defer rec.FailOn("Users.GetUser", nil)

		_, err := svc.GetUser(ctx, userID.Hex())
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores)

	t.Run("Empty collections", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		posts, err := svc.ListPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)

		comments, err := svc.ListComments(ctx)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("Lists whole collection", func(t *testing.T) {
		for _, email := range []string{"a@example.com", "b@example.com"} {
			_, err := stores.Users.InsertUser(ctx, &models.User{Name: "x", Email: email})
			require.NoError(t, err)
		}

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}
