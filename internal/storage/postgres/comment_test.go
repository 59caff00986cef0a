package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

func TestCommentPostgresStorage(t *testing.T) {
	ctx := context.Background()
	s := NewCommentPostgresStorage(setupTestDB(t))
	author, postID := primitive.NewObjectID(), primitive.NewObjectID()

	id, err := s.InsertComment(ctx, &models.Comment{Text: "Test Comment", Author: author, Post: postID})
	require.NoError(t, err)

	t.Run("Get comment", func(t *testing.T) {
		c, err := s.GetComment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Test Comment", c.Text)
		assert.Equal(t, author, c.Author)
		assert.Equal(t, postID, c.Post)
	})

	t.Run("Update moves comment to another post", func(t *testing.T) {
		other := primitive.NewObjectID()
		matched, err := s.UpdateComment(ctx, id, comment.Update{Post: &other})
		require.NoError(t, err)
		assert.True(t, matched)

		c, err := s.GetComment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, other, c.Post)
		assert.Equal(t, "Test Comment", c.Text)
	})

	t.Run("Empty update reports existence", func(t *testing.T) {
		matched, err := s.UpdateComment(ctx, id, comment.Update{})
		require.NoError(t, err)
		assert.True(t, matched)

		matched, err = s.UpdateComment(ctx, primitive.NewObjectID(), comment.Update{})
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("Delete", func(t *testing.T) {
		removed, err := s.DeleteComment(ctx, id)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = s.GetComment(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		comments, err := s.GetComments(ctx, []primitive.ObjectID{id})
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
