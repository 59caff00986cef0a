package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/mocks"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/storage/memory"
	"github.com/VitaminP8/socialgraph/models"
)

type fixture struct {
	stores  storage.Stores
	author  *models.User
	post    *models.Post
	comment *models.Comment
}

func newFixture(t *testing.T, stores storage.Stores) fixture {
	t.Helper()
	ctx := context.Background()

	authorID, err := stores.Users.InsertUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	postID, err := stores.Posts.InsertPost(ctx, &models.Post{Content: "hello", Author: authorID})
	require.NoError(t, err)
	commentID, err := stores.Comments.InsertComment(ctx, &models.Comment{Text: "hi", Author: authorID, Post: postID})
	require.NoError(t, err)

	author, err := stores.Users.GetUser(ctx, authorID)
	require.NoError(t, err)
	post, err := stores.Posts.GetPost(ctx, postID)
	require.NoError(t, err)
	comment, err := stores.Comments.GetComment(ctx, commentID)
	require.NoError(t, err)

	return fixture{stores: stores, author: author, post: post, comment: comment}
}

func TestUserReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewStores())
	refs := NewResolver(f.stores).Users()

	t.Run("Lists resolve and drop dangling ids", func(t *testing.T) {
		u := f.author.Clone()
		u.Posts = []primitive.ObjectID{f.post.ID, primitive.NewObjectID()}
		u.Comments = []primitive.ObjectID{f.comment.ID}
		u.LikedPosts = []primitive.ObjectID{primitive.NewObjectID()}

		posts, err := refs.Posts(ctx, u)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, f.post.ID, posts[0].ID)

		comments, err := refs.Comments(ctx, u)
		require.NoError(t, err)
		assert.Len(t, comments, 1)

		liked, err := refs.LikedPosts(ctx, u)
		require.NoError(t, err)
		assert.Empty(t, liked)
		assert.NotNil(t, liked)
	})

	t.Run("Empty lists do not touch storage", func(t *testing.T) {
		rec := mocks.NewRecorder()
		r := NewResolver(mocks.WrapStores(f.stores, rec)).Users()

		posts, err := r.Posts(ctx, &models.User{})
		require.NoError(t, err)
		assert.Empty(t, posts)
		// вызов записан обёрткой, но хранилище на пустом списке не делает I/O
		assert.Equal(t, 1, rec.Count("Posts.GetPosts"))
	})
}

func TestPostReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewStores())
	refs := NewResolver(f.stores).Posts()

	t.Run("Author resolves", func(t *testing.T) {
		author, err := refs.Author(ctx, f.post)
		require.NoError(t, err)
		assert.Equal(t, "Ann", author.Name)
	})

	t.Run("Missing author is a referential violation", func(t *testing.T) {
		p := f.post.Clone()
		p.Author = primitive.NewObjectID()

		_, err := refs.Author(ctx, p)
		assert.ErrorIs(t, err, apperror.ErrReferentialViolation)
	})

	t.Run("Unset author is a referential violation", func(t *testing.T) {
		p := f.post.Clone()
		p.Author = primitive.NilObjectID

		_, err := refs.Author(ctx, p)
		assert.ErrorIs(t, err, apperror.ErrReferentialViolation)
	})

	t.Run("Likes and comments", func(t *testing.T) {
		p := f.post.Clone()
		p.Likes = []primitive.ObjectID{f.author.ID}
		p.Comments = []primitive.ObjectID{f.comment.ID, primitive.NewObjectID()}

		likes, err := refs.Likes(ctx, p)
		require.NoError(t, err)
		assert.Len(t, likes, 1)

		comments, err := refs.Comments(ctx, p)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("Storage failure is not a violation", func(t *testing.T) {
		rec := mocks.NewRecorder()
		rec.FailOn("Users.GetUser", errors.New("connection reset"))
		r := NewResolver(mocks.WrapStores(f.stores, rec)).Posts()

		_, err := r.Author(ctx, f.post)
		require.Error(t, err)
		assert.Equal(t, apperror.Kind(""), apperror.KindOf(err))
	})
}

func TestCommentReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewStores())
	refs := NewResolver(f.stores).Comments()

	t.Run("Author and post resolve", func(t *testing.T) {
		author, err := refs.Author(ctx, f.comment)
		require.NoError(t, err)
		assert.Equal(t, f.author.ID, author.ID)

		post, err := refs.Post(ctx, f.comment)
		require.NoError(t, err)
		assert.Equal(t, f.post.ID, post.ID)
	})

	t.Run("Unresolved references give nil without error", func(t *testing.T) {
		c := f.comment.Clone()
		c.Author = primitive.NewObjectID()
		c.Post = primitive.NilObjectID

		author, err := refs.Author(ctx, c)
		assert.NoError(t, err)
		assert.Nil(t, author)

		post, err := refs.Post(ctx, c)
		assert.NoError(t, err)
		assert.Nil(t, post)
	})
}
