package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/models"
)

type MockPostStorage struct {
	next post.PostStorage
	rec  *Recorder
}

func (m *MockPostStorage) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	if err := m.rec.record("Posts.GetPost"); err != nil {
		return nil, err
	}
	return m.next.GetPost(ctx, id)
}

func (m *MockPostStorage) GetPosts(ctx context.Context, ids []primitive.ObjectID) ([]*models.Post, error) {
	if err := m.rec.record("Posts.GetPosts"); err != nil {
		return nil, err
	}
	return m.next.GetPosts(ctx, ids)
}

func (m *MockPostStorage) FindPostByContent(ctx context.Context, content string) (*models.Post, error) {
	if err := m.rec.record("Posts.FindPostByContent"); err != nil {
		return nil, err
	}
	return m.next.FindPostByContent(ctx, content)
}

func (m *MockPostStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	if err := m.rec.record("Posts.ListPosts"); err != nil {
		return nil, err
	}
	return m.next.ListPosts(ctx)
}

func (m *MockPostStorage) InsertPost(ctx context.Context, p *models.Post) (primitive.ObjectID, error) {
	if err := m.rec.record("Posts.InsertPost"); err != nil {
		return primitive.NilObjectID, err
	}
	return m.next.InsertPost(ctx, p)
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id primitive.ObjectID, upd post.Update) (bool, error) {
	if err := m.rec.record("Posts.UpdatePost"); err != nil {
		return false, err
	}
	return m.next.UpdatePost(ctx, id, upd)
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Posts.DeletePost"); err != nil {
		return false, err
	}
	return m.next.DeletePost(ctx, id)
}

func (m *MockPostStorage) DeletePosts(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if err := m.rec.record("Posts.DeletePosts"); err != nil {
		return 0, err
	}
	return m.next.DeletePosts(ctx, ids)
}

func (m *MockPostStorage) AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Posts.AddLike"); err != nil {
		return false, err
	}
	return m.next.AddLike(ctx, id, userID)
}

func (m *MockPostStorage) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Posts.RemoveLike"); err != nil {
		return false, err
	}
	return m.next.RemoveLike(ctx, id, userID)
}

func (m *MockPostStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Posts.PullComment"); err != nil {
		return false, err
	}
	return m.next.PullComment(ctx, id, commentID)
}
