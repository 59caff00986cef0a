package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/models"
)

type MockCommentStorage struct {
	next comment.CommentStorage
	rec  *Recorder
}

func (m *MockCommentStorage) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	if err := m.rec.record("Comments.GetComment"); err != nil {
		return nil, err
	}
	return m.next.GetComment(ctx, id)
}

func (m *MockCommentStorage) GetComments(ctx context.Context, ids []primitive.ObjectID) ([]*models.Comment, error) {
	if err := m.rec.record("Comments.GetComments"); err != nil {
		return nil, err
	}
	return m.next.GetComments(ctx, ids)
}

func (m *MockCommentStorage) ListComments(ctx context.Context) ([]*models.Comment, error) {
	if err := m.rec.record("Comments.ListComments"); err != nil {
		return nil, err
	}
	return m.next.ListComments(ctx)
}

func (m *MockCommentStorage) InsertComment(ctx context.Context, c *models.Comment) (primitive.ObjectID, error) {
	if err := m.rec.record("Comments.InsertComment"); err != nil {
		return primitive.NilObjectID, err
	}
	return m.next.InsertComment(ctx, c)
}

func (m *MockCommentStorage) UpdateComment(ctx context.Context, id primitive.ObjectID, upd comment.Update) (bool, error) {
	if err := m.rec.record("Comments.UpdateComment"); err != nil {
		return false, err
	}
	return m.next.UpdateComment(ctx, id, upd)
}

func (m *MockCommentStorage) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Comments.DeleteComment"); err != nil {
		return false, err
	}
	return m.next.DeleteComment(ctx, id)
}
