package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

// MockUserStorage реализует интерфейс user.UserStorage для тестирования
type MockUserStorage struct {
	next user.UserStorage
	rec  *Recorder
}

func (m *MockUserStorage) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if err := m.rec.record("Users.GetUser"); err != nil {
		return nil, err
	}
	return m.next.GetUser(ctx, id)
}

func (m *MockUserStorage) GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if err := m.rec.record("Users.GetUsers"); err != nil {
		return nil, err
	}
	return m.next.GetUsers(ctx, ids)
}

func (m *MockUserStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := m.rec.record("Users.FindUserByEmail"); err != nil {
		return nil, err
	}
	return m.next.FindUserByEmail(ctx, email)
}

func (m *MockUserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	if err := m.rec.record("Users.ListUsers"); err != nil {
		return nil, err
	}
	return m.next.ListUsers(ctx)
}

func (m *MockUserStorage) InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	if err := m.rec.record("Users.InsertUser"); err != nil {
		return primitive.NilObjectID, err
	}
	return m.next.InsertUser(ctx, u)
}

func (m *MockUserStorage) UpdateUser(ctx context.Context, id primitive.ObjectID, upd user.Update) (bool, error) {
	if err := m.rec.record("Users.UpdateUser"); err != nil {
		return false, err
	}
	return m.next.UpdateUser(ctx, id, upd)
}

func (m *MockUserStorage) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Users.DeleteUser"); err != nil {
		return false, err
	}
	return m.next.DeleteUser(ctx, id)
}

func (m *MockUserStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	if err := m.rec.record("Users.PullComment"); err != nil {
		return false, err
	}
	return m.next.PullComment(ctx, id, commentID)
}
