package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

type UserMemoryStorage struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
	order []primitive.ObjectID // порядок вставки, чтобы ListUsers был детерминированным
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users: make(map[primitive.ObjectID]*models.User),
	}
}

func (s *UserMemoryStorage) GetUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), storage.ErrNotFound)
	}
	return u.Clone(), nil
}

func (s *UserMemoryStorage) GetUsers(_ context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	result := make([]*models.User, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range models.UniqueIDs(ids) {
		if u, ok := s.users[id]; ok {
			result = append(result, u.Clone())
		}
	}
	return result, nil
}

func (s *UserMemoryStorage) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if u := s.users[id]; u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
}

func (s *UserMemoryStorage) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id].Clone())
	}
	return users, nil
}

func (s *UserMemoryStorage) InsertUser(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(u.Email, primitive.NilObjectID) {
		return primitive.NilObjectID, fmt.Errorf("email %s: %w", u.Email, storage.ErrDuplicate)
	}

	stored := u.Clone()
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	if _, exists := s.users[stored.ID]; exists {
		return primitive.NilObjectID, fmt.Errorf("user %s: %w", stored.ID.Hex(), storage.ErrDuplicate)
	}

	s.users[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

func (s *UserMemoryStorage) UpdateUser(_ context.Context, id primitive.ObjectID, upd user.Update) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return false, nil
	}
	if upd.Email != nil && s.emailTaken(*upd.Email, id) {
		return false, fmt.Errorf("email %s: %w", *upd.Email, storage.ErrDuplicate)
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Posts != nil {
		u.Posts = append([]primitive.ObjectID{}, upd.Posts...)
	}
	if upd.Comments != nil {
		u.Comments = append([]primitive.ObjectID{}, upd.Comments...)
	}
	if upd.LikedPosts != nil {
		u.LikedPosts = append([]primitive.ObjectID{}, upd.LikedPosts...)
	}
	return true, nil
}

func (s *UserMemoryStorage) DeleteUser(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return false, nil
	}
	delete(s.users, id)
	s.order = removeFromOrder(s.order, id)
	return true, nil
}

func (s *UserMemoryStorage) PullComment(_ context.Context, id, commentID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return false, nil
	}
	u.Comments = models.WithoutID(u.Comments, commentID)
	return true, nil
}

// emailTaken вызывается под мьютексом
func (s *UserMemoryStorage) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
