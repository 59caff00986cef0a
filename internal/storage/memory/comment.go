package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

// CommentMemoryStorage не знает о постах и пользователях: ссылки проверяет координатор
type CommentMemoryStorage struct {
	mu       sync.RWMutex
	comments map[primitive.ObjectID]*models.Comment
	order    []primitive.ObjectID
}

func NewCommentMemoryStorage() *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[primitive.ObjectID]*models.Comment),
	}
}

func (s *CommentMemoryStorage) GetComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.comments[id]
	if !exists {
		return nil, fmt.Errorf("comment %s: %w", id.Hex(), storage.ErrNotFound)
	}
	return c.Clone(), nil
}

func (s *CommentMemoryStorage) GetComments(_ context.Context, ids []primitive.ObjectID) ([]*models.Comment, error) {
	result := make([]*models.Comment, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range models.UniqueIDs(ids) {
		if c, ok := s.comments[id]; ok {
			result = append(result, c.Clone())
		}
	}
	return result, nil
}

func (s *CommentMemoryStorage) ListComments(_ context.Context) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*models.Comment, 0, len(s.order))
	for _, id := range s.order {
		comments = append(comments, s.comments[id].Clone())
	}
	return comments, nil
}

func (s *CommentMemoryStorage) InsertComment(_ context.Context, c *models.Comment) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := c.Clone()
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	if _, exists := s.comments[stored.ID]; exists {
		return primitive.NilObjectID, fmt.Errorf("comment %s: %w", stored.ID.Hex(), storage.ErrDuplicate)
	}

	s.comments[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

func (s *CommentMemoryStorage) UpdateComment(_ context.Context, id primitive.ObjectID, upd comment.Update) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.comments[id]
	if !exists {
		return false, nil
	}
	if upd.Text != nil {
		c.Text = *upd.Text
	}
	if upd.Author != nil {
		c.Author = *upd.Author
	}
	if upd.Post != nil {
		c.Post = *upd.Post
	}
	return true, nil
}

func (s *CommentMemoryStorage) DeleteComment(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return false, nil
	}
	delete(s.comments, id)
	s.order = removeFromOrder(s.order, id)
	return true, nil
}
