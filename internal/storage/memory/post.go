package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

type PostMemoryStorage struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts: make(map[primitive.ObjectID]*models.Post),
	}
}

func (s *PostMemoryStorage) GetPost(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), storage.ErrNotFound)
	}
	return p.Clone(), nil
}

func (s *PostMemoryStorage) GetPosts(_ context.Context, ids []primitive.ObjectID) ([]*models.Post, error) {
	result := make([]*models.Post, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range models.UniqueIDs(ids) {
		if p, ok := s.posts[id]; ok {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

func (s *PostMemoryStorage) FindPostByContent(_ context.Context, content string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if p := s.posts[id]; p.Content == content {
			return p.Clone(), nil
		}
	}
	return nil, fmt.Errorf("post with content %q: %w", content, storage.ErrNotFound)
}

func (s *PostMemoryStorage) ListPosts(_ context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, s.posts[id].Clone())
	}
	return posts, nil
}

func (s *PostMemoryStorage) InsertPost(_ context.Context, p *models.Post) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contentTaken(p.Content, primitive.NilObjectID) {
		return primitive.NilObjectID, fmt.Errorf("post content: %w", storage.ErrDuplicate)
	}

	stored := p.Clone()
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	if _, exists := s.posts[stored.ID]; exists {
		return primitive.NilObjectID, fmt.Errorf("post %s: %w", stored.ID.Hex(), storage.ErrDuplicate)
	}

	s.posts[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

func (s *PostMemoryStorage) UpdatePost(_ context.Context, id primitive.ObjectID, upd post.Update) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return false, nil
	}
	if upd.Content != nil && s.contentTaken(*upd.Content, id) {
		return false, fmt.Errorf("post content: %w", storage.ErrDuplicate)
	}

	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Author != nil {
		p.Author = *upd.Author
	}
	if upd.Comments != nil {
		p.Comments = append([]primitive.ObjectID{}, upd.Comments...)
	}
	if upd.Likes != nil {
		p.Likes = append([]primitive.ObjectID{}, upd.Likes...)
	}
	return true, nil
}

func (s *PostMemoryStorage) DeletePost(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return false, nil
	}
	delete(s.posts, id)
	s.order = removeFromOrder(s.order, id)
	return true, nil
}

func (s *PostMemoryStorage) DeletePosts(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, id := range models.UniqueIDs(ids) {
		if _, exists := s.posts[id]; exists {
			delete(s.posts, id)
			s.order = removeFromOrder(s.order, id)
			deleted++
		}
	}
	return deleted, nil
}

// AddLike - аналог $addToSet: повторный лайк ничего не меняет
func (s *PostMemoryStorage) AddLike(_ context.Context, id, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return false, nil
	}
	if !models.ContainsID(p.Likes, userID) {
		p.Likes = append(p.Likes, userID)
	}
	return true, nil
}

func (s *PostMemoryStorage) RemoveLike(_ context.Context, id, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return false, nil
	}
	p.Likes = models.WithoutID(p.Likes, userID)
	return true, nil
}

func (s *PostMemoryStorage) PullComment(_ context.Context, id, commentID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return false, nil
	}
	p.Comments = models.WithoutID(p.Comments, commentID)
	return true, nil
}

func (s *PostMemoryStorage) contentTaken(content string, except primitive.ObjectID) bool {
	for id, p := range s.posts {
		if id != except && p.Content == content {
			return true
		}
	}
	return false
}
