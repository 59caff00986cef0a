package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

// Service - корневые запросы чтения
type Service struct {
	stores storage.Stores
}

func NewService(stores storage.Stores) *Service {
	return &Service{stores: stores}
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.stores.Users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := models.ParseID("user", id)
	if err != nil {
		return nil, err
	}

	u, err := s.stores.Users.GetUser(ctx, oid)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (s *Service) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.stores.Posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Service) GetPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := models.ParseID("post", id)
	if err != nil {
		return nil, err
	}

	p, err := s.stores.Posts.GetPost(ctx, oid)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	return p, nil
}

func (s *Service) ListComments(ctx context.Context) ([]*models.Comment, error) {
	comments, err := s.stores.Comments.ListComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *Service) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	oid, err := models.ParseID("comment", id)
	if err != nil {
		return nil, err
	}

	c, err := s.stores.Comments.GetComment(ctx, oid)
	if err != nil {
		return nil, notFound(err, "comment", id)
	}
	return c, nil
}

func notFound(err error, entity, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperror.NotFound(entity, id)
	}
	return fmt.Errorf("get %s: %w", entity, err)
}
