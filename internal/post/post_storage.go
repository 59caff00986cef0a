package post

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/models"
)

// Update - частичное обновление поста, nil-поля остаются как есть
type Update struct {
	Content  *string
	Author   *primitive.ObjectID
	Comments []primitive.ObjectID
	Likes    []primitive.ObjectID
}

type PostStorage interface {
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetPosts(ctx context.Context, ids []primitive.ObjectID) ([]*models.Post, error)
	FindPostByContent(ctx context.Context, content string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	InsertPost(ctx context.Context, p *models.Post) (primitive.ObjectID, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, upd Update) (bool, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeletePosts(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error)
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error)
}
