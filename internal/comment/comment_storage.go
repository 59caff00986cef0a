package comment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/models"
)

type Update struct {
	Text   *string
	Author *primitive.ObjectID
	Post   *primitive.ObjectID
}

type CommentStorage interface {
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetComments(ctx context.Context, ids []primitive.ObjectID) ([]*models.Comment, error)
	ListComments(ctx context.Context) ([]*models.Comment, error)
	InsertComment(ctx context.Context, c *models.Comment) (primitive.ObjectID, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, upd Update) (bool, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error)
}
