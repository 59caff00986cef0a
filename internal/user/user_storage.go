package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/models"
)

// Update - частичное обновление: nil-поля не трогаются
type Update struct {
	Name       *string
	Email      *string
	Password   *string
	Posts      []primitive.ObjectID // nil - не менять, пустой список - очистить
	Comments   []primitive.ObjectID
	LikedPosts []primitive.ObjectID
}

type UserStorage interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, upd Update) (bool, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error)
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error)
}
