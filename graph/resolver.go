package graph

import (
	"context"
	"log/slog"

	"github.com/VitaminP8/socialgraph/internal/mutation"
	"github.com/VitaminP8/socialgraph/internal/password"
	"github.com/VitaminP8/socialgraph/internal/query"
	"github.com/VitaminP8/socialgraph/internal/reference"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/subscription"
	"github.com/VitaminP8/socialgraph/models"
)

// Resolver служит корневой точкой для всех резолверов.
// Зависимости (хранилища, хэшер, лента изменений) передаются явно.
type Resolver struct {
	Queries    *query.Service
	Mutations  *mutation.Coordinator
	References *reference.Resolver
}

func NewResolver(stores storage.Stores, hasher password.Hasher, feed subscription.Manager, logger *slog.Logger) *Resolver {
	return &Resolver{
		Queries:    query.NewService(stores),
		Mutations:  mutation.NewCoordinator(stores, hasher, feed, logger),
		References: reference.NewResolver(stores),
	}
}

type ResolverRoot interface {
	Query() QueryResolver
	Mutation() MutationResolver
	User() UserResolver
	Post() PostResolver
	Comment() CommentResolver
}

type QueryResolver interface {
	Users(ctx context.Context) ([]*models.User, error)
	User(ctx context.Context, id string) (*models.User, error)
	Posts(ctx context.Context) ([]*models.Post, error)
	Post(ctx context.Context, id string) (*models.Post, error)
	Comments(ctx context.Context) ([]*models.Comment, error)
	Comment(ctx context.Context, id string) (*models.Comment, error)
}

type MutationResolver interface {
	CreateUser(ctx context.Context, input mutation.CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, input mutation.UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	CreatePost(ctx context.Context, input mutation.CreatePostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, input mutation.UpdatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
	AddLikeToPost(ctx context.Context, postID string, userID string) (*models.Post, error)
	RemoveLikeFromPost(ctx context.Context, postID string, userID string) (*models.Post, error)
	CreateComment(ctx context.Context, input mutation.CreateCommentInput) (*models.Comment, error)
	UpdateComment(ctx context.Context, id string, input mutation.UpdateCommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) (bool, error)
}

type UserResolver interface {
	Posts(ctx context.Context, obj *models.User) ([]*models.Post, error)
	Comments(ctx context.Context, obj *models.User) ([]*models.Comment, error)
	LikedPosts(ctx context.Context, obj *models.User) ([]*models.Post, error)
}

type PostResolver interface {
	Author(ctx context.Context, obj *models.Post) (*models.User, error)
	Comments(ctx context.Context, obj *models.Post) ([]*models.Comment, error)
	Likes(ctx context.Context, obj *models.Post) ([]*models.User, error)
}

type CommentResolver interface {
	Author(ctx context.Context, obj *models.Comment) (*models.User, error)
	Post(ctx context.Context, obj *models.Comment) (*models.Post, error)
}
