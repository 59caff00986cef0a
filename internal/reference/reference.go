package reference

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

// UserReferences раскрывает списки идентификаторов пользователя в объекты
type UserReferences interface {
	Posts(ctx context.Context, u *models.User) ([]*models.Post, error)
	Comments(ctx context.Context, u *models.User) ([]*models.Comment, error)
	LikedPosts(ctx context.Context, u *models.User) ([]*models.Post, error)
}

type PostReferences interface {
	Author(ctx context.Context, p *models.Post) (*models.User, error)
	Comments(ctx context.Context, p *models.Post) ([]*models.Comment, error)
	Likes(ctx context.Context, p *models.Post) ([]*models.User, error)
}

// CommentReferences: неразрешенная ссылка дает nil без ошибки
type CommentReferences interface {
	Author(ctx context.Context, c *models.Comment) (*models.User, error)
	Post(ctx context.Context, c *models.Comment) (*models.Post, error)
}

// Resolver реализует все три интерфейса поверх storage.Stores.
// Списки разрешаются одним пакетным запросом, "висячие" id пропускаются.
type Resolver struct {
	stores storage.Stores
}

func NewResolver(stores storage.Stores) *Resolver {
	return &Resolver{stores: stores}
}

func (r *Resolver) Users() UserReferences       { return userRefs{r} }
func (r *Resolver) Posts() PostReferences       { return postRefs{r} }
func (r *Resolver) Comments() CommentReferences { return commentRefs{r} }

type userRefs struct{ r *Resolver }

func (u userRefs) Posts(ctx context.Context, user *models.User) ([]*models.Post, error) {
	posts, err := u.r.stores.Posts.GetPosts(ctx, user.Posts)
	if err != nil {
		return nil, fmt.Errorf("resolve user.posts: %w", err)
	}
	return posts, nil
}

func (u userRefs) Comments(ctx context.Context, user *models.User) ([]*models.Comment, error) {
	comments, err := u.r.stores.Comments.GetComments(ctx, user.Comments)
	if err != nil {
		return nil, fmt.Errorf("resolve user.comments: %w", err)
	}
	return comments, nil
}

func (u userRefs) LikedPosts(ctx context.Context, user *models.User) ([]*models.Post, error) {
	posts, err := u.r.stores.Posts.GetPosts(ctx, user.LikedPosts)
	if err != nil {
		return nil, fmt.Errorf("resolve user.likedPosts: %w", err)
	}
	return posts, nil
}

type postRefs struct{ r *Resolver }

// Author - обязательная ссылка: отсутствие автора считается нарушением целостности
func (p postRefs) Author(ctx context.Context, post *models.Post) (*models.User, error) {
	if post.Author.IsZero() {
		return nil, apperror.ReferentialViolation("post", post.ID.Hex(), "post author is not set")
	}

	author, err := p.r.stores.Users.GetUser(ctx, post.Author)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.ReferentialViolation("post", post.ID.Hex(),
			fmt.Sprintf("post author %s does not exist", post.Author.Hex()))
	}
	if err != nil {
		return nil, fmt.Errorf("resolve post.author: %w", err)
	}
	return author, nil
}

func (p postRefs) Comments(ctx context.Context, post *models.Post) ([]*models.Comment, error) {
	comments, err := p.r.stores.Comments.GetComments(ctx, post.Comments)
	if err != nil {
		return nil, fmt.Errorf("resolve post.comments: %w", err)
	}
	return comments, nil
}

func (p postRefs) Likes(ctx context.Context, post *models.Post) ([]*models.User, error) {
	users, err := p.r.stores.Users.GetUsers(ctx, post.Likes)
	if err != nil {
		return nil, fmt.Errorf("resolve post.likes: %w", err)
	}
	return users, nil
}

type commentRefs struct{ r *Resolver }

func (c commentRefs) Author(ctx context.Context, comment *models.Comment) (*models.User, error) {
	if comment.Author.IsZero() {
		return nil, nil
	}

	author, err := c.r.stores.Users.GetUser(ctx, comment.Author)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve comment.author: %w", err)
	}
	return author, nil
}

func (c commentRefs) Post(ctx context.Context, comment *models.Comment) (*models.Post, error) {
	if comment.Post.IsZero() {
		return nil, nil
	}

	post, err := c.r.stores.Posts.GetPost(ctx, comment.Post)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve comment.post: %w", err)
	}
	return post, nil
}
