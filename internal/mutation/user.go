package mutation

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/subscription"
	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

const emailTaken = "user with this email already exists"

func (c *Coordinator) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validate("user", &in); err != nil {
		return nil, err
	}

	posts, err := models.ParseIDs("post", in.Posts)
	if err != nil {
		return nil, err
	}
	comments, err := models.ParseIDs("comment", in.Comments)
	if err != nil {
		return nil, err
	}
	likedPosts, err := models.ParseIDs("post", in.LikedPosts)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Posts:      posts,
		Comments:   comments,
		LikedPosts: likedPosts,
	}

	err = c.inTx(ctx, func(ctx context.Context) error {
		_, err := c.stores.Users.FindUserByEmail(ctx, in.Email)
		free, err := absent(err)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if !free {
			return apperror.AlreadyExists("user", emailTaken)
		}

		hashed, err := c.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		u.Password = hashed

		id, err := c.stores.Users.InsertUser(ctx, u)
		if err != nil {
			return writeErr(err, "user", emailTaken)
		}
		u.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicUser, subscription.OpCreate, u.ID)
	return u, nil
}

// UpdateUser: name/email/password меняются, только если переданы (пароль хэшируется заново),
// списки posts/comments/likedPosts перезаписываются целиком, непереданный список становится пустым
func (c *Coordinator) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	oid, err := parseID("user", id)
	if err != nil {
		return nil, err
	}
	if err := validate("user", &in); err != nil {
		return nil, err
	}

	upd := user.Update{Name: in.Name, Email: in.Email}
	if upd.Posts, err = models.ParseIDs("post", in.Posts); err != nil {
		return nil, err
	}
	if upd.Comments, err = models.ParseIDs("comment", in.Comments); err != nil {
		return nil, err
	}
	if upd.LikedPosts, err = models.ParseIDs("post", in.LikedPosts); err != nil {
		return nil, err
	}

	var updated *models.User
	err = c.inTx(ctx, func(ctx context.Context) error {
		existing, err := c.stores.Users.GetUser(ctx, oid)
		if err != nil {
			return lookupErr(err, "user", oid)
		}

		if in.Email != nil && *in.Email != existing.Email {
			other, err := c.stores.Users.FindUserByEmail(ctx, *in.Email)
			free, err := absent(err)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if !free && other.ID != oid {
				return apperror.AlreadyExists("user", emailTaken)
			}
		}

		if in.Password != nil {
			hashed, err := c.hasher.Hash(*in.Password)
			if err != nil {
				return err
			}
			upd.Password = &hashed
		}

		matched, err := c.stores.Users.UpdateUser(ctx, oid, upd)
		if err != nil {
			return writeErr(err, "user", emailTaken)
		}
		if !matched {
			return apperror.NotFound("user", id)
		}

		updated, err = c.stores.Users.GetUser(ctx, oid)
		if err != nil {
			return lookupErr(err, "user", oid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicUser, subscription.OpUpdate, oid)
	return updated, nil
}

// DeleteUser удаляет все посты из user.posts, затем самого пользователя.
// Комментарии и лайки пользователя остаются висячими ссылками.
func (c *Coordinator) DeleteUser(ctx context.Context, id string) (bool, error) {
	oid, err := parseID("user", id)
	if err != nil {
		return false, err
	}

	var (
		removed bool
		posts   []primitive.ObjectID
	)
	err = c.inTx(ctx, func(ctx context.Context) error {
		u, err := c.stores.Users.GetUser(ctx, oid)
		if err != nil {
			return lookupErr(err, "user", oid)
		}
		posts = u.Posts

		n, err := c.stores.Posts.DeletePosts(ctx, u.Posts)
		if err != nil {
			return fmt.Errorf("delete posts of user %s: %w", id, err)
		}
		c.log(ctx).Debug("user posts deleted", "user", id, "count", n)

		removed, err = c.stores.Users.DeleteUser(ctx, oid)
		if err != nil {
			return fmt.Errorf("delete user %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		c.publish(ctx, subscription.TopicUser, subscription.OpDelete, oid, posts...)
	}
	return removed, nil
}
