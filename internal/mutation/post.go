package mutation

import (
	"context"
	"fmt"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/internal/subscription"
	"github.com/VitaminP8/socialgraph/models"
)

const contentTaken = "post with this content already exists"

// CreatePost не добавляет пост в author.posts
func (c *Coordinator) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validate("post", &in); err != nil {
		return nil, err
	}

	authorID, err := parseID("user", in.Author)
	if err != nil {
		return nil, err
	}
	comments, err := models.ParseIDs("comment", in.Comments)
	if err != nil {
		return nil, err
	}
	likes, err := models.ParseIDs("user", in.Likes)
	if err != nil {
		return nil, err
	}
	likes = models.UniqueIDs(likes)

	p := &models.Post{
		Content:  in.Content,
		Author:   authorID,
		Comments: comments,
		Likes:    likes,
	}

	err = c.inTx(ctx, func(ctx context.Context) error {
		_, err := c.stores.Posts.FindPostByContent(ctx, in.Content)
		free, err := absent(err)
		if err != nil {
			return fmt.Errorf("check content: %w", err)
		}
		if !free {
			return apperror.AlreadyExists("post", contentTaken)
		}

		if _, err := c.stores.Users.GetUser(ctx, authorID); err != nil {
			return lookupErr(err, "user", authorID)
		}

		id, err := c.stores.Posts.InsertPost(ctx, p)
		if err != nil {
			return writeErr(err, "post", contentTaken)
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicPost, subscription.OpCreate, p.ID, authorID)
	return p, nil
}

// UpdatePost: content перезаписывается, author/comments/likes - только если переданы
func (c *Coordinator) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	oid, err := parseID("post", id)
	if err != nil {
		return nil, err
	}
	if err := validate("post", &in); err != nil {
		return nil, err
	}

	upd := post.Update{Content: &in.Content}
	if upd.Author, err = optionalID("user", in.Author); err != nil {
		return nil, err
	}
	if upd.Comments, err = parseOptionalIDs("comment", in.Comments); err != nil {
		return nil, err
	}
	if upd.Likes, err = parseOptionalIDs("user", in.Likes); err != nil {
		return nil, err
	}
	if upd.Likes != nil {
		// likes - множество
		upd.Likes = models.UniqueIDs(upd.Likes)
	}

	var updated *models.Post
	err = c.inTx(ctx, func(ctx context.Context) error {
		existing, err := c.stores.Posts.GetPost(ctx, oid)
		if err != nil {
			return lookupErr(err, "post", oid)
		}

		if upd.Author != nil {
			if _, err := c.stores.Users.GetUser(ctx, *upd.Author); err != nil {
				return lookupErr(err, "user", *upd.Author)
			}
		}

		if in.Content != existing.Content {
			other, err := c.stores.Posts.FindPostByContent(ctx, in.Content)
			free, err := absent(err)
			if err != nil {
				return fmt.Errorf("check content: %w", err)
			}
			if !free && other.ID != oid {
				return apperror.AlreadyExists("post", contentTaken)
			}
		}

		matched, err := c.stores.Posts.UpdatePost(ctx, oid, upd)
		if err != nil {
			return writeErr(err, "post", contentTaken)
		}
		if !matched {
			return apperror.NotFound("post", id)
		}

		updated, err = c.stores.Posts.GetPost(ctx, oid)
		if err != nil {
			return lookupErr(err, "post", oid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicPost, subscription.OpUpdate, oid)
	return updated, nil
}

// DeletePost удаляет только сам пост: комментарии к нему и лайки не трогаются
func (c *Coordinator) DeletePost(ctx context.Context, id string) (bool, error) {
	oid, err := parseID("post", id)
	if err != nil {
		return false, err
	}

	err = c.inTx(ctx, func(ctx context.Context) error {
		if _, err := c.stores.Posts.GetPost(ctx, oid); err != nil {
			return lookupErr(err, "post", oid)
		}

		removed, err := c.stores.Posts.DeletePost(ctx, oid)
		if err != nil {
			return fmt.Errorf("delete post %s: %w", id, err)
		}
		if !removed {
			return apperror.NotFound("post", id)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	c.publish(ctx, subscription.TopicPost, subscription.OpDelete, oid)
	return true, nil
}

// AddLikeToPost добавляет userID в post.likes как элемент множества; user.likedPosts не меняется
func (c *Coordinator) AddLikeToPost(ctx context.Context, postID, userID string) (*models.Post, error) {
	pid, err := parseID("post", postID)
	if err != nil {
		return nil, err
	}
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	var liked *models.Post
	err = c.inTx(ctx, func(ctx context.Context) error {
		if _, err := c.stores.Posts.GetPost(ctx, pid); err != nil {
			return lookupErr(err, "post", pid)
		}
		if _, err := c.stores.Users.GetUser(ctx, uid); err != nil {
			return lookupErr(err, "user", uid)
		}

		matched, err := c.stores.Posts.AddLike(ctx, pid, uid)
		if err != nil {
			return fmt.Errorf("add like: %w", err)
		}
		if !matched {
			return apperror.NotFound("post", postID)
		}

		liked, err = c.stores.Posts.GetPost(ctx, pid)
		if err != nil {
			return lookupErr(err, "post", pid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicPost, subscription.OpLike, pid, uid)
	return liked, nil
}

// RemoveLikeFromPost: отсутствие лайка - не ошибка. Существование пользователя не проверяется.
func (c *Coordinator) RemoveLikeFromPost(ctx context.Context, postID, userID string) (*models.Post, error) {
	pid, err := parseID("post", postID)
	if err != nil {
		return nil, err
	}
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	var unliked *models.Post
	err = c.inTx(ctx, func(ctx context.Context) error {
		if _, err := c.stores.Posts.GetPost(ctx, pid); err != nil {
			return lookupErr(err, "post", pid)
		}

		matched, err := c.stores.Posts.RemoveLike(ctx, pid, uid)
		if err != nil {
			return fmt.Errorf("remove like: %w", err)
		}
		if !matched {
			return apperror.NotFound("post", postID)
		}

		unliked, err = c.stores.Posts.GetPost(ctx, pid)
		if err != nil {
			return lookupErr(err, "post", pid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicPost, subscription.OpUnlike, pid, uid)
	return unliked, nil
}
