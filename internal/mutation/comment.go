package mutation

import (
	"context"
	"fmt"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/internal/subscription"
	"github.com/VitaminP8/socialgraph/models"
)

// CreateComment не добавляет комментарий в post.comments и author.comments
// (при этом DeleteComment удаляет его из обоих списков)
func (c *Coordinator) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validate("comment", &in); err != nil {
		return nil, err
	}

	authorID, err := parseID("user", in.Author)
	if err != nil {
		return nil, err
	}
	postID, err := parseID("post", in.Post)
	if err != nil {
		return nil, err
	}

	cm := &models.Comment{Text: in.Text, Author: authorID, Post: postID}

	err = c.inTx(ctx, func(ctx context.Context) error {
		if _, err := c.stores.Users.GetUser(ctx, authorID); err != nil {
			return lookupErr(err, "user", authorID)
		}
		if _, err := c.stores.Posts.GetPost(ctx, postID); err != nil {
			return lookupErr(err, "post", postID)
		}

		id, err := c.stores.Comments.InsertComment(ctx, cm)
		if err != nil {
			return writeErr(err, "comment", "comment already exists")
		}
		cm.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicComment, subscription.OpCreate, cm.ID, postID, authorID)
	return cm, nil
}

func (c *Coordinator) UpdateComment(ctx context.Context, id string, in UpdateCommentInput) (*models.Comment, error) {
	oid, err := parseID("comment", id)
	if err != nil {
		return nil, err
	}
	if err := validate("comment", &in); err != nil {
		return nil, err
	}

	upd := comment.Update{Text: in.Text}
	if upd.Author, err = optionalID("user", in.Author); err != nil {
		return nil, err
	}
	if upd.Post, err = optionalID("post", in.Post); err != nil {
		return nil, err
	}

	var updated *models.Comment
	err = c.inTx(ctx, func(ctx context.Context) error {
		if _, err := c.stores.Comments.GetComment(ctx, oid); err != nil {
			return lookupErr(err, "comment", oid)
		}
		if upd.Author != nil {
			if _, err := c.stores.Users.GetUser(ctx, *upd.Author); err != nil {
				return lookupErr(err, "user", *upd.Author)
			}
		}
		if upd.Post != nil {
			if _, err := c.stores.Posts.GetPost(ctx, *upd.Post); err != nil {
				return lookupErr(err, "post", *upd.Post)
			}
		}

		matched, err := c.stores.Comments.UpdateComment(ctx, oid, upd)
		if err != nil {
			return fmt.Errorf("update comment %s: %w", id, err)
		}
		if !matched {
			return apperror.NotFound("comment", id)
		}

		updated, err = c.stores.Comments.GetComment(ctx, oid)
		if err != nil {
			return lookupErr(err, "comment", oid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, subscription.TopicComment, subscription.OpUpdate, oid)
	return updated, nil
}

// DeleteComment удаляет комментарий и вычищает его id из post.comments и author.comments
func (c *Coordinator) DeleteComment(ctx context.Context, id string) (bool, error) {
	oid, err := parseID("comment", id)
	if err != nil {
		return false, err
	}

	var deleted *models.Comment
	err = c.inTx(ctx, func(ctx context.Context) error {
		cm, err := c.stores.Comments.GetComment(ctx, oid)
		if err != nil {
			return lookupErr(err, "comment", oid)
		}
		deleted = cm

		removed, err := c.stores.Comments.DeleteComment(ctx, oid)
		if err != nil {
			return fmt.Errorf("delete comment %s: %w", id, err)
		}
		if !removed {
			return apperror.NotFound("comment", id)
		}

		// пост или автор могли уже быть удалены - тогда просто нечего чистить
		if _, err := c.stores.Posts.PullComment(ctx, cm.Post, oid); err != nil {
			return fmt.Errorf("pull comment from post %s: %w", cm.Post.Hex(), err)
		}
		if _, err := c.stores.Users.PullComment(ctx, cm.Author, oid); err != nil {
			return fmt.Errorf("pull comment from user %s: %w", cm.Author.Hex(), err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	c.publish(ctx, subscription.TopicComment, subscription.OpDelete, oid, deleted.Post, deleted.Author)
	return true, nil
}
