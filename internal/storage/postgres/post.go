package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/models"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var row postRow
	err := conn(ctx, s.db).Where("id = ?", id.Hex()).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", translateError(err))
	}
	return row.toModel(), nil
}

func (s *PostPostgresStorage) GetPosts(ctx context.Context, ids []primitive.ObjectID) ([]*models.Post, error) {
	results := make([]*models.Post, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	var rows []postRow
	err := conn(ctx, s.db).Where("id IN (?)", hexIDs(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *PostPostgresStorage) FindPostByContent(ctx context.Context, content string) (*models.Post, error) {
	var row postRow
	err := conn(ctx, s.db).Where("content = ?", content).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("could not find post by content: %w", translateError(err))
	}
	return row.toModel(), nil
}

func (s *PostPostgresStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	var rows []postRow
	err := conn(ctx, s.db).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*models.Post, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *PostPostgresStorage) InsertPost(ctx context.Context, p *models.Post) (primitive.ObjectID, error) {
	row := postRowFromModel(p)
	if p.ID.IsZero() {
		row.ID = primitive.NewObjectID().Hex()
	}

	err := conn(ctx, s.db).Create(row).Error
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create post: %w", translateError(err))
	}
	return parseRef(row.ID), nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id primitive.ObjectID, upd post.Update) (bool, error) {
	values := map[string]interface{}{}
	if upd.Content != nil {
		values["content"] = *upd.Content
	}
	if upd.Author != nil {
		values["author"] = refHex(*upd.Author)
	}
	if upd.Comments != nil {
		values["comments"] = idList(upd.Comments)
	}
	if upd.Likes != nil {
		values["likes"] = idList(upd.Likes)
	}

	if len(values) == 0 {
		_, err := s.GetPost(ctx, id)
		return err == nil, ignoreNotFound(err)
	}

	res := conn(ctx, s.db).Table(postRow{}.TableName()).Where("id = ?", id.Hex()).Updates(values)
	if res.Error != nil {
		return false, fmt.Errorf("could not update post: %w", translateError(res.Error))
	}
	return res.RowsAffected > 0, nil
}

func (s *PostPostgresStorage) DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := conn(ctx, s.db).Where("id = ?", id.Hex()).Delete(&postRow{})
	if res.Error != nil {
		return false, fmt.Errorf("could not delete post: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *PostPostgresStorage) DeletePosts(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := conn(ctx, s.db).Where("id IN (?)", hexIDs(ids)).Delete(&postRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("could not delete posts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *PostPostgresStorage) AddLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	var row postRow
	matched, err := modifyRow(ctx, s.db, &row, id.Hex(), func() map[string]interface{} {
		likes := []primitive.ObjectID(row.Likes)
		if !models.ContainsID(likes, userID) {
			likes = append(likes, userID)
		}
		return map[string]interface{}{"likes": idList(likes)}
	})
	if err != nil {
		return false, fmt.Errorf("could not add like: %w", err)
	}
	return matched, nil
}

func (s *PostPostgresStorage) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	var row postRow
	matched, err := modifyRow(ctx, s.db, &row, id.Hex(), func() map[string]interface{} {
		return map[string]interface{}{"likes": idList(models.WithoutID(row.Likes, userID))}
	})
	if err != nil {
		return false, fmt.Errorf("could not remove like: %w", err)
	}
	return matched, nil
}

func (s *PostPostgresStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	var row postRow
	matched, err := modifyRow(ctx, s.db, &row, id.Hex(), func() map[string]interface{} {
		return map[string]interface{}{"comments": idList(models.WithoutID(row.Comments, commentID))}
	})
	if err != nil {
		return false, fmt.Errorf("could not pull comment from post: %w", err)
	}
	return matched, nil
}
