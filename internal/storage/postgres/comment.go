package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/models"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var row commentRow
	err := conn(ctx, s.db).Where("id = ?", id.Hex()).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", translateError(err))
	}
	return row.toModel(), nil
}

func (s *CommentPostgresStorage) GetComments(ctx context.Context, ids []primitive.ObjectID) ([]*models.Comment, error) {
	results := make([]*models.Comment, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	var rows []commentRow
	err := conn(ctx, s.db).Where("id IN (?)", hexIDs(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *CommentPostgresStorage) ListComments(ctx context.Context) ([]*models.Comment, error) {
	var rows []commentRow
	err := conn(ctx, s.db).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	results := make([]*models.Comment, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *CommentPostgresStorage) InsertComment(ctx context.Context, c *models.Comment) (primitive.ObjectID, error) {
	row := commentRowFromModel(c)
	if c.ID.IsZero() {
		row.ID = primitive.NewObjectID().Hex()
	}

	err := conn(ctx, s.db).Create(row).Error
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create comment: %w", translateError(err))
	}
	return parseRef(row.ID), nil
}

func (s *CommentPostgresStorage) UpdateComment(ctx context.Context, id primitive.ObjectID, upd comment.Update) (bool, error) {
	values := map[string]interface{}{}
	if upd.Text != nil {
		values["text"] = *upd.Text
	}
	if upd.Author != nil {
		values["author"] = refHex(*upd.Author)
	}
	if upd.Post != nil {
		values["post"] = refHex(*upd.Post)
	}

	if len(values) == 0 {
		_, err := s.GetComment(ctx, id)
		return err == nil, ignoreNotFound(err)
	}

	res := conn(ctx, s.db).Table(commentRow{}.TableName()).Where("id = ?", id.Hex()).Updates(values)
	if res.Error != nil {
		return false, fmt.Errorf("could not update comment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *CommentPostgresStorage) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := conn(ctx, s.db).Where("id = ?", id.Hex()).Delete(&commentRow{})
	if res.Error != nil {
		return false, fmt.Errorf("could not delete comment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ignoreNotFound: для "пустого" обновления отсутствие документа - это matched=false, а не ошибка
func ignoreNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}
