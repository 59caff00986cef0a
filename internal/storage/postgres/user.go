package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/user"
	"github.com/VitaminP8/socialgraph/models"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var row userRow
	err := conn(ctx, s.db).Where("id = ?", id.Hex()).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("could not get user %s: %w", id.Hex(), translateError(err))
	}
	return row.toModel(), nil
}

func (s *UserPostgresStorage) GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	results := make([]*models.User, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	var rows []userRow
	err := conn(ctx, s.db).Where("id IN (?)", hexIDs(ids)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *UserPostgresStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := conn(ctx, s.db).Where("email = ?", email).First(&row).Error
	if err != nil {
		return nil, fmt.Errorf("could not find user by email: %w", translateError(err))
	}
	return row.toModel(), nil
}

func (s *UserPostgresStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	var rows []userRow
	err := conn(ctx, s.db).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	results := make([]*models.User, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toModel())
	}
	return results, nil
}

func (s *UserPostgresStorage) InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	row := userRowFromModel(u)
	if u.ID.IsZero() {
		row.ID = primitive.NewObjectID().Hex()
	}

	err := conn(ctx, s.db).Create(row).Error
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("could not create user: %w", translateError(err))
	}
	return parseRef(row.ID), nil
}

func (s *UserPostgresStorage) UpdateUser(ctx context.Context, id primitive.ObjectID, upd user.Update) (bool, error) {
	values := map[string]interface{}{}
	if upd.Name != nil {
		values["name"] = *upd.Name
	}
	if upd.Email != nil {
		values["email"] = *upd.Email
	}
	if upd.Password != nil {
		values["password"] = *upd.Password
	}
	if upd.Posts != nil {
		values["posts"] = idList(upd.Posts)
	}
	if upd.Comments != nil {
		values["comments"] = idList(upd.Comments)
	}
	if upd.LikedPosts != nil {
		values["liked_posts"] = idList(upd.LikedPosts)
	}

	if len(values) == 0 {
		_, err := s.GetUser(ctx, id)
		return err == nil, ignoreNotFound(err)
	}

	res := conn(ctx, s.db).Table(userRow{}.TableName()).Where("id = ?", id.Hex()).Updates(values)
	if res.Error != nil {
		return false, fmt.Errorf("could not update user: %w", translateError(res.Error))
	}
	return res.RowsAffected > 0, nil
}

func (s *UserPostgresStorage) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := conn(ctx, s.db).Where("id = ?", id.Hex()).Delete(&userRow{})
	if res.Error != nil {
		return false, fmt.Errorf("could not delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *UserPostgresStorage) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (bool, error) {
	var row userRow
	matched, err := modifyRow(ctx, s.db, &row, id.Hex(), func() map[string]interface{} {
		return map[string]interface{}{
			"comments": idList(models.WithoutID(row.Comments, commentID)),
		}
	})
	if err != nil {
		return false, fmt.Errorf("could not pull comment from user: %w", err)
	}
	return matched, nil
}
