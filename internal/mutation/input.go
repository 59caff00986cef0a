package mutation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/models"
)

// Списки ссылок во входных данных: nil - поле не передано, пустой срез - передан пустой список.

type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Posts      []string
	Comments   []string
	LikedPosts []string
}

func (in *CreateUserInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Password, validation.Required),
	)
}

type UpdateUserInput struct {
	Name       *string
	Email      *string
	Password   *string
	Posts      []string
	Comments   []string
	LikedPosts []string
}

func (in *UpdateUserInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.NilOrNotEmpty),
		validation.Field(&in.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&in.Password, validation.NilOrNotEmpty),
	)
}

type CreatePostInput struct {
	Content  string
	Author   string
	Comments []string
	Likes    []string
}

func (in *CreatePostInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Author, validation.Required),
	)
}

// UpdatePostInput: content перезаписывается всегда, остальное - только если передано
type UpdatePostInput struct {
	Content  string
	Author   *string
	Comments []string
	Likes    []string
}

func (in *UpdatePostInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Content, validation.Required),
	)
}

type CreateCommentInput struct {
	Text   string
	Author string
	Post   string
}

func (in *CreateCommentInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Text, validation.Required),
		validation.Field(&in.Author, validation.Required),
		validation.Field(&in.Post, validation.Required),
	)
}

type UpdateCommentInput struct {
	Text   *string
	Author *string
	Post   *string
}

func (in *UpdateCommentInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Text, validation.NilOrNotEmpty),
	)
}

type validatable interface {
	Validate() error
}

func validate(entity string, in validatable) error {
	if err := in.Validate(); err != nil {
		return apperror.InvalidInput(entity, err)
	}
	return nil
}

func parseID(entity, id string) (primitive.ObjectID, error) {
	return models.ParseID(entity, id)
}

// parseOptionalIDs сохраняет различие между "не передано" (nil) и пустым списком
func parseOptionalIDs(entity string, ids []string) ([]primitive.ObjectID, error) {
	if ids == nil {
		return nil, nil
	}
	return models.ParseIDs(entity, ids)
}
