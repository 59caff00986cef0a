package storage

import (
	"context"
	"errors"

	"github.com/VitaminP8/socialgraph/internal/comment"
	"github.com/VitaminP8/socialgraph/internal/post"
	"github.com/VitaminP8/socialgraph/internal/user"
)

var (
	// ErrNotFound - документа с таким id (email, content) нет
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate - нарушен уникальный индекс (email у пользователей, content у постов)
	ErrDuplicate = errors.New("duplicate key")
)

// Transactor выполняет fn в транзакции хранилища, если движок ее поддерживает.
// Внутри fn нужно использовать переданный ctx - в нем лежит транзакция.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTransaction struct{}

func (noTransaction) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NoTransaction просто вызывает fn: шаги фиксируются по отдельности, как в исходной схеме без транзакций
var NoTransaction Transactor = noTransaction{}

// Stores - набор хранилищ, который явно передается в координатор и резолверы (вместо глобального соединения)
type Stores struct {
	Users    user.UserStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Tx       Transactor
}

// Transactor возвращает Tx или NoTransaction, если он не задан
func (s Stores) Transactor() Transactor {
	if s.Tx == nil {
		return NoTransaction
	}
	return s.Tx
}
