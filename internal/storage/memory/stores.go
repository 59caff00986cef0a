package memory

import "github.com/VitaminP8/socialgraph/internal/storage"

// NewStores собирает in-memory хранилища. Транзакций нет: каждый шаг применяется сразу
func NewStores() storage.Stores {
	return storage.Stores{
		Users:    NewUserMemoryStorage(),
		Posts:    NewPostMemoryStorage(),
		Comments: NewCommentMemoryStorage(),
		Tx:       storage.NoTransaction,
	}
}
