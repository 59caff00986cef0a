package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/password"
	"github.com/VitaminP8/socialgraph/internal/reqctx"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/subscription"
)

// Coordinator выполняет все операции записи.
// Каждая операция сначала проверяет все предусловия и только потом пишет;
// многошаговые записи идут через stores.Transactor().
type Coordinator struct {
	stores storage.Stores
	hasher password.Hasher
	feed   subscription.Manager
	logger *slog.Logger
}

// NewCoordinator: feed может быть nil, тогда события не публикуются
func NewCoordinator(stores storage.Stores, hasher password.Hasher, feed subscription.Manager, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		stores: stores,
		hasher: hasher,
		feed:   feed,
		logger: logger,
	}
}

func (c *Coordinator) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.stores.Transactor().WithinTransaction(ctx, fn)
}

func (c *Coordinator) log(ctx context.Context) *slog.Logger {
	return reqctx.Logger(ctx, c.logger)
}

// publish вызывается только после успешной фиксации
func (c *Coordinator) publish(ctx context.Context, topic subscription.Topic, op subscription.Op, id primitive.ObjectID, related ...primitive.ObjectID) {
	c.log(ctx).Info("mutation committed", "entity", topic, "op", op, "id", id.Hex())
	if c.feed == nil {
		return
	}

	ev := subscription.Event{Op: op, Entity: topic, ID: id.Hex()}
	for _, r := range related {
		ev.Related = append(ev.Related, r.Hex())
	}
	c.feed.Publish(topic, ev)
}

// lookupErr переводит ошибку чтения при проверке предусловия в типизированную
func lookupErr(err error, entity string, id primitive.ObjectID) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperror.NotFound(entity, id.Hex())
	}
	return fmt.Errorf("get %s %s: %w", entity, id.Hex(), err)
}

// writeErr - то же для записи: конфликт уникального индекса значит, что гонку проиграли
func writeErr(err error, entity, conflict string) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return apperror.AlreadyExists(entity, conflict)
	}
	return fmt.Errorf("write %s: %w", entity, err)
}

// absent - для поиска по уникальному полю: true, если документа нет
func absent(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	return false, err
}

func optionalID(entity string, id *string) (*primitive.ObjectID, error) {
	if id == nil {
		return nil, nil
	}
	oid, err := parseID(entity, *id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}
