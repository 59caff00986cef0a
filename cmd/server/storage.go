package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinzhu/gorm"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VitaminP8/socialgraph/internal/config"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/storage/memory"
	"github.com/VitaminP8/socialgraph/internal/storage/mongodb"
	"github.com/VitaminP8/socialgraph/internal/storage/postgres"
)

// backend - выбранное хранилище и функция закрытия соединения
type backend struct {
	stores storage.Stores
	close  func(ctx context.Context)
}

// openBackend подключается к хранилищу и создает схему (таблицы или индексы)
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	var b *backend

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DBDriver, cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			_ = postgres.Close(db)
			return nil, err
		}
		logger.Info("using SQL storage", "driver", cfg.DBDriver)
		b = &backend{
			stores: postgres.NewStores(db),
			close:  closeGorm(db, logger),
		}

	case config.StorageMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURL, logger)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info("using MongoDB storage", "database", cfg.MongoDatabase)
		b = &backend{
			stores: mongodb.NewStores(client, db),
			close:  disconnectMongo(client, logger),
		}

	case config.StorageMemory:
		logger.Info("using in-memory storage")
		b = &backend{
			stores: memory.NewStores(),
			close:  func(context.Context) {},
		}

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage)
	}

	// без TRANSACTIONS шаги составных мутаций фиксируются по отдельности
	if !cfg.Transactions {
		b.stores.Tx = storage.NoTransaction
	}
	return b, nil
}

func closeGorm(db *gorm.DB, logger *slog.Logger) func(context.Context) {
	return func(context.Context) {
		if err := postgres.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
}

func disconnectMongo(client *mongo.Client, logger *slog.Logger) func(context.Context) {
	return func(ctx context.Context) {
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("failed to disconnect from MongoDB", "error", err)
		}
	}
}
