package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/VitaminP8/socialgraph/internal/storage"
)

// Open подключается к базе (postgres или sqlite3). Соединение возвращается вызывающему, глобальной переменной нет
func Open(driver, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	db.LogMode(false)

	if driver == "sqlite3" {
		// одна база :memory: на одно соединение, поэтому держим ровно одно
		db.DB().SetMaxOpenConns(1)
	}

	logger.Info("successfully connected to the database", "driver", driver)
	return db, nil
}

// Migrate создает таблицы users/posts/comments и уникальные индексы (email, content)
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&userRow{}, &postRow{}, &commentRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой данных
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}
	return nil
}

// NewStores собирает gorm-хранилища поверх одного соединения
func NewStores(db *gorm.DB) storage.Stores {
	return storage.Stores{
		Users:    NewUserPostgresStorage(db),
		Posts:    NewPostPostgresStorage(db),
		Comments: NewCommentPostgresStorage(db),
		Tx:       NewTransactor(db),
	}
}

type txKey struct{}

// conn возвращает открытую транзакцию из контекста, если она есть
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}

type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// вложенный вызов работает в уже открытой транзакции
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := t.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// modifyRow читает строку под блокировкой, применяет fn и сохраняет изменения в одной транзакции.
// Так реализованы $addToSet/$pull для списков, которые в SQL лежат JSON-текстом.
func modifyRow(ctx context.Context, db *gorm.DB, row interface{}, id string, fn func() map[string]interface{}) (bool, error) {
	matched := false
	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		tx := conn(ctx, db)

		q := tx
		if tx.Dialect().GetName() == "postgres" {
			q = tx.Set("gorm:query_option", "FOR UPDATE")
		}
		err := q.Where("id = ?", id).First(row).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil
		}
		if err != nil {
			return err
		}

		matched = true
		return tx.Model(row).Updates(fn()).Error
	})
	return matched, err
}

// translateError приводит ошибки драйверов к ошибкам пакета storage
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if gorm.IsRecordNotFoundError(err) {
		return storage.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return fmt.Errorf("%v: %w", err, storage.ErrDuplicate)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%v: %w", err, storage.ErrDuplicate)
	}
	return err
}
