package graph

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/VitaminP8/socialgraph/internal/reqctx"
)

// NewHandler собирает gqlgen-сервер поверх Executor: GET и POST, кэш разобранных запросов, APQ.
// complexityLimit <= 0 отключает ограничение сложности.
func NewHandler(exec *Executor, logger *slog.Logger, complexityLimit int) *handler.Server {
	if logger == nil {
		logger = slog.Default()
	}

	srv := handler.New(exec)
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.Use(extension.AutomaticPersistedQuery{Cache: lru.New[string](100)})
	if complexityLimit > 0 {
		srv.Use(extension.FixedComplexityLimit(complexityLimit))
	}

	srv.SetRecoverFunc(func(ctx context.Context, err any) error {
		reqctx.Logger(ctx, logger).Error("graphql panic", "panic", fmt.Sprint(err), "stack", string(debug.Stack()))
		return gqlerror.Errorf(internalMsg)
	})

	return srv
}
