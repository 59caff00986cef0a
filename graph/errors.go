package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/VitaminP8/socialgraph/internal/apperror"
	"github.com/VitaminP8/socialgraph/internal/reqctx"
)

const (
	codeInternal = "INTERNAL"
	internalMsg  = "internal system error"
)

// toGQLError переводит ошибку операции в ошибку ответа.
// Типизированные ошибки отдаются клиенту как есть (с кодом), внутренние - только в лог.
func toGQLError(ctx context.Context, logger *slog.Logger, err error) *gqlerror.Error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return &gqlerror.Error{
			Message:    appErr.Error(),
			Extensions: map[string]interface{}{"code": string(appErr.Kind)},
		}
	}

	var gerr *gqlerror.Error
	if errors.As(err, &gerr) {
		cp := *gerr
		return &cp
	}

	reqctx.Logger(ctx, logger).Error("operation failed", "error", err)
	ext := map[string]interface{}{"code": codeInternal}
	// по request_id клиент находит запись в логе
	if id, err := reqctx.GetRequestIDFromContext(ctx); err == nil {
		ext["request_id"] = id
	}
	return &gqlerror.Error{Message: internalMsg, Extensions: ext}
}
