package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/timeblock/pkg/httpcontext"
	"github.com/fastygo/timeblock/repository"
)

// HeaderIdempotencyKey is sent by clients on create requests.
const HeaderIdempotencyKey = "Idempotency-Key"

// Idempotency rejects a POST whose Idempotency-Key was already seen within
// ttl with 409 CONFLICT. Requests without the header pass through. A failed
// request releases its key so the client may try again.
func Idempotency(keys repository.IdempotencyRepository, ttl time.Duration, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			key := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderIdempotencyKey)))
			if keys == nil || key == "" || !ctx.IsPost() {
				next(ctx)
				return
			}
			if userID, ok := ctx.UserValue(httpcontext.UserValueUserID).(string); ok && userID != "" {
				key = userID + ":" + key
			}

			opCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			reserved, err := keys.Reserve(opCtx, key, ttl)
			cancel()
			if err != nil {
				logger.Warn("idempotency reserve failed", zap.String("key", key), zap.Error(err))
				next(ctx)
				return
			}
			if !reserved {
				logger.Info("duplicate request rejected", zap.String("key", key), zap.ByteString("path", ctx.Path()))
				writeError(ctx, fasthttp.StatusConflict, "CONFLICT", "duplicate request")
				return
			}

			next(ctx)

			if ctx.Response.StatusCode() >= fasthttp.StatusBadRequest {
				relCtx, relCancel := context.WithTimeout(context.Background(), 2*time.Second)
				if err := keys.Release(relCtx, key); err != nil {
					logger.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
				relCancel()
			}
		}
	}
}
