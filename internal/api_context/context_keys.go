package api_context

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
)

type ctxKey string

const (
	IDKey         ctxKey = "id"
	StreamKeyKey  ctxKey = "streamKey"
	AuthUserIDKey ctxKey = "authUserID"
)

func IDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(IDKey).(db.UUID)
	return id, ok
}

func StreamKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(StreamKeyKey).(string)
	return key, ok
}

func AuthUserIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(db.UUID)
	return id, ok
}
