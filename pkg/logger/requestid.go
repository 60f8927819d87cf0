package logger

import (
	"context"

	"github.com/google/uuid"
)

// ContextWithRequestID returns a child context carrying a freshly generated
// request ID, along with the ID itself. Outbound HTTP calls tag their logs
// and their X-Request-Id header with it.
func ContextWithRequestID(ctx context.Context) (context.Context, string) {
	requestID := uuid.New().String()
	return context.WithValue(ctx, RequestIDKey, requestID), requestID
}
