package core

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ContextKey string

const (
	CorrelationIDHeader               = "Correlation-Id"
	CorrelationIDContextKey ContextKey = "correlation_id"
)

// CorrelationIDMiddleware propagates the Correlation-Id header into the
// request context, minting a new one when the caller did not send any.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		correlationID := r.Header.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		ctx = context.WithValue(ctx, CorrelationIDContextKey, correlationID)
		w.Header().Set(CorrelationIDHeader, correlationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDContextKey).(string); ok {
		return correlationID
	}

	return ""
}
