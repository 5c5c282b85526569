package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
)

const HeaderCorrelationID = "X-Correlation-Id"

// CorrelationID reuses the caller's X-Correlation-Id or generates one,
// echoes it on the response and attaches it to the request context and to
// the request logger.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(HeaderCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}

		w.Header().Set(HeaderCorrelationID, cid)

		ctx := contracts.WithCorrelationID(r.Context(), cid)
		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("correlation_id", cid)
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
