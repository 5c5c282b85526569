package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
)

// Recover turns a panic into a 500 JSON error carrying the correlation id.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic recovered")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":         "internal server error",
				"correlationId": contracts.CorrelationID(r.Context()),
			})
		}()
		next.ServeHTTP(w, r)
	})
}
