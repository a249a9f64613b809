package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/buildup/internal/common"
	"github.com/bobmcallan/buildup/internal/models"
)

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// correlationIDMiddleware extracts or generates a correlation ID and stores
// it in the caller context. The id becomes the envelope request field.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get("X-Correlation-ID")
		}
		if corrID == "" {
			corrID = uuid.New().String()
		}
		w.Header().Set("X-Correlation-ID", corrID)

		cc := &common.CallerContext{CorrelationID: corrID}
		next.ServeHTTP(w, r.WithContext(common.WithCallerContext(r.Context(), cc)))
	})
}

// loggingMiddleware logs HTTP requests and counts them. The query string is
// never logged because it carries the API secret.
func loggingMiddleware(a *API) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.requests.Add(1)
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			event := a.logger.Debug()
			if rw.statusCode >= 500 {
				event = a.logger.Error()
			} else if rw.statusCode >= 400 {
				event = a.logger.Info()
			}

			key := ""
			if cc := common.CallerContextFromContext(r.Context()); cc != nil {
				key = cc.Key
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Int("bytes", rw.bytesWritten).
				Dur("duration", time.Since(start)).
				Str("key", key).
				Str("correlation_id", w.Header().Get("X-Correlation-ID")).
				Msg("HTTP request")
		})
	}
}

// credentialsMiddleware rejects planning calls whose key/secret query
// parameters are not registered.
func credentialsMiddleware(a *API) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/v1/") {
				next.ServeHTTP(w, r)
				return
			}

			q := r.URL.Query()
			key := q.Get("key")
			if !a.authenticate(key, q.Get("secret")) {
				a.writeEnvelope(w, r, http.StatusUnauthorized, models.InfoInvalidCredentials, nil)
				return
			}

			if cc := common.CallerContextFromContext(r.Context()); cc != nil {
				cc.Key = key
			}
			next.ServeHTTP(w, r)
		})
	}
}

// applyMiddleware wraps the mux with the stub's middleware stack.
func applyMiddleware(handler http.Handler, a *API) http.Handler {
	// Apply in reverse order (last applied = first executed)
	handler = credentialsMiddleware(a)(handler)
	handler = loggingMiddleware(a)(handler)
	handler = correlationIDMiddleware(handler)
	handler = recoveryMiddleware(a.logger)(handler)
	return handler
}
