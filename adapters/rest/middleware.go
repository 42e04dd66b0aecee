package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parniiyan/To-do-list/core"
)

const RequestIDHeader = "X-Request-ID"

// IdentityResolver turns the raw bearer token ("" when absent) into an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (core.Identity, error)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Debug("request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// WithIdentity resolves the Authorization header and stores the identity in
// the request context. A missing header means Anonymous; a malformed or
// invalid token is rejected with 401.
func WithIdentity(log *slog.Logger, resolver IdentityResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			WriteErr(w, core.ErrUnauthenticated)
			return
		}

		id, err := resolver.Resolve(r.Context(), token)
		if err != nil {
			log.Debug("identity rejected", "error", err)
			WriteErr(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(core.WithIdentity(r.Context(), id)))
	})
}

// RequireIdentity rejects anonymous callers before the handler runs.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if core.IdentityFrom(r.Context()).IsAnonymous() {
			WriteErr(w, core.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", true
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
