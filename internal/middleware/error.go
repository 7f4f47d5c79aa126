package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/types"
)

// responseRecorder is a custom ResponseWriter that swallows non-JSON error bodies
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	rewrite     bool
	body        strings.Builder
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.statusCode = statusCode
	ct := r.Header().Get("Content-Type")
	r.rewrite = statusCode >= 400 && !strings.HasPrefix(ct, "application/json")
	if r.rewrite {
		r.Header().Set("Content-Type", "application/json")
		r.Header().Del("Content-Length")
		r.Header().Del("X-Content-Type-Options")
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if r.rewrite {
		// Do not write the original error body to the response
		r.body.Write(b)
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler turns panics and plain-text error responses into JSON
// error bodies. JSON responses pass through untouched.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				logging.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("recovered from panic")
				if !rec.wroteHeader {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(types.ErrorResponse{Error: "Internal Server Error"})
				}
				return
			}
			if rec.rewrite {
				msg := strings.TrimSpace(rec.body.String())
				if msg == "" {
					msg = http.StatusText(rec.statusCode)
				}
				json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
