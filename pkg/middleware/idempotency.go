package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"
)

// IdempotencyStore keeps recorded responses and the in-flight markers.
// Get returns nil, nil on a miss.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type cachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// recordingWriter tees the body so it can be stored after the handler returns.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first response recorded for an Idempotency-Key on
// mutating requests. A second request with the same key while the first is still
// running gets 409. Store failures degrade to normal processing.
func Idempotency(store IdempotencyStore, ttl, lockTTL time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "idempotency"))

	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			// StripSlashes only rewrites the route path, so both spellings must share a record
			path := strings.TrimSuffix(r.URL.Path, "/")
			cacheKey := r.Method + ":" + path + ":" + key
			log := log.With(zap.String("idempotency_key", key), zap.String("path", path))

			data, err := store.Get(ctx, cacheKey)
			if err != nil {
				log.Warn("Idempotency lookup failed, processing without it", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if replay(w, data, log) {
				return
			}

			acquired, err := store.Acquire(ctx, cacheKey, lockTTL)
			if err != nil {
				log.Warn("Idempotency lock failed, processing without it", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				utils.ResponseConflict(w, "A request with this Idempotency-Key is already in progress")
				return
			}
			defer func() {
				// the request context may already be cancelled
				if err := store.Release(context.WithoutCancel(ctx), cacheKey); err != nil {
					log.Warn("Failed to release idempotency lock", zap.Error(err))
				}
			}()

			// the holder may have recorded its response and released between our Get and Acquire
			data, err = store.Get(ctx, cacheKey)
			if err != nil {
				log.Warn("Idempotency lookup failed, processing without it", zap.Error(err))
			} else if replay(w, data, log) {
				return
			}

			rw := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			// 5xx responses are not final, let the client retry them
			if rw.statusCode >= http.StatusInternalServerError {
				return
			}

			data, err = json.Marshal(cachedResponse{
				StatusCode:  rw.statusCode,
				ContentType: rw.Header().Get("Content-Type"),
				Body:        rw.body.Bytes(),
			})
			if err == nil {
				err = store.Set(context.WithoutCancel(ctx), cacheKey, data, ttl)
			}
			if err != nil {
				log.Warn("Failed to record response", zap.Error(err))
			}
		})
	}
}

// replay writes a recorded response. It returns false on a miss or an unreadable record.
func replay(w http.ResponseWriter, data []byte, log *zap.Logger) bool {
	if data == nil {
		return false
	}
	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Warn("Discarding unreadable recorded response", zap.Error(err))
		return false
	}

	log.Info("Replaying recorded response", zap.Int("status", cached.StatusCode))
	if cached.ContentType != "" {
		w.Header().Set("Content-Type", cached.ContentType)
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(cached.StatusCode)
	w.Write(cached.Body)
	return true
}
