package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID возвращает идентификатор запроса из контекста
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLogger присваивает запросу id и пишет одну строку лога на запрос
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"request_id": reqID,
			"bytes":      ww.BytesWritten(),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP Request", fields)
			return
		}
		logger.Info("HTTP Request", fields)
	})
}
