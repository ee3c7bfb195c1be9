package testutils

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/middleware"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// WithChiURLParams кладёт параметры пути в контекст chi, как это делает роутер
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AsUser подставляет сессию пользователя вместо cookie auth-storage
func AsUser(req *http.Request, id int64, role models.Role) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), &middleware.Session{UserID: id, Role: role}))
}
