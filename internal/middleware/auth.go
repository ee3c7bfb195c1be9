package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// SessionCookie - cookie, которую пишет фронтенд после входа
const SessionCookie = "auth-storage"

// Session - пользователь текущего запроса
type Session struct {
	UserID int64
	Role   models.Role
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

type sessionKey struct{}

// SessionFrom возвращает сессию или nil, если пользователь не вошёл
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// WithSession кладёт сессию в контекст
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// authStorage - формат значения cookie (URL-encoded JSON)
type authStorage struct {
	State struct {
		IsAuthenticated bool `json:"isAuthenticated"`
		User            *struct {
			ID   int64       `json:"id"`
			Role models.Role `json:"role"`
		} `json:"user"`
	} `json:"state"`
}

// ParseSession разбирает значение cookie; nil - сессии нет
func ParseSession(raw string) (*Session, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, err
	}
	var st authStorage
	if err := json.Unmarshal([]byte(decoded), &st); err != nil {
		return nil, err
	}
	if !st.State.IsAuthenticated || st.State.User == nil {
		return nil, nil
	}
	return &Session{UserID: st.State.User.ID, Role: st.State.User.Role}, nil
}

// LoadSession читает cookie и кладёт сессию в контекст; проверок доступа не делает
func LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		s, err := ParseSession(cookie.Value)
		if err != nil {
			logger.Warn("malformed session cookie", map[string]any{
				"request_id": RequestID(r.Context()),
				"error":      err.Error(),
			})
			next.ServeHTTP(w, r)
			return
		}
		if s != nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth пропускает только вошедших пользователей
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) == nil {
			deny(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает пользователей с одной из ролей; admin проходит всегда
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := SessionFrom(r.Context())
			if s == nil {
				deny(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			if s.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if s.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			deny(w, http.StatusForbidden, "Forbidden", "insufficient role")
		})
	}
}

func deny(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}
