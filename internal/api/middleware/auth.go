package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader заголовок с ID пользователя
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth кладет ID пользователя из X-User-ID в контекст
// Заголовок используется только для атрибуции в логах; запросы без него не отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// UserIDOrAnonymous ID пользователя для логов
func UserIDOrAnonymous(ctx context.Context) string {
	if userID, ok := GetUserID(ctx); ok {
		return userID
	}
	return "anonymous"
}
