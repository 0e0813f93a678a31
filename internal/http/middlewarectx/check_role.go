package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
)

// RequireRole создает middleware, пропускающий только пользователей с заданной ролью.
// Несовпадение роли — HTTP 403, отсутствие идентификации — HTTP 401.
func RequireRole(log *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := r.Context().Value(Role).(string)
			if !ok || current == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if current != role {
				log.Error("access denied", slog.String("required_role", role),
					slog.String("current_role", current))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
