package middleware

import (
	"net/http"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
