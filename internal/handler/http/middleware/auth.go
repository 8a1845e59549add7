package middleware

import (
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/auth"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != jwt.TokenTypeAccess || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Creator returns the identity recorded on registry writes made by r.
func Creator(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.SystemCreator
	}
	return auth.CreatorFromClaims(claims)
}
