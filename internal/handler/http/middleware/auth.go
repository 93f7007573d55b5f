package middleware

import (
	"net/http"

	"github.com/angkorhr/hrms-backend-go/internal/domain/auth"
	"github.com/angkorhr/hrms-backend-go/internal/domain/user"
	"github.com/angkorhr/hrms-backend-go/internal/handler/http/response"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid, unrevoked access token.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if raw := jwtauth.TokenFromHeader(r); raw != "" && jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromRequest resolves the caller's identity from verified JWT
// claims. Handlers pass it into services explicitly; nothing below the
// handler layer reads the request context for auth state.
func IdentityFromRequest(r *http.Request) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return user.Identity{}, auth.ErrInvalidToken
	}

	identity := user.Identity{UserID: userID}
	if employeeID, ok := claims["employee_id"].(string); ok {
		identity.EmployeeID = employeeID
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = user.Role(role)
	}

	return identity, nil
}
