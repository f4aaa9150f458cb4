package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/auth"
	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
)

// currentUser extracts the authenticated user id and role from the verified
// token claims.
func currentUser(r *http.Request) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return "", "", auth.ErrInvalidToken
	}

	return userID, role, nil
}
