package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/settlement-service/internal/auth"
	"github.com/settlement-service/pkg/logger"
	"github.com/settlement-service/pkg/models"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := getTokenFromRequest(r)
		if err != nil {
			logger.Log.Error(err.Error())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateJWT(tokenString)
		if err != nil {
			logger.Log.Error(err.Error())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates the review-queue surface. It only decides which routes
// are reachable; the service re-checks nothing, the server's transition
// rules are the real boundary.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(roleKey).(string)
		if !ok || role != models.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return 0, fmt.Errorf("no user id in context")
	}
	return userID, nil
}

func getTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization token missing")
	}
	split := strings.Split(authHeader, "Bearer ")
	if len(split) != 2 {
		return "", fmt.Errorf("malformed Authorization header")
	}
	return split[1], nil
}
