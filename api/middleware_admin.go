package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type adminClaimsKey struct{}

// AdminClaims carries the authenticated back-office identity extracted from a
// verified access token
type AdminClaims struct {
	AdminID string
	Email   string
	Roles   []string
}

// AdminOnly verifies the HS256 access token issued at admin login and stamps
// the admin identity into the request context. The complaint handlers read the
// acting role from here, never from the request body.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		reqToken := r.Header.Get("Authorization")
		splitToken := strings.Split(reqToken, "Bearer ")
		if len(splitToken) < 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(splitToken[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			zap.S().Debugw("rejected admin token", "url", r.URL, "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		scope, _ := claims["scope"].(string)
		if scope != "admin" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "forbidden"}`))
			return
		}

		ac := AdminClaims{}
		ac.AdminID, _ = claims["sub"].(string)
		ac.Email, _ = claims["email"].(string)
		if roles, ok := claims["roles"].([]interface{}); ok {
			for _, role := range roles {
				if s, ok := role.(string); ok {
					ac.Roles = append(ac.Roles, s)
				}
			}
		}

		ctx := context.WithValue(r.Context(), adminClaimsKey{}, ac)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the authenticated admin identity, if any
func AdminFromContext(ctx context.Context) (AdminClaims, bool) {
	ac, ok := ctx.Value(adminClaimsKey{}).(AdminClaims)
	return ac, ok
}
