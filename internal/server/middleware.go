package server

import (
	"context"
	"net/http"
	"time"

	"diaglistapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const roleContextKey contextKey = "role"

const roleCookieName = "role_token"

// Claims represents the role session claims. There are no user
// accounts, the workstation picks a role and works under it.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// roleMiddleware restricts a route group to the given roles. A missing
// or invalid session sends the browser back to the role picker.
func (s *Server) roleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := s.parseRoleCookie(r)
			if claims == nil {
				clearRoleCookie(w)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), roleContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseRoleCookie validates the session cookie and returns its claims,
// or nil when there is no usable session.
func (s *Server) parseRoleCookie(r *http.Request) *Claims {
	cookie, err := r.Cookie(roleCookieName)
	if err != nil {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Session.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	if claims.Role != domain.RoleManager && claims.Role != domain.RoleExecutor {
		return nil
	}
	return claims
}

// currentRole extracts the viewer role from request context
func currentRole(r *http.Request) string {
	claims, ok := r.Context().Value(roleContextKey).(*Claims)
	if !ok {
		return ""
	}
	return claims.Role
}

// generateToken creates a signed role session token
func (s *Server) generateToken(role string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.config.Session.ExpirationHours) * time.Hour)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.Workshop.Name,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Session.Secret))
}

// setRoleCookie sets the role session cookie
func (s *Server) setRoleCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     roleCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !s.config.Debug, // Enable in production with HTTPS
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRoleCookie removes the role session cookie
func clearRoleCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     roleCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
