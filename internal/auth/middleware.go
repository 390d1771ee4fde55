package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/paylens/paylens-api/internal/logger"
)

var (
	// ErrInvalidToken is returned when the provided token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingToken is returned when no bearer token is present
	ErrMissingToken = errors.New("missing authorization token")
)

const (
	// ContextKeyUserID is the gin context key holding the token subject.
	ContextKeyUserID = "user_id"
	// ContextKeyAuthToken is the gin context key holding the raw bearer token,
	// forwarded verbatim to the upstream payments API.
	ContextKeyAuthToken = "auth_token"
)

// Claims represents the expected structure of the JWT claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Middleware validates HS256 bearer tokens and stashes the subject and
// raw token on the request context.
type Middleware struct {
	secret []byte
}

// NewMiddleware creates an auth middleware with the given signing secret.
func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

// validateToken parses and validates the token signature and expiry.
func (m *Middleware) validateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := m.validateToken(tokenString)
		if err != nil {
			logger.Debug("rejected bearer token: " + err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Set(ContextKeyAuthToken, tokenString)
		c.Next()
	}
}

// TokenFromContext returns the raw bearer token stored by RequireAuth.
// An empty string means the request was not authenticated.
func TokenFromContext(c *gin.Context) string {
	token, _ := c.Get(ContextKeyAuthToken)
	s, _ := token.(string)
	return s
}

// UserIDFromContext returns the token subject stored by RequireAuth.
func UserIDFromContext(c *gin.Context) string {
	id, _ := c.Get(ContextKeyUserID)
	s, _ := id.(string)
	return s
}
