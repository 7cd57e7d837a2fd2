// Package auth guards the API behind the hosted identity provider. Tokens are
// verified locally with the shared JWT secret when one is configured and
// checked against the provider's user endpoint otherwise.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"appliance-service-backend/config"
)

// ErrNoSession is returned when a request carries no usable bearer token.
var ErrNoSession = errors.New("no session")

// Session is the authenticated caller of a request.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Verifier turns bearer tokens into sessions.
type Verifier struct {
	cfg    config.AuthConfig
	client *http.Client
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify validates token and returns the session it represents.
func (v *Verifier) Verify(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	if v.cfg.JWTSecret != "" {
		s, err := v.verifyLocal(token)
		if err == nil || v.cfg.ProviderURL == "" {
			return s, err
		}
	}
	if v.cfg.ProviderURL == "" {
		return nil, errors.New("no token verification configured")
	}
	return v.verifyRemote(ctx, token)
}

func (v *Verifier) verifyLocal(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("jwt invalid")
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, errors.New("jwt has no subject")
	}
	s := &Session{UserID: sub, Token: token}
	s.Email, _ = claims["email"].(string)
	s.Role, _ = claims["role"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// User is the account record returned by the identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(v.cfg.ProviderURL, "/")+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.cfg.AnonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("token validation failed: %s", strings.TrimSpace(string(body)))
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if u.ID == "" {
		return nil, errors.New("provider returned no user id")
	}
	return &Session{UserID: u.ID, Email: u.Email, Role: u.Role, Token: token}, nil
}

const sessionKey = "auth.session"

// Middleware rejects requests without a valid bearer token with 401 and
// stores the session on the gin context otherwise.
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión requerida"})
			return
		}
		s, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión inválida o expirada"})
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session stored by Middleware, or nil.
func SessionFrom(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
