package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yanqian/tennis-playability/pkg/util"
)

const sessionIDKey = "session_id"

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
}

// SessionManager binds each browser to a selection state through an HS256-signed cookie
// whose jti claim is the session id.
type SessionManager struct {
	cfg SessionConfig
	now func() time.Time
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(cfg SessionConfig) *SessionManager {
	return &SessionManager{cfg: cfg, now: util.NowUTC}
}

// Middleware makes sure every request carries a valid session id, issuing a fresh cookie
// when the current one is missing, expired or tampered with.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(m.cfg.CookieName); err == nil && raw != "" {
			if id, err := m.parse(raw); err == nil {
				c.Set(sessionIDKey, id)
				c.Next()
				return
			}
		}
		id := uuid.NewString()
		token, err := m.sign(id)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "session_error", "failed to start session", err))
			return
		}
		maxAge := 0
		if m.cfg.TTL > 0 {
			maxAge = int(m.cfg.TTL / time.Second)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cfg.CookieName, token, maxAge, "/", "", c.Request.TLS != nil, true)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func (m *SessionManager) sign(id string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:       id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.cfg.TTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
}

func (m *SessionManager) parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", errors.New("session id is not a uuid")
	}
	return claims.ID, nil
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
