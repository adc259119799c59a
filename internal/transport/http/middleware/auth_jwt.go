package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gab-correia/w1-app/internal/core/auth"
	"github.com/gab-correia/w1-app/internal/core/metrics"
	"github.com/gab-correia/w1-app/internal/domain"
	resp "github.com/gab-correia/w1-app/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthJWT rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>". Why a token failed is logged, never
// returned.
func AuthJWT(v TokenVerifier, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			reject(c, l, "missing", nil)
			return
		}
		claims, err := v.Parse(tok)
		if err != nil {
			reject(c, l, auth.FailureReason(err), err)
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

func bearer(h string) (string, bool) {
	scheme, tok, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

func reject(c *gin.Context, l *zap.Logger, reason string, err error) {
	metrics.TokenRejections.WithLabelValues(reason).Inc()
	if l != nil {
		l.Debug("auth gate rejected request",
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Unauthenticated())
}

// Identity is the authenticated caller attached by AuthJWT.
type Identity struct {
	UserID string
	Role   domain.Role
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	uid := c.GetString(KeyUserID)
	role, _ := c.Get(KeyRole)
	r, ok := role.(domain.Role)
	if uid == "" || !ok {
		return Identity{}, false
	}
	return Identity{UserID: uid, Role: r}, true
}
