package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

// AdminChecker answers whether a user currently holds an admin grant.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Gate guards routes. RequireUser trusts the token claims as issued;
// RequireAdmin additionally asks the admin registry on every request so a
// revocation takes effect immediately.
type Gate struct {
	tokens *TokenService
	admins AdminChecker
	logger *zap.SugaredLogger
}

func NewGate(tokens *TokenService, admins AdminChecker, logger *zap.SugaredLogger) *Gate {
	return &Gate{tokens: tokens, admins: admins, logger: logger}
}

// bearerToken extracts the credential of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authenticate verifies the bearer token and writes the failure response itself.
func (g *Gate) authenticate(w http.ResponseWriter, r *http.Request) (*Claims, bool) {
	token, ok := bearerToken(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "No token provided")
		return nil, false
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
		httpx.Error(w, http.StatusForbidden, "Invalid token")
		return nil, false
	}
	return claims, true
}

// RequireUser admits requests carrying a valid token.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin admits requests whose token belongs to a current admin.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		isAdmin, err := g.admins.IsAdmin(r.Context(), claims.ID)
		if err != nil {
			g.logger.Errorw("admin lookup failed", "user_id", claims.ID, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !isAdmin {
			g.logger.Infow("admin access denied", "user_id", claims.ID, "path", r.URL.Path)
			httpx.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// IsSelf reports whether the authenticated caller is user id.
func IsSelf(ctx context.Context, id int64) bool {
	c, ok := ClaimsFromContext(ctx)
	return ok && c.ID == id
}
