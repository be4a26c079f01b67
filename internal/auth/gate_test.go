package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdmins struct {
	ids   map[int64]bool
	err   error
	calls int
}

func (f *fakeAdmins) IsAdmin(_ context.Context, id int64) (bool, error) {
	f.calls++
	return f.ids[id], f.err
}

func echoClaims(w http.ResponseWriter, r *http.Request) {
	c, ok := ClaimsFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Header().Set("X-User", c.Email)
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRequireUser(t *testing.T) {
	tokens := newTokens(t)
	g := NewGate(tokens, &fakeAdmins{}, zap.NewNop().Sugar())
	h := g.RequireUser(http.HandlerFunc(echoClaims))
	tok, err := tokens.Issue(Identity{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	rr := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, rr.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Basic abc").Code)

	rr = serve(h, "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rr.Body.String())

	rr = serve(h, "bearer "+tok)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a@x.com", rr.Header().Get("X-User"))
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens(t)
	admins := &fakeAdmins{ids: map[int64]bool{1: true}}
	g := NewGate(tokens, admins, zap.NewNop().Sugar())
	h := g.RequireAdmin(http.HandlerFunc(echoClaims))

	adminTok, err := tokens.Issue(Identity{ID: 1, Email: "admin@x.com"})
	require.NoError(t, err)
	userTok, err := tokens.Issue(Identity{ID: 2, Email: "u@x.com"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(h, "Bearer "+adminTok).Code)

	rr := serve(h, "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, rr.Body.String())

	// revocation is seen on the next request
	admins.ids[1] = false
	assert.Equal(t, http.StatusForbidden, serve(h, "Bearer "+adminTok).Code)
	assert.Equal(t, 3, admins.calls)

	// no lookup without a valid token
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, 3, admins.calls)

	admins.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, serve(h, "Bearer "+adminTok).Code)
}

func TestIsSelf(t *testing.T) {
	ctx := WithClaims(context.Background(), &Claims{ID: 4})
	assert.True(t, IsSelf(ctx, 4))
	assert.False(t, IsSelf(ctx, 5))
	assert.False(t, IsSelf(context.Background(), 4))
}
