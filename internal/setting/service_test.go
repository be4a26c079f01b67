package setting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/testutil"
)

func newSettings(t *testing.T) *Service {
	t.Helper()
	return NewService(repo.NewRepo(testutil.NewDB(t)))
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	s := newSettings(t)
	ctx := context.Background()

	n, err := s.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(entity.Defaults), n)

	require.NoError(t, s.Update(ctx, "hero_emoji", "https://cdn.example.com/hero.png"))

	n, err = s.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	m, err := s.Map(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 8)
	assert.Equal(t, "https://cdn.example.com/hero.png", m["hero_emoji"])
	assert.Equal(t, "🚚", m["shipping_icon"])
}

func TestUpdateSetting(t *testing.T) {
	s := newSettings(t)
	ctx := context.Background()
	_, err := s.SeedDefaults(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Update(ctx, "no_such_key", "x"), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "support_icon", "  "), ErrValueRequired)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 8)
	assert.Equal(t, "classic_white_emoji", list[0].Key)
	for _, st := range list {
		assert.NotEqual(t, "no_such_key", st.Key)
	}
}

func TestSettingHandlers(t *testing.T) {
	s := newSettings(t)
	_, err := s.SeedDefaults(context.Background())
	require.NoError(t, err)
	h := NewHandler(s, testutil.Logger())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/site-settings", h.Public)
	mux.HandleFunc("GET /api/admin/site-settings", h.List)
	mux.HandleFunc("PUT /api/admin/site-settings/{key}", h.Update)
	send := func(method, target, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rr
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPut, "/api/admin/site-settings/returns_icon", `{"value":"↩️"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPut, "/api/admin/site-settings/returns_icon", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodPut, "/api/admin/site-settings/nope", `{"value":"x"}`).Code)

	rr := send(http.MethodGet, "/api/site-settings", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"returns_icon":"↩️"`)

	rr = send(http.MethodGet, "/api/admin/site-settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, len(entity.Defaults))
	for _, row := range rows {
		assert.Contains(t, row, "setting_key")
		assert.Contains(t, row, "setting_value")
		assert.Contains(t, row, "updated_at")
	}
}
