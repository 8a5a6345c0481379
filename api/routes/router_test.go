package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"flowdesk/internal/session"
	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/database"
	"flowdesk/internal/shared/middleware"
	"flowdesk/internal/users"
	"flowdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetDefault(logger.NewWithWriter(io.Discard, "error"))
	os.Exit(m.Run())
}

type app struct {
	engine *gin.Engine
	codec  *session.Codec
	cfg    *config.Config
}

func newApp(t *testing.T) app {
	t.Helper()
	cfg := &config.Config{
		APIVersion: "v1",
		APIPrefix:  "/api",
		JWT: config.JWTConfig{
			AccessSecret:     "routes-access",
			RefreshSecret:    "routes-refresh",
			AccessExpiresIn:  5 * time.Minute,
			RefreshExpiresIn: time.Hour,
			Issuer:           "flowdesk",
		},
		Cookie: config.CookieConfig{Path: "/", SameSite: http.SameSiteStrictMode},
	}
	require.NoError(t, cfg.Validate())

	codec, err := session.NewCodecFromConfig(cfg)
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(cfg, &database.DB{}, session.NewVerifier(codec, nil), logger.GetDefault()).SetupRoutes(engine)
	return app{engine: engine, codec: codec, cfg: cfg}
}

func (a app) request(t *testing.T, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a app) accessCookie(t *testing.T, p session.Principal) *http.Cookie {
	t.Helper()
	token, err := a.codec.SignAccess(p)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.AccessTokenCookie, Value: token}
}

func (a app) refreshCookie(t *testing.T, p session.Principal) *http.Cookie {
	t.Helper()
	token, err := a.codec.SignRefresh(p)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.RefreshTokenCookie, Value: token}
}

var (
	adminUser  = session.Principal{ID: "65a0admin", Email: "admin@flowdesk.dev", Role: users.RoleAdmin}
	normalUser = session.Principal{ID: "65a0user", Email: "user@flowdesk.dev", Role: users.RoleUser}
)

func TestHealthRoutes(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/ping").Code)
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/status").Code)
}

func TestGetMe(t *testing.T) {
	a := newApp(t)

	w := a.request(t, http.MethodGet, "/api/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.request(t, http.MethodGet, "/api/v1/auth/me", a.accessCookie(t, normalUser))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, normalUser.ID, body.Data.ID)
	assert.Equal(t, normalUser.Email, body.Data.Email)
	assert.Equal(t, "user", body.Data.Role)
}

func TestGetMe_RefreshOnlyReissuesCookie(t *testing.T) {
	a := newApp(t)

	w := a.request(t, http.MethodGet, "/api/v1/auth/me", a.refreshCookie(t, normalUser))
	require.Equal(t, http.StatusOK, w.Code)

	var reissued *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			reissued = c
		}
	}
	require.NotNil(t, reissued)
	assert.True(t, reissued.HttpOnly)
	assert.Equal(t, 300, reissued.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, reissued.SameSite)

	// The reissued cookie alone is enough on the next request
	w = a.request(t, http.MethodGet, "/api/v1/auth/me", &http.Cookie{Name: reissued.Name, Value: reissued.Value})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLogoutClearsCookies(t *testing.T) {
	a := newApp(t)

	w := a.request(t, http.MethodPost, "/api/v1/auth/logout", a.accessCookie(t, normalUser))
	require.Equal(t, http.StatusOK, w.Code)

	cleared := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		cleared[c.Name] = c.MaxAge < 0 && c.Value == ""
	}
	assert.True(t, cleared[middleware.AccessTokenCookie])
	assert.True(t, cleared[middleware.RefreshTokenCookie])
}

func TestSessionPolicy_AdminOnly(t *testing.T) {
	a := newApp(t)
	path := "/api/v1/admin/session-policy"

	assert.Equal(t, http.StatusForbidden, a.request(t, http.MethodGet, path).Code)
	assert.Equal(t, http.StatusForbidden, a.request(t, http.MethodGet, path, a.accessCookie(t, normalUser)).Code)

	w := a.request(t, http.MethodGet, path, a.accessCookie(t, adminUser))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 300, body.Data["access_ttl_seconds"])
	assert.EqualValues(t, 3600, body.Data["refresh_ttl_seconds"])
	assert.Equal(t, "strict", body.Data["cookie_same_site"])
	assert.NotContains(t, w.Body.String(), a.cfg.JWT.AccessSecret)
	assert.NotContains(t, w.Body.String(), a.cfg.JWT.RefreshSecret)
}

func TestSessionPolicy_ForgedRoleIsForbidden(t *testing.T) {
	a := newApp(t)

	// Admin claims signed with the refresh secret are not an access token.
	forged, err := a.codec.SignRefresh(adminUser)
	require.NoError(t, err)

	w := a.request(t, http.MethodGet, "/api/v1/admin/session-policy",
		&http.Cookie{Name: middleware.AccessTokenCookie, Value: forged})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	a := newApp(t)

	w := a.request(t, http.MethodGet, "/api/v1/workflows/missing")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Status     string `json:"status"`
		StatusCode int    `json:"status_code"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.Equal(t, "Route not found", body.Message)
}
