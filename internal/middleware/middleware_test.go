package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubLoader map[uuid.UUID]*model.Profile

func (s stubLoader) GetProfile(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, service.ErrNotFound
}

type brokenLoader struct{}

func (brokenLoader) GetProfile(context.Context, uuid.UUID) (*model.Profile, error) {
	return nil, errors.New("connection refused")
}

func signToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newAuthRouter(loader ProfileLoader, checks ...func(*model.Profile) bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	handlers := []gin.HandlerFunc{JWTAuth(testSecret, loader)}
	if len(checks) > 0 {
		handlers = append(handlers, Require(checks...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, GetProfile(c).Username)
	})
	r.GET("/me", handlers...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	id := uuid.New()
	loader := stubLoader{id: {ID: id, Username: "eleni", RoleID: 3, CanCloseRegister: true}}
	r := newAuthRouter(loader)

	w := doGet(r, signToken(t, testSecret, id.String(), time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "eleni", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, signToken(t, "other-secret", id.String(), time.Hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, signToken(t, testSecret, id.String(), -time.Minute)).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, signToken(t, testSecret, "not-a-uuid", time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, signToken(t, testSecret, uuid.NewString(), time.Hour)).Code)
}

func TestJWTAuth_DirectoryFailureIs500(t *testing.T) {
	r := newAuthRouter(brokenLoader{})
	w := doGet(r, signToken(t, testSecret, uuid.NewString(), time.Hour))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRequire(t *testing.T) {
	staff, mgr, adm := uuid.New(), uuid.New(), uuid.New()
	loader := stubLoader{
		staff: {ID: staff, Username: "staff", RoleID: 3},
		mgr:   {ID: mgr, Username: "mgr", RoleID: model.RoleManager},
		adm:   {ID: adm, Username: "adm", RoleID: model.RoleAdmin},
	}

	managers := newAuthRouter(loader, IsManager)
	assert.Equal(t, http.StatusForbidden, doGet(managers, signToken(t, testSecret, staff.String(), time.Hour)).Code)
	assert.Equal(t, http.StatusOK, doGet(managers, signToken(t, testSecret, mgr.String(), time.Hour)).Code)
	assert.Equal(t, http.StatusOK, doGet(managers, signToken(t, testSecret, adm.String(), time.Hour)).Code)

	admins := newAuthRouter(loader, IsAdmin)
	assert.Equal(t, http.StatusForbidden, doGet(admins, signToken(t, testSecret, mgr.String(), time.Hour)).Code)

	closers := newAuthRouter(loader, CanCloseRegister, IsManager)
	assert.Equal(t, http.StatusForbidden, doGet(closers, signToken(t, testSecret, staff.String(), time.Hour)).Code)
	assert.Equal(t, http.StatusOK, doGet(closers, signToken(t, testSecret, mgr.String(), time.Hour)).Code)
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecoveryHidesPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/", func(c *gin.Context) { panic("secret detail") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := &rateLimiter{entries: make(map[string]*rateEntry), limit: 1, window: time.Minute, now: func() time.Time { return now }}

	ok, _ := rl.allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.allow("10.0.0.1")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = rl.allow("10.0.0.1")
	assert.True(t, ok)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	preflight := func(origins []string, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(CORS(origins))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(nil, "https://shop.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight([]string{"https://bo.example"}, "https://bo.example")
	assert.Equal(t, "https://bo.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = preflight([]string{"https://bo.example"}, "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
