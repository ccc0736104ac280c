package httpgin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/railgo/railgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	ident domain.Identity
	err   error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	if s.err != nil || token == "" {
		return domain.Identity{}, errors.New("unauthenticated")
	}
	return s.ident, nil
}

func TestRequestIDMiddlewareGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddlewareEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.Use(AuthRequired(stubAuthenticator{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}

func TestAuthRequiredSetsIdentity(t *testing.T) {
	ident := domain.Identity{Email: "alice@example.com", AccountNumber: "ACC1001"}

	var got domain.Identity
	r := gin.New()
	r.Use(AuthRequired(stubAuthenticator{ident: ident}))
	r.GET("/", func(c *gin.Context) {
		var ok bool
		got, ok = identityFrom(c)
		require.True(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ident, got)
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.Use(AdminAuth("secret"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Admin-Token", "secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthDisabledWhenNoToken(t *testing.T) {
	r := gin.New()
	r.Use(AdminAuth(""))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Admin-Token", "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, bearerToken(c))

	c.Request.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", bearerToken(c))

	c.Request.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, bearerToken(c))
}
