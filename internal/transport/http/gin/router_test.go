package httpgin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/railgo/railgo/internal/service"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(&service.Services{}, nil, RouterConfig{}, logger)
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSearchTrainsRequiresCities(t *testing.T) {
	cases := []string{
		"/trains",
		"/trains?departureCity=Paris",
		"/trains?arrivalCity=Lyon",
	}

	for _, path := range cases {
		w := httptest.NewRecorder()
		newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t,
			`{"error":"departureCity and arrivalCity are required"}`,
			w.Body.String(),
			path,
		)
	}
}

func TestSearchTrainsRejectsBadDate(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(
		http.MethodGet,
		"/trains?departureCity=Paris&arrivalCity=Lyon&date=14-03-2026",
		nil,
	))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTrainRejectsBadID(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trains/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGroupLockedByDefault(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/trains", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
