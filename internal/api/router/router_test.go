package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusfind/lostfound-api/internal/contact"
)

func newTestRouter(t *testing.T, adminSecret string) http.Handler {
	t.Helper()
	repo := contact.NewInMemoryRepository()
	svc := contact.NewService(repo, nil, nil, nil)
	h := contact.NewHandler(svc, repo, nil, "test", nil)

	reg := prometheus.NewRegistry()
	return New(&Config{
		ContactHandler: h,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		AdminJWTSecret: adminSecret,
	})
}

func TestRouterSubmitAndHealth(t *testing.T) {
	router := newTestRouter(t, "")

	payload := `{"name":"Ann Lee","email":"ann@campus.edu","subject":"Lost badge","message":"Hi"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil || health.Status != "OK" {
		t.Errorf("unexpected health response %s", rec.Body.String())
	}
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	const secret = "router-test-secret"
	router := newTestRouter(t, secret)

	for _, path := range []string{"/contact", "/contact/stats", "/contact/some-id"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: expected 401, got %d", path, rec.Code)
		}
	}

	// Public endpoints stay open.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health must stay public, got %d", rec.Code)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authorized list: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterAdminRoutesOpenWithoutSecret(t *testing.T) {
	router := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open stats without secret, got %d", rec.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
