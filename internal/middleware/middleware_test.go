package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type stubLoader struct {
	principals map[uint]*auth.Principal
	err        error
}

func (s stubLoader) LoadPrincipal(_ context.Context, userID uint) (*auth.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.principals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type stubChecker bool

func (s stubChecker) HasAccess(context.Context, uint) (bool, error) { return bool(s), nil }

func barberPrincipal() *auth.Principal {
	return auth.NewPrincipal(
		&models.User{ID: 1, Email: "ze@example.com", Role: models.RoleBarber},
		&models.Barber{ID: 5, UserID: 1, BarbershopID: 9},
	)
}

func newRouter(loader auth.PrincipalLoader, tokens *auth.TokenIssuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens, loader)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentPrincipal(c).UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	loader := stubLoader{principals: map[uint]*auth.Principal{1: barberPrincipal()}}
	r := newRouter(loader, tokens)

	if w := do(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := do(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}

	token, err := tokens.Issue(1, models.RoleBarber)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if w := do(r, token); w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}

	orphan, _ := tokens.Issue(2, models.RoleClient)
	if w := do(r, orphan); w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user: expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareLoaderFailure(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	r := newRouter(stubLoader{err: errors.New("db down")}, tokens)

	token, _ := tokens.Issue(1, models.RoleClient)
	if w := do(r, token); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRequireBarberAndSubscription(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	client := auth.NewPrincipal(&models.User{ID: 2, Role: models.RoleClient}, nil)
	loader := stubLoader{principals: map[uint]*auth.Principal{1: barberPrincipal(), 2: client}}

	barberToken, _ := tokens.Issue(1, models.RoleBarber)
	clientToken, _ := tokens.Issue(2, models.RoleClient)

	gated := newRouter(loader, tokens, RequireBarber(), RequireActiveSubscription(stubChecker(true)))
	if w := do(gated, clientToken); w.Code != http.StatusForbidden {
		t.Fatalf("client: expected 403, got %d", w.Code)
	}
	if w := do(gated, barberToken); w.Code != http.StatusOK {
		t.Fatalf("barber with access: expected 200, got %d", w.Code)
	}

	unpaid := newRouter(loader, tokens, RequireBarber(), RequireActiveSubscription(stubChecker(false)))
	if w := do(unpaid, barberToken); w.Code != http.StatusPaymentRequired {
		t.Fatalf("barber without access: expected 402, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewIPRateLimiter(1, 2)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/x", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if hit() != http.StatusOK || hit() != http.StatusOK {
		t.Fatal("burst should be allowed")
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	now = now.Add(time.Second)
	if code := hit(); code != http.StatusOK {
		t.Fatalf("expected refill after 1s, got %d", code)
	}
}

func TestRateLimiterSweepsIdleVisitorsOncePerTTL(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	t0 := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := t0
	limiter.now = func() time.Time { return now }

	steps := []struct {
		at   time.Duration
		ip   string
		want int
	}{
		{0, "10.0.0.1", 1},
		{6 * time.Minute, "10.0.0.2", 2},
		// 11min desde a última limpeza: .1 sai
		{11 * time.Minute, "10.0.0.3", 2},
		// .2 já expirou, mas a última limpeza foi há 6min
		{17 * time.Minute, "10.0.0.4", 3},
		{22 * time.Minute, "10.0.0.5", 2},
	}

	for _, s := range steps {
		now = t0.Add(s.at)
		limiter.allow(s.ip)
		if got := len(limiter.visitors); got != s.want {
			t.Fatalf("at %s: expected %d visitors, got %d", s.at, s.want, got)
		}
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("expected generated request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("unexpected preflight: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unknown origin must not be allowed")
	}
}
