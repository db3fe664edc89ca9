package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type staticResolver struct {
	users map[string]*domain.User
}

func (r staticResolver) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	if u, ok := r.users[token]; ok {
		return u, nil
	}
	return nil, errors.New("unauthenticated")
}

func headerToken(c *gin.Context) string { return c.GetHeader("X-Token") }

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Generated when absent.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("no request id generated")
	}

	// Echoed when supplied.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("request id not echoed: %q", got)
	}
}

func TestAuthResolvesIdentity(t *testing.T) {
	resolver := staticResolver{users: map[string]*domain.User{
		"tok-7": {ID: 7, Username: "alice"},
	}}

	r := gin.New()
	r.Use(Auth(resolver, headerToken))
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFrom(c)})
	})
	r.GET("/guarded", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// Valid token resolves.
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-Token", "tok-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token rejected: %d %s", w.Code, w.Body)
	}

	// Missing token: public routes pass, guarded routes 401.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous blocked from open route: %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous allowed on guarded route: %d", w.Code)
	}

	// Bad token is anonymous, not an error.
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-Token", "stale")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: %d", w.Code)
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	r := gin.New()
	rl := NewRateLimiter(0.0001, 2, func(c *gin.Context) string { return "fixed" })
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests rejected: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("overflow not limited: %v", codes)
	}
}

func TestKeyByUserOrIP(t *testing.T) {
	fn := KeyByUserOrIP()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if key := fn(c); key[:3] != "ip:" {
		t.Fatalf("anonymous key = %q, want ip: prefix", key)
	}

	c.Set("userID", int64(42))
	if key := fn(c); key != "user:42" {
		t.Fatalf("authenticated key = %q", key)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(SecurityOptions{EnablePolicy: true}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("nosniff header missing")
	}
	if w.Header().Get("X-Frame-Options") == "" {
		t.Fatalf("frame options header missing")
	}
	// HSTS only applies to HTTPS requests.
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS set on plain HTTP")
	}
}
