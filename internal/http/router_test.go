package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelrm/go-ota-backend/internal/config"
	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/services"
	"github.com/hotelrm/go-ota-backend/internal/session"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		GinMode:     gin.TestMode,
		// Generous limiter so the flow tests never throttle.
		RateRPS:   1000,
		RateBurst: 1000,
		Session:   config.SessionConfig{TTL: time.Hour},
		OTEL:      config.OTELConfig{ServiceName: "test"},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	sessions := session.NewMemoryStore(0)
	t.Cleanup(sessions.Stop)
	auth := &services.AuthService{
		Store:      st,
		Sessions:   sessions,
		TTL:        time.Hour,
		BcryptCost: bcrypt.MinCost,
	}

	r := gin.New()
	RegisterRoutes(r, st, auth, testConfig())
	return r, st
}

// do issues a JSON request; token (when set) travels as the session cookie.
func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["code"].(string)
}

// register creates a user through the API and returns its session token.
func register(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username, "password": "pw123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body)
	}
	resp := decode[map[string]any](t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("no token in register response: %s", w.Body)
	}
	return token
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestAuthLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice", "password": "pw123", "hotel": "星星酒店集团",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body)
	}
	if body := w.Body.String(); bytes.Contains([]byte(body), []byte("pw123")) {
		t.Fatalf("password leaked in response: %s", body)
	}
	token := decode[map[string]any](t, w)["token"].(string)

	// Cookie is set alongside the body token.
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session_token" && ck.Value == token && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("session cookie not set: %v", w.Result().Cookies())
	}

	// Duplicate username
	w = do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "x"})
	if w.Code != http.StatusConflict || errCode(t, w) != "username_taken" {
		t.Fatalf("dup register: %d %s", w.Code, w.Body)
	}

	// Me with cookie
	w = do(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body)
	}
	me := decode[domain.User](t, w)
	if me.Username != "alice" {
		t.Fatalf("me mismatch: %+v", me)
	}

	// Bearer token works as an alternative to the cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("bearer me: %d %s", rec.Code, rec.Body)
	}

	// Wrong password
	w = do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusUnauthorized || errCode(t, w) != "invalid_credentials" {
		t.Fatalf("bad login: %d %s", w.Code, w.Body)
	}

	// Logout then the session is gone.
	w = do(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: %d %s", w.Code, w.Body)
	}
	w = do(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: %d %s", w.Code, w.Body)
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/accounts", "", nil)
	if w.Code != http.StatusUnauthorized || errCode(t, w) != "unauthorized" {
		t.Fatalf("anonymous list: %d %s", w.Code, w.Body)
	}
	// A garbage cookie is treated the same as no cookie.
	w = do(t, r, http.MethodGet, "/api/v1/accounts", "not-a-session", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale cookie: %d %s", w.Code, w.Body)
	}
}

func TestAccountOwnership(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	w := do(t, r, http.MethodPost, "/api/v1/accounts", alice, gin.H{
		"name": "携程", "url": "https://hotels.ctrip.com", "username": "u", "password": "p",
		// The server must ignore a forged owner id.
		"user_id": 9999,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create account: %d %s", w.Code, w.Body)
	}
	acc := decode[domain.OtaAccount](t, w)
	if acc.UserID == 9999 {
		t.Fatalf("owner id forged from the request body")
	}

	path := "/api/v1/accounts/" + itoa(acc.ID)
	if w = do(t, r, http.MethodGet, path, alice, nil); w.Code != http.StatusOK {
		t.Fatalf("owner get: %d %s", w.Code, w.Body)
	}
	// Foreign rows are indistinguishable from missing ones.
	if w = do(t, r, http.MethodGet, path, bob, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign get: %d %s", w.Code, w.Body)
	}
	if w = do(t, r, http.MethodDelete, path, bob, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: %d %s", w.Code, w.Body)
	}

	status := "inactive"
	w = do(t, r, http.MethodPut, path, alice, gin.H{"status": status})
	if w.Code != http.StatusOK || decode[domain.OtaAccount](t, w).Status != status {
		t.Fatalf("update: %d %s", w.Code, w.Body)
	}
}

func TestActivityPlatformValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	w := do(t, r, http.MethodPost, "/api/v1/accounts", alice, gin.H{
		"name": "美团", "url": "https://hotel.meituan.com", "username": "u", "password": "p",
	})
	acc := decode[domain.OtaAccount](t, w)

	// Bob cannot hang an activity off Alice's platform.
	w = do(t, r, http.MethodPost, "/api/v1/activities", bob, gin.H{
		"platform_id": acc.ID, "name": "周末闪购",
	})
	if w.Code != http.StatusBadRequest || errCode(t, w) != "invalid_platform" {
		t.Fatalf("foreign platform: %d %s", w.Code, w.Body)
	}
	// Nor off a platform that does not exist.
	w = do(t, r, http.MethodPost, "/api/v1/activities", alice, gin.H{
		"platform_id": 9999, "name": "周末闪购",
	})
	if w.Code != http.StatusBadRequest || errCode(t, w) != "invalid_platform" {
		t.Fatalf("unknown platform: %d %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, "/api/v1/activities", alice, gin.H{
		"platform_id": acc.ID, "name": "暑期特惠", "room_types": []string{"标准双人间"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create activity: %d %s", w.Code, w.Body)
	}
	act := decode[domain.Activity](t, w)
	if act.Status != "active" || act.ParticipationStatus != "pending" {
		t.Fatalf("defaults: %+v", act)
	}

	// List by platform filter.
	w = do(t, r, http.MethodGet, "/api/v1/activities?platform_id="+itoa(acc.ID), alice, nil)
	if w.Code != http.StatusOK || len(decode[[]domain.Activity](t, w)) != 1 {
		t.Fatalf("list by platform: %d %s", w.Code, w.Body)
	}
	// The filter enforces ownership too.
	w = do(t, r, http.MethodGet, "/api/v1/activities?platform_id="+itoa(acc.ID), bob, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign platform filter: %d %s", w.Code, w.Body)
	}

	// Foreign activity reads as missing.
	w = do(t, r, http.MethodGet, "/api/v1/activities/"+itoa(act.ID), bob, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign activity: %d %s", w.Code, w.Body)
	}
}

func TestStrategyApplyIsIdempotent(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")

	w := do(t, r, http.MethodPost, "/api/v1/strategies", alice, gin.H{
		"name":            "提高周末房价",
		"parameters_used": map[string]float64{"daily_occupancy_weight": 5},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}
	s := decode[domain.Strategy](t, w)
	if s.Status != "draft" || s.AppliedAt != nil {
		t.Fatalf("fresh strategy: %+v", s)
	}

	apply := "/api/v1/strategies/" + itoa(s.ID) + "/apply"
	w = do(t, r, http.MethodPost, apply, alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("apply: %d %s", w.Code, w.Body)
	}
	first := decode[domain.Strategy](t, w)
	if first.Status != "applied" || first.AppliedAt == nil {
		t.Fatalf("apply not recorded: %+v", first)
	}

	// Second apply keeps the original timestamp.
	w = do(t, r, http.MethodPost, apply, alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("re-apply: %d %s", w.Code, w.Body)
	}
	second := decode[domain.Strategy](t, w)
	if second.AppliedAt == nil || !second.AppliedAt.Equal(*first.AppliedAt) {
		t.Fatalf("applied_at changed on re-apply: %v -> %v", first.AppliedAt, second.AppliedAt)
	}

	w = do(t, r, http.MethodGet, "/api/v1/strategies/applied", alice, nil)
	if w.Code != http.StatusOK || len(decode[[]domain.Strategy](t, w)) != 1 {
		t.Fatalf("applied list: %d %s", w.Code, w.Body)
	}
	w = do(t, r, http.MethodGet, "/api/v1/strategies/recent?limit=1", alice, nil)
	if w.Code != http.StatusOK || len(decode[[]domain.Strategy](t, w)) != 1 {
		t.Fatalf("recent list: %d %s", w.Code, w.Body)
	}
}

func TestSettingsAutoCreate(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")

	// First read materializes the defaults row.
	w := do(t, r, http.MethodGet, "/api/v1/settings", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get settings: %d %s", w.Code, w.Body)
	}
	s := decode[domain.Setting](t, w)
	if !s.NotificationsEnabled || s.AutoRefreshInterval != 30 || s.DefaultStrategyPreference != "balanced" {
		t.Fatalf("defaults: %+v", s)
	}

	iv := 15
	w = do(t, r, http.MethodPut, "/api/v1/settings", alice, gin.H{"auto_refresh_interval": iv})
	if w.Code != http.StatusOK {
		t.Fatalf("update settings: %d %s", w.Code, w.Body)
	}
	updated := decode[domain.Setting](t, w)
	if updated.ID != s.ID || updated.AutoRefreshInterval != 15 {
		t.Fatalf("update: %+v", updated)
	}
}

func TestStrategyParameterCatalogIsGlobal(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	w := do(t, r, http.MethodPost, "/api/v1/strategy-parameters", alice, gin.H{
		"name": "关注远期预定", "param_key": "future_booking_weight", "value": 7,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create param: %d %s", w.Code, w.Body)
	}

	// The catalog is shared, so bob sees alice's entry.
	w = do(t, r, http.MethodGet, "/api/v1/strategy-parameters", bob, nil)
	if w.Code != http.StatusOK || len(decode[[]domain.StrategyParameter](t, w)) != 1 {
		t.Fatalf("list as other user: %d %s", w.Code, w.Body)
	}

	// param_key is unique.
	w = do(t, r, http.MethodPost, "/api/v1/strategy-parameters", bob, gin.H{
		"name": "dup", "param_key": "future_booking_weight", "value": 1,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("dup key: %d %s", w.Code, w.Body)
	}
}

func TestAPIKeysByService(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")

	w := do(t, r, http.MethodPost, "/api/v1/api-keys", alice, gin.H{
		"service": "deepseek", "encrypted_key": "cipher", "model": "deepseek-chat-v1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create key: %d %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/api/v1/api-keys?service=deepseek", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by service: %d %s", w.Code, w.Body)
	}
	w = do(t, r, http.MethodGet, "/api/v1/api-keys?service=openai", alice, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown service: %d %s", w.Code, w.Body)
	}
}

func TestDashboardSummary(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")

	w := do(t, r, http.MethodPost, "/api/v1/accounts", alice, gin.H{
		"name": "携程", "url": "https://x", "username": "u", "password": "p",
	})
	acc := decode[domain.OtaAccount](t, w)
	do(t, r, http.MethodPost, "/api/v1/activities", alice, gin.H{"platform_id": acc.ID, "name": "a"})
	w = do(t, r, http.MethodPost, "/api/v1/strategies", alice, gin.H{"name": "s"})
	s := decode[domain.Strategy](t, w)
	do(t, r, http.MethodPost, "/api/v1/strategies/"+itoa(s.ID)+"/apply", alice, nil)

	w = do(t, r, http.MethodGet, "/api/v1/dashboard/summary", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: %d %s", w.Code, w.Body)
	}
	sum := decode[store.Summary](t, w)
	want := store.Summary{Accounts: 1, Activities: 1, Strategies: 1, AppliedStrategies: 1}
	if sum != want {
		t.Fatalf("summary = %+v, want %+v", sum, want)
	}
}

func TestBadIDParameter(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := register(t, r, "alice")
	for _, p := range []string{"/api/v1/accounts/abc", "/api/v1/strategies/0", "/api/v1/activities/-3"} {
		w := do(t, r, http.MethodGet, p, alice, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: %d %s", p, w.Code, w.Body)
		}
	}
}

func TestNoRouteEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || errCode(t, w) != "not_found" {
		t.Fatalf("no route: %d %s", w.Code, w.Body)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
