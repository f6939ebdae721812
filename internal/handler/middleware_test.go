package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/ratelimit"
	"github.com/honkaku-tattoo/backend/internal/service"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.New()
	defer limiter.Stop()

	r := gin.New()
	r.POST("/submit", RateLimit(limiter, "booking", 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-Forwarded-For", ip)
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := hit("1.2.3.4"); w.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := hit("1.2.3.4")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("denial must carry Retry-After")
	}

	// A different identifier still has its own budget.
	if w := hit("5.6.7.8"); w.Code != http.StatusOK {
		t.Fatalf("other ip: expected 200, got %d", w.Code)
	}
}

func TestClientIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "9.9.9.9, 10.0.0.1", "192.168.1.5:1234", "9.9.9.9"},
		{"direct", "", "192.168.1.5:1234", "192.168.1.5"},
		{"no address at all", "", "", "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := ClientIdentifier(c); got != tc.want {
				t.Fatalf("identifier = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newStubAuthStore("admin@studio.test", "changeme123")
	store.sessions["live-token"] = 1
	auth := service.NewAuthService(store, "")

	r := gin.New()
	r.GET("/admin", RequireSession(auth), func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Email)
	})

	get := func(cookie string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "admin_session", Value: cookie})
		}
		r.ServeHTTP(w, req)
		return w
	}

	if w := get(""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: expected 401, got %d", w.Code)
	}
	if w := get("bogus"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token: expected 401, got %d", w.Code)
	}

	w := get("live-token")
	if w.Code != http.StatusOK {
		t.Fatalf("live session: expected 200, got %d", w.Code)
	}
	if w.Body.String() != "admin@studio.test" {
		t.Fatalf("identity not attached, body = %q", w.Body.String())
	}
}

// countingAuthStore records how often the session store is consulted.
type countingAuthStore struct {
	*stubAuthStore
	lookups int
}

func (s *countingAuthStore) GetSessionUser(ctx context.Context, token string, now time.Time) (*model.AdminUser, error) {
	s.lookups++
	return s.stubAuthStore.GetSessionUser(ctx, token, now)
}

func TestUploadBudgetsAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.New()
	defer limiter.Stop()

	store := newStubAuthStore("admin@studio.test", "changeme123")
	store.sessions["live-token"] = 1
	auth := service.NewAuthService(store, "")

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r := gin.New()
	r.POST("/uploads/booking-reference", RateLimit(limiter, "upload-api", 2), ok)
	r.POST("/admin/uploads/:folder", RateLimitUploadFolder(limiter, 2), RequireSession(auth), ok)

	post := func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Forwarded-For", "1.2.3.4")
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: "live-token"})
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Drain the public reference-upload budget.
	for i := 0; i < 2; i++ {
		if code := post("/uploads/booking-reference"); code != http.StatusOK {
			t.Fatalf("public upload %d: expected 200, got %d", i+1, code)
		}
	}
	if code := post("/uploads/booking-reference"); code != http.StatusTooManyRequests {
		t.Fatalf("drained public budget: expected 429, got %d", code)
	}

	// Admin folders are untouched by the public budget.
	if code := post("/admin/uploads/artist-avatars"); code != http.StatusOK {
		t.Fatalf("avatar upload after public drain: expected 200, got %d", code)
	}

	// And each admin folder keeps its own budget.
	if code := post("/admin/uploads/artist-avatars"); code != http.StatusOK {
		t.Fatalf("second avatar upload: expected 200, got %d", code)
	}
	if code := post("/admin/uploads/artist-avatars"); code != http.StatusTooManyRequests {
		t.Fatalf("drained avatar budget: expected 429, got %d", code)
	}
	if code := post("/admin/uploads/blog-images"); code != http.StatusOK {
		t.Fatalf("blog upload after avatar drain: expected 200, got %d", code)
	}
	if code := post("/admin/uploads/portfolio"); code != http.StatusOK {
		t.Fatalf("portfolio upload after avatar drain: expected 200, got %d", code)
	}
}

func TestAdminUploadLimiterRunsBeforeSessionLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.New()
	defer limiter.Stop()

	store := &countingAuthStore{stubAuthStore: newStubAuthStore("admin@studio.test", "changeme123")}
	store.sessions["live-token"] = 1
	auth := service.NewAuthService(store, "")

	r := gin.New()
	r.POST("/admin/uploads/:folder",
		RateLimitUploadFolder(limiter, 1),
		RequireSession(auth),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/uploads/artist-avatars", nil)
		req.Header.Set("X-Forwarded-For", "1.2.3.4")
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: "live-token"})
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := post(); code != http.StatusOK {
		t.Fatalf("first upload: expected 200, got %d", code)
	}
	if store.lookups != 1 {
		t.Fatalf("first upload: session lookups = %d, want 1", store.lookups)
	}

	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("second upload: expected 429, got %d", code)
	}
	if store.lookups != 1 {
		t.Fatalf("denied upload must not reach the session store, lookups = %d", store.lookups)
	}
}
