package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/auth"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authEnv struct {
	store  *memory.Store
	tokens *auth.Tokens
	router *gin.Engine
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokens("k", time.Hour, timezone.SystemClock(time.UTC))
	a := NewAuthenticator(tokens, store, zap.NewNop())

	r := gin.New()
	r.GET("/private", a.RequireAuth(), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID})
	})
	r.GET("/admin", a.RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/open", a.OptionalAuth(), func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); ok {
			c.String(http.StatusOK, "user")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return &authEnv{store: store, tokens: tokens, router: r}
}

func (e *authEnv) user(t *testing.T, name, role string) (*models.User, string) {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Role: role}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	tok, err := e.tokens.Issue(u)
	if err != nil {
		t.Fatal(err)
	}
	return u, tok
}

func (e *authEnv) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	e := newAuthEnv(t)
	u, tok := e.user(t, "ana", models.RoleUser)

	if w := e.get("/private", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	if w := e.get("/private", "junk"); w.Code != http.StatusUnauthorized {
		t.Fatalf("junk token: %d", w.Code)
	}
	if w := e.get("/private", tok); w.Code != http.StatusOK {
		t.Fatalf("valid token: %d %s", w.Code, w.Body)
	}

	if _, err := e.store.SetUserStatus(context.Background(), u.ID, models.UserStatusSuspended); err != nil {
		t.Fatal(err)
	}
	if w := e.get("/private", tok); w.Code != http.StatusForbidden {
		t.Fatalf("suspended: %d", w.Code)
	}

	u.IsDeleted = true
	u.Status = models.UserStatusActive
	if err := e.store.UpdateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if w := e.get("/private", tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted: %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := newAuthEnv(t)
	_, userTok := e.user(t, "ana", models.RoleUser)
	_, adminTok := e.user(t, "root", models.RoleAdmin)

	if w := e.get("/admin", userTok); w.Code != http.StatusForbidden {
		t.Fatalf("user: %d", w.Code)
	}
	if w := e.get("/admin", adminTok); w.Code != http.StatusNoContent {
		t.Fatalf("admin: %d", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	e := newAuthEnv(t)
	_, tok := e.user(t, "ana", models.RoleUser)

	if w := e.get("/open", ""); w.Body.String() != "anonymous" {
		t.Fatalf("got %q", w.Body)
	}
	if w := e.get("/open", "junk"); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("junk token should be ignored: %d %q", w.Code, w.Body)
	}
	if w := e.get("/open", tok); w.Body.String() != "user" {
		t.Fatalf("got %q", w.Body)
	}
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(2, zap.NewNop()).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes %v", codes)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other ip limited: %d", w.Code)
	}
}

func TestRequestLoggerSetsID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("id %q body %q", id, w.Body)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc" {
		t.Fatal("incoming id should be kept")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://app.test"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://app.test")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://app.test" {
		t.Fatalf("preflight %d %v", w.Code, w.Header())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unknown origin echoed")
	}
}
