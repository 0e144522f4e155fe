package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/archive"
	"github.com/BruksfildServices01/service-booking/internal/config"
	"github.com/BruksfildServices01/service-booking/internal/infra/lock"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiEnv struct {
	router   *gin.Engine
	recorder *notify.Recorder
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	now := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)
	rec := &notify.Recorder{}
	deps := Deps{
		Config: &config.Config{
			Env:             "test",
			JWTSecret:       "test-secret",
			JWTTTLHours:     1,
			AppURL:          "http://localhost:3000",
			RateLimitPerMin: 10000,
		},
		Store:    memory.NewStore(),
		Locker:   lock.NewLocalLocker(),
		Notifier: rec,
		Archiver: archive.Noop{},
		Clock:    timezone.FixedClock(now),
		Location: time.UTC,
		Log:      zap.NewNop(),
	}

	r := gin.New()
	RegisterRoutes(r, deps, BuildUseCases(deps))
	return &apiEnv{router: r, recorder: rec}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type session struct {
	User struct {
		ID uint `json:"id"`
	} `json:"user"`
	Token string `json:"token"`
}

func (e *apiEnv) register(t *testing.T, name string) session {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", name, w.Code, w.Body.String())
	}
	var s session
	decode(t, w, &s)
	return s
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	e := newAPIEnv(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := e.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: got %d", path, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: missing request id", path)
		}
	}
}

func TestAuthFlow(t *testing.T) {
	e := newAPIEnv(t)
	e.register(t, "ana")

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "ana2", "email": "ANA@example.com", "password": "secret123",
	})
	if w.Code != http.StatusConflict && w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: got %d", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: got %d", w.Code)
	}

	w = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var s session
	decode(t, w, &s)

	if w := e.do(t, http.MethodGet, "/api/me", s.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("me: got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: got %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/api/admin/all-data", s.Token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("admin as user: got %d", w.Code)
	}
}

func TestBookingLifecycle(t *testing.T) {
	e := newAPIEnv(t)
	provider := e.register(t, "paula")
	client := e.register(t, "carlos")
	other := e.register(t, "otto")

	w := e.do(t, http.MethodPost, "/api/me/services", provider.Token, gin.H{
		"title":          "Haircut",
		"duration":       60,
		"available_from": "09:00",
		"available_to":   "17:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create service: %d %s", w.Code, w.Body.String())
	}
	var svc struct {
		ID uint `json:"id"`
	}
	decode(t, w, &svc)

	w = e.do(t, http.MethodGet, "/api/services", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("discover: got %d", w.Code)
	}

	// booking
	w = e.do(t, http.MethodPost, "/api/bookings", client.Token, gin.H{
		"service_id": svc.ID,
		"start_time": "2026-11-02T16:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking: %d %s", w.Code, w.Body.String())
	}

	// overlapping slot on the same service
	w = e.do(t, http.MethodPost, "/api/bookings", other.Token, gin.H{
		"service_id": svc.ID,
		"date":       "2026-11-02",
		"time":       "16:30",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("overlap: got %d %s", w.Code, w.Body.String())
	}
	var herr struct {
		ErrorCode string `json:"error_code"`
	}
	decode(t, w, &herr)
	if herr.ErrorCode != "slot_conflict" {
		t.Fatalf("overlap code: %q", herr.ErrorCode)
	}

	// adjacent slot is free
	w = e.do(t, http.MethodPost, "/api/bookings", other.Token, gin.H{
		"service_id": svc.ID,
		"start_time": "2026-11-02T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("second booking: %d %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/api/me/bookings/incoming", provider.Token, nil)
	var incoming struct {
		Total int `json:"total"`
	}
	decode(t, w, &incoming)
	if incoming.Total != 2 {
		t.Fatalf("incoming: got %d", incoming.Total)
	}

	// narrowing the window cancels the 16:00 booking only
	w = e.do(t, http.MethodPatch, "/api/me/services/"+itoa(svc.ID), provider.Token, gin.H{
		"available_to": "14:00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update service: %d %s", w.Code, w.Body.String())
	}
	var upd struct {
		CancelledCount int `json:"cancelled_count"`
	}
	decode(t, w, &upd)
	if upd.CancelledCount != 1 {
		t.Fatalf("cancelled: got %d", upd.CancelledCount)
	}

	w = e.do(t, http.MethodGet, "/api/me/bookings", client.Token, nil)
	var mine struct {
		Data []struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	decode(t, w, &mine)
	if len(mine.Data) != 1 || mine.Data[0].Status != "cancelled" {
		t.Fatalf("client bookings: %+v", mine.Data)
	}
	if len(e.recorder.NoticesFor(client.User.ID)) == 0 {
		t.Fatal("client was not notified of the cancellation")
	}
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
