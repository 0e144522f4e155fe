package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidInput:      http.StatusBadRequest,
		KindUnauthorized:      http.StatusUnauthorized,
		KindForbidden:         http.StatusForbidden,
		KindNotFound:          http.StatusNotFound,
		KindSlotConflict:      http.StatusConflict,
		KindDuplicateIdentity: http.StatusConflict,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Errorf("kind %d: status %d, want %d", kind, got, want)
		}
	}
}

func TestIsBusinessThroughWrap(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ErrSlotConflict())

	if !IsBusiness(err, CodeSlotConflict) {
		t.Fatal("wrapped slot conflict not detected")
	}
	if IsBusiness(err, CodeBookingNotFound) {
		t.Fatal("wrong code matched")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindSlotConflict {
		t.Fatalf("KindOf = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("boom")); ok {
		t.Fatal("plain error reported as business error")
	}
}

func TestIsExclusionConflict(t *testing.T) {
	if !IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})) {
		t.Error("exclusion violation not detected")
	}
	if !IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation not detected")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation reported as conflict")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23P01"}) {
		t.Error("exclusion violation reported as unique violation")
	}
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) (*httptest.ResponseRecorder, HTTPError) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		Respond(c, zap.NewNop(), err)

		var body HTTPError
		if jerr := json.Unmarshal(w.Body.Bytes(), &body); jerr != nil {
			t.Fatalf("decode body: %v", jerr)
		}
		return w, body
	}

	w, body := run(ErrNotFound(CodeBookingNotFound))
	if w.Code != http.StatusNotFound || body.Code != CodeBookingNotFound {
		t.Fatalf("got %d %q", w.Code, body.Code)
	}
	if body.Message != "booking not found" {
		t.Fatalf("message %q", body.Message)
	}

	w, body = run(errors.New("connection reset"))
	if w.Code != http.StatusInternalServerError || body.Code != CodeInternal {
		t.Fatalf("got %d %q", w.Code, body.Code)
	}
}
