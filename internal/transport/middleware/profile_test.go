package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/pkg/ctxutil"
)

func TestProfile_ValidHeader(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var gotID uuid.UUID
	var gotOK bool

	handler := Profile(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = ctxutil.ProfileIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ProfileHeader, id.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !gotOK {
		t.Fatal("expected profile id in context")
	}
	if gotID != id {
		t.Fatalf("expected %s, got %s", id, gotID)
	}
}

func TestProfile_MissingHeaderIsAnonymous(t *testing.T) {
	t.Parallel()

	called := false
	handler := Profile(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := ctxutil.ProfileIDFromCtx(r.Context()); ok {
			t.Error("expected no profile id in context")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Fatal("expected handler to be called")
	}
}

func TestProfile_MalformedHeaderRejected(t *testing.T) {
	t.Parallel()

	handler := Profile(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be called for a malformed id")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ProfileHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
