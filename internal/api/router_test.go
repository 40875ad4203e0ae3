package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/api/handler"
	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

const testSecret = "router-secret"

// fakeAuth keeps sessions in memory; sid "free" is a free user and "premium" a subscriber.
type fakeAuth struct {
	ports.AuthService
}

func (fakeAuth) CurrentUser(_ context.Context, sid string) (*domain.SessionUser, error) {
	switch sid {
	case "free":
		return &domain.SessionUser{Email: "free@x.com"}, nil
	case "premium":
		return &domain.SessionUser{Email: "vip@x.com", IsPremium: true}, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f fakeAuth) IsPremium(ctx context.Context, sid string) (bool, error) {
	u, err := f.CurrentUser(ctx, sid)
	if err != nil {
		return false, nil
	}
	return u.IsPremium, nil
}

type fakeItineraries struct{}

func (fakeItineraries) Generate(_ context.Context, in ports.GenerateItinerariesInput) (*ports.ItineraryResult, error) {
	return &ports.ItineraryResult{Destination: in.Destination, Theme: domain.ThemeNature}, nil
}

func (fakeItineraries) Suggest(context.Context, string) ([]string, error) {
	return []string{}, nil
}

func token(t *testing.T, sid string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Auth:        fakeAuth{},
		Itineraries: fakeItineraries{},
		Health:      handler.NewHealthHandler(),
		JWTSecret:   testSecret,
		Log:         zerolog.Nop(),
		Registerer:  prometheus.NewRegistry(),
	})
}

func do(t *testing.T, h http.Handler, method, path, bearer, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec.Code, resp
}

func TestRouter_ItineraryAccess(t *testing.T) {
	h := newTestRouter()
	body := `{"destination":"Bonito","theme":"nature"}`

	code, resp := do(t, h, http.MethodPost, "/itineraries", "", body)
	if code != http.StatusUnauthorized || resp["message"] != "Você precisa fazer login para criar roteiros." {
		t.Fatalf("anonymous: got %d %v", code, resp)
	}

	code, resp = do(t, h, http.MethodPost, "/itineraries", token(t, "free"), body)
	if code != http.StatusForbidden || resp["success"] != false {
		t.Fatalf("free user: got %d %v", code, resp)
	}

	code, resp = do(t, h, http.MethodPost, "/itineraries", token(t, "premium"), body)
	if code != http.StatusOK || resp["success"] != true {
		t.Fatalf("premium user: got %d %v", code, resp)
	}
}

func TestRouter_SessionRoutes(t *testing.T) {
	h := newTestRouter()

	code, resp := do(t, h, http.MethodGet, "/auth/me", "", "")
	if code != http.StatusUnauthorized || resp["message"] != "Sessão expirada. Faça login novamente." {
		t.Fatalf("me without token: got %d %v", code, resp)
	}

	code, resp = do(t, h, http.MethodGet, "/auth/premium", "", "")
	if code != http.StatusOK || resp["isPremium"] != false {
		t.Fatalf("anonymous premium check: got %d %v", code, resp)
	}

	code, resp = do(t, h, http.MethodGet, "/auth/premium", token(t, "premium"), "")
	if code != http.StatusOK || resp["isPremium"] != true {
		t.Fatalf("premium check: got %d %v", code, resp)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	h := newTestRouter()

	if code, _ := do(t, h, http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("health: got %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, "/metrics", "", ""); code != http.StatusOK {
		t.Fatalf("metrics: got %d", code)
	}
	if code, resp := do(t, h, http.MethodGet, "/nope", "", ""); code != http.StatusNotFound || resp["success"] != false {
		t.Fatalf("unknown route: got %d %v", code, resp)
	}
}
