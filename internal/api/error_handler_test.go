package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.WithOp(domain.OpRegister, domain.ErrUserExists), http.StatusConflict, "Este email já está cadastrado."},
		{domain.WithOp(domain.OpLogin, domain.ErrUserNotFound), http.StatusNotFound, "Email não encontrado."},
		{domain.WithOp(domain.OpLogin, domain.ErrInvalidCredentials), http.StatusUnauthorized, "Senha incorreta."},
		{domain.WithOp(domain.OpUpdatePassword, domain.ErrInvalidCredentials), http.StatusUnauthorized, "Senha atual incorreta."},
		{domain.WithOp(domain.OpSubscribe, domain.ErrAlreadySubscribed), http.StatusConflict, "Você já possui uma assinatura ativa."},
		{domain.WithOp(domain.OpCancel, domain.ErrNotSubscribed), http.StatusConflict, "Você não possui uma assinatura ativa."},
		{domain.WithOp(domain.OpSubscribe, fmt.Errorf("update: %w", domain.ErrPersistFailed)), http.StatusInternalServerError, "Erro ao ativar assinatura."},
		{domain.WithOp(domain.OpItinerary, domain.ErrSessionNotFound), http.StatusUnauthorized, "Você precisa fazer login para criar roteiros."},
		{domain.WithOp(domain.OpItinerary, domain.ErrPremiumRequired), http.StatusForbidden, domain.MessageFor(domain.OpItinerary, domain.ErrPremiumRequired)},
		{domain.ErrSessionNotFound, http.StatusUnauthorized, "Sessão expirada. Faça login novamente."},
		{domain.WithOp(domain.OpRegister, domain.ErrInvalidInput), http.StatusBadRequest, "Preencha todos os campos obrigatórios."},
	}

	for _, tc := range cases {
		code, body := renderError(t, tc.err)
		if code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, code)
		}
		if body.Success {
			t.Errorf("%v: success must be false", tc.err)
		}
		if body.Message != tc.msg {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.msg, body.Message)
		}
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "o campo email é obrigatório"))
	if code != http.StatusBadRequest || body.Message != "o campo email é obrigatório" {
		t.Fatalf("unexpected response %d %+v", code, body)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Message != domain.MsgInternal {
		t.Fatalf("internal details leaked: %q", body.Message)
	}
}
