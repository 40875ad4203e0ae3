package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestUserView_StripsPasswordAndCopiesDate(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &User{ID: "1", Name: "Ana", Email: "ana@x.com", PasswordHash: "hash", IsPremium: true, SubscriptionDate: &ts}

	v := u.View()
	if v.Email != "ana@x.com" || !v.IsPremium {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.SubscriptionDate == nil || !v.SubscriptionDate.Equal(ts) {
		t.Fatalf("expected subscription date %v, got %v", ts, v.SubscriptionDate)
	}

	*u.SubscriptionDate = ts.Add(time.Hour)
	if !v.SubscriptionDate.Equal(ts) {
		t.Fatalf("view shares subscription date with record")
	}
}

func TestUserView_Nil(t *testing.T) {
	var u *User
	if u.View() != nil {
		t.Fatalf("expected nil view")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	if (&Session{}).Expired(now) {
		t.Fatalf("zero expiry must never expire")
	}
	if !(&Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected session to be expired at its deadline")
	}
	if (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("expected session to be live")
	}
}

func TestMessageFor(t *testing.T) {
	cases := []struct {
		op   Operation
		err  error
		want string
	}{
		{OpRegister, ErrUserExists, "Este email já está cadastrado."},
		{OpLogin, ErrUserNotFound, "Email não encontrado."},
		{OpSubscribe, ErrUserNotFound, "Usuário não encontrado."},
		{OpLogin, ErrInvalidCredentials, "Senha incorreta."},
		{OpUpdatePassword, ErrInvalidCredentials, "Senha atual incorreta."},
		{OpSubscribe, ErrAlreadySubscribed, "Você já possui uma assinatura ativa."},
		{OpCancel, ErrNotSubscribed, "Você não possui uma assinatura ativa."},
		{OpCancel, fmt.Errorf("wrapped: %w", ErrPersistFailed), "Erro ao cancelar assinatura."},
		{OpLogin, errors.New("boom"), MsgInternal},
	}

	for _, tc := range cases {
		if got := MessageFor(tc.op, tc.err); got != tc.want {
			t.Errorf("MessageFor(%s, %v) = %q, want %q", tc.op, tc.err, got, tc.want)
		}
	}
}

func TestEcoScoreFor(t *testing.T) {
	if EcoScoreFor(0).Class != "high" || EcoScoreFor(1).Class != "medium" || EcoScoreFor(2).Class != "low" {
		t.Fatalf("unexpected eco score classes")
	}
}

func TestWithOp(t *testing.T) {
	if WithOp(OpLogin, nil) != nil {
		t.Fatalf("nil error must stay nil")
	}

	err := WithOp(OpLogin, ErrUserNotFound)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("OpError must unwrap to the sentinel")
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != OpLogin {
		t.Fatalf("expected OpError for login, got %v", err)
	}
	if got := MessageFor(opErr.Op, err); got != "Email não encontrado." {
		t.Fatalf("unexpected message %q", got)
	}
}
