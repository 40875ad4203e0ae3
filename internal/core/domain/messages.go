package domain

import "errors"

// User-facing messages (pt-BR) rendered in the success/message envelope.
const (
	MsgRegistered            = "Cadastro realizado com sucesso!"
	MsgLoggedIn              = "Login realizado com sucesso!"
	MsgLoggedOut             = "Logout realizado com sucesso."
	MsgPasswordChanged       = "Senha alterada com sucesso!"
	MsgSubscribed            = "Assinatura ativada com sucesso!"
	MsgSubscriptionCancelled = "Assinatura cancelada com sucesso."
	MsgItinerariesReady      = "Roteiros gerados com sucesso!"
	MsgInternal              = "Ocorreu um erro inesperado. Por favor, tente novamente."
)

// Operation selects between messages that differ only by the action that
// failed (e.g. a wrong password on login vs. on password change).
type Operation string

const (
	OpRegister       Operation = "register"
	OpLogin          Operation = "login"
	OpLogout         Operation = "logout"
	OpUpdatePassword Operation = "update_password"
	OpSubscribe      Operation = "subscribe"
	OpCancel         Operation = "cancel_subscription"
	OpSession        Operation = "session"
	OpItinerary      Operation = "itinerary"
)

// MessageFor returns the localized message for a failed operation. Unknown
// errors get the generic MsgInternal.
func MessageFor(op Operation, err error) string {
	switch {
	case errors.Is(err, ErrUserExists):
		return "Este email já está cadastrado."
	case errors.Is(err, ErrUserNotFound):
		if op == OpLogin {
			return "Email não encontrado."
		}
		return "Usuário não encontrado."
	case errors.Is(err, ErrInvalidCredentials):
		if op == OpUpdatePassword {
			return "Senha atual incorreta."
		}
		return "Senha incorreta."
	case errors.Is(err, ErrInvalidInput):
		return "Preencha todos os campos obrigatórios."
	case errors.Is(err, ErrAlreadySubscribed):
		return "Você já possui uma assinatura ativa."
	case errors.Is(err, ErrNotSubscribed):
		return "Você não possui uma assinatura ativa."
	case errors.Is(err, ErrPersistFailed):
		switch op {
		case OpUpdatePassword:
			return "Erro ao atualizar senha."
		case OpSubscribe:
			return "Erro ao ativar assinatura."
		case OpCancel:
			return "Erro ao cancelar assinatura."
		}
		return MsgInternal
	case errors.Is(err, ErrSessionNotFound):
		if op == OpItinerary {
			return "Você precisa fazer login para criar roteiros."
		}
		return "Sessão expirada. Faça login novamente."
	case errors.Is(err, ErrPremiumRequired):
		return "Apenas assinantes Premium podem criar roteiros! Assine agora por apenas R$ 19,90/mês e tenha acesso ilimitado."
	}
	return MsgInternal
}

// OpError tags an error with the operation that produced it so the HTTP
// layer can choose the matching message.
type OpError struct {
	Op  Operation
	Err error
}

func (e *OpError) Error() string { return string(e.Op) + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

// WithOp wraps err in an OpError. A nil err stays nil.
func WithOp(op Operation, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
