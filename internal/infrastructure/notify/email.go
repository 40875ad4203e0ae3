// Package notify delivers account notifications by email.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/pkg/config"
)

// EmailNotifier sends subscription emails over SMTP.
type EmailNotifier struct {
	cfg  config.SMTPConfig
	log  zerolog.Logger
	send func(e *email.Email) error
}

// NewEmailNotifier returns a notifier for cfg. Callers should only build one
// when cfg.Host is set.
func NewEmailNotifier(cfg config.SMTPConfig, log zerolog.Logger) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, log: log}
	n.send = n.sendSMTP
	return n
}

// Notify emails the user about a subscription change. Other event kinds are ignored.
func (n *EmailNotifier) Notify(ctx context.Context, event domain.AccountEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, ok := n.compose(event)
	if !ok {
		return nil
	}
	if err := n.send(msg); err != nil {
		return fmt.Errorf("send %s email: %w", event.Kind, err)
	}
	n.log.Info().Str("kind", string(event.Kind)).Msg("notification email sent")
	return nil
}

func (n *EmailNotifier) compose(event domain.AccountEvent) (*email.Email, bool) {
	name := event.Name
	if name == "" {
		name = event.Email
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{event.Email}

	body := fmt.Sprintf("Olá, %s!\n\n", name)
	switch event.Kind {
	case domain.EventSubscribed:
		e.Subject = "Bem-vindo ao EcoPilot Premium"
		body += fmt.Sprintf(
			"Sua assinatura Premium foi ativada em %s.\n"+
				"Agora você pode gerar roteiros sustentáveis personalizados para qualquer destino.\n",
			event.Timestamp.Format("02/01/2006"),
		)
	case domain.EventSubscriptionCancelled:
		e.Subject = "Sua assinatura EcoPilot Premium foi cancelada"
		body += "Sua assinatura Premium foi cancelada. Você continua com acesso à conta gratuita.\n" +
			"Esperamos ver você de volta em breve.\n"
	default:
		return nil, false
	}
	body += "\nBoa viagem,\nEquipe EcoPilot"
	e.Text = []byte(body)
	return e, true
}

func (n *EmailNotifier) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	return e.Send(addr, auth)
}
