// Package mailer dispatches certificate notifications over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/artem13815/captable/pkg/certificate"
)

// Message is one certificate notification to a shareholder.
type Message struct {
	To              string
	ShareholderName string
	Certificate     certificate.Data
	Attachment      []byte
}

// Sender abstracts outbound mail so use cases stay transport-agnostic.
type Sender interface {
	SendCertificate(ctx context.Context, msg Message) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	CompanyName string
	// Environment "testing" skips the network send entirely.
	Environment string
}

// SMTPSender sends mail with STARTTLS and plain auth. A single attempt is
// made per message; callers decide whether a failure is fatal.
type SMTPSender struct {
	cfg SMTPConfig
	log zerolog.Logger
}

func NewSMTPSender(cfg SMTPConfig, log zerolog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) SendCertificate(ctx context.Context, msg Message) error {
	filename := fmt.Sprintf("share_certificate_%s.pdf", msg.Certificate.CertificateID)

	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	m.Subject(fmt.Sprintf("Your Share Certificate - %s", msg.Certificate.CertificateID))
	m.SetBodyString(gomail.TypeTextHTML, certificateHTML(s.cfg.CompanyName, msg.ShareholderName, msg.Certificate))
	if err := m.AttachReader(filename, bytes.NewReader(msg.Attachment)); err != nil {
		return fmt.Errorf("attach certificate: %w", err)
	}

	if s.cfg.Environment == "testing" {
		s.log.Info().Str("to", msg.To).Str("attachment", filename).Msg("email simulation: send skipped")
		return nil
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.User),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
