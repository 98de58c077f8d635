// Package email envía correo transaccional vía SMTP.
package email

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
	"github.com/jhoicas/BiciFlow-api/pkg/config"
)

// Verificar en tiempo de compilación que Service implementa EmailSender.
var _ billing.EmailSender = (*Service)(nil)

// Service remitente SMTP. Si la configuración está incompleta los
// envíos devuelven error; quien llama decide si eso es fatal.
type Service struct {
	cfg    config.SMTPConfig
	server string
	auth   smtp.Auth
}

// NewService construye el remitente con la configuración SMTP.
func NewService(cfg config.SMTPConfig) *Service {
	return &Service{
		cfg:    cfg,
		server: cfg.Host + ":" + cfg.Port,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

// IsConfigured indica si hay datos suficientes para enviar correo.
func (s *Service) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Port != "" && s.cfg.From != ""
}

// SendHTML envía un correo HTML con parte de texto plano de respaldo.
func (s *Service) SendHTML(to, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email: SMTP no configurado")
	}

	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	const boundary = "boundary-biciflow"
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	fmt.Fprintf(&msg, "\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "Please view this email in an HTML-capable email client.\r\n\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "%s\r\n\r\n", htmlBody)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	if err := smtp.SendMail(s.server, s.auth, s.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("email: enviar: %w", err)
	}
	return nil
}
