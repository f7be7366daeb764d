package invoice

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/swippe/quickcommerce/pkg/logger_i"
)

const smtpDialTimeout = 30 * time.Second

// Mailer sends invoice emails over SMTP with STARTTLS. When no credentials
// are configured it logs and succeeds, so checkout never depends on mail.
type Mailer struct {
	host       string
	port       int
	sender     string
	secret     string
	senderName string
	enabled    bool
	logger     *logger_i.Logger
}

type MailerConfig struct {
	Host       string
	Port       int
	Sender     string
	Secret     string
	SenderName string
	Enabled    bool
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		host:       cfg.Host,
		port:       cfg.Port,
		sender:     cfg.Sender,
		secret:     cfg.Secret,
		senderName: cfg.SenderName,
		enabled:    cfg.Enabled,
		logger:     logger_i.NewLogger("InvoiceMailer"),
	}
}

func (m *Mailer) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	if !m.enabled {
		m.logger.Info("Mail disabled, skipping invoice send", "to", to)
		return nil
	}

	msg := m.buildMessage(to, subject, htmlBody)
	if err := m.sendSMTP(ctx, to, msg); err != nil {
		m.logger.Error("Invoice send failed", "to", to, "error", err)
		return err
	}
	m.logger.Info("Invoice sent", "to", to)
	return nil
}

func (m *Mailer) buildMessage(to string, subject string, htmlBody string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.senderName, m.sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.String()
}

func (m *Mailer) sendSMTP(ctx context.Context, to string, msg string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.sender, m.secret, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication: %w", err)
	}

	if err := client.Mail(m.sender); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("starting message body: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing message body: %w", err)
	}

	// best effort, the message is already accepted
	_ = client.Quit()
	return nil
}
