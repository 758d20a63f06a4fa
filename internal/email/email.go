// Package email delivers cook notifications over SMTP.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service handles email sending
type Service struct {
	config *Config
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	return &Service{config: config}
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Send sends a plain-text email. The whole SMTP exchange, including the
// dial, is bounded by ctx.
func (s *Service) Send(ctx context.Context, email *Email) error {
	if s.config.Host == "" {
		slog.Warn("[Email] not configured, skipping send")
		return nil
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
	}
	// unblocks reads on cancellation without a deadline
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := s.exchange(conn, email); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp %s: %w", addr, ctxErr)
		}
		return err
	}
	return nil
}

func (s *Service) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.config.UseTLS {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.config.Host}}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("TLS dial error: %w", err)
		}
		return conn, nil
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial error: %w", err)
	}
	return conn, nil
}

func (s *Service) exchange(conn net.Conn, email *Email) error {
	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("SMTP client error: %w", err)
	}
	defer client.Close()

	if !s.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
				return fmt.Errorf("starttls error: %w", err)
			}
		}
	}
	if s.config.User != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("auth error: %w", err)
			}
		}
	}

	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("mail error: %w", err)
	}
	for _, rcpt := range email.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt error: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data error: %w", err)
	}
	if _, err := w.Write(s.buildMessage(email)); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}
	return client.Quit()
}

func (s *Service) buildMessage(email *Email) []byte {
	var msg bytes.Buffer

	// Headers
	if s.config.FromName != "" {
		msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	} else {
		msg.WriteString(fmt.Sprintf("From: %s\r\n", s.config.From))
	}
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	return msg.Bytes()
}

// ============================================
// Cook Sink
// ============================================

// CookSink mails each composed cook message to a fixed list of addresses.
type CookSink struct {
	service *Service
	to      []string
}

func NewCookSink(service *Service, to []string) *CookSink {
	return &CookSink{service: service, to: to}
}

func (s *CookSink) Deliver(ctx context.Context, groupID, date, message string) error {
	err := s.service.Send(ctx, &Email{
		To:      s.to,
		Subject: fmt.Sprintf("FlatMeals order for %s", date),
		Body:    message,
	})
	if err != nil {
		return fmt.Errorf("mail cook for group %s: %w", groupID, err)
	}
	slog.InfoContext(ctx, "[Email] cook notification sent", "group_id", groupID, "date", date, "recipients", len(s.to))
	return nil
}
