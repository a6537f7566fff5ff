package output

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/lysyi3m/rss-digest/app/digest"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers the digest by email. net/smtp upgrades the
// connection with STARTTLS when the server offers it.
type SMTPSender struct {
	sendMail sendMailFunc
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	values, err := required(settings, MethodSMTP, "smtp.host", "smtp.from")
	if err != nil {
		return err
	}

	host := values["smtp.host"]
	port := optional(settings, "smtp.port", "587")

	msg.Recipient = optional(settings, "smtp.to", msg.Recipient)
	msg.RecipientName = optional(settings, "smtp.to_name", msg.RecipientName)
	if msg.Recipient == "" {
		return fmt.Errorf("%w: output method %s requires email or smtp.to", digest.ErrBadConfiguration, MethodSMTP)
	}

	data, err := buildMessage(values["smtp.from"], optional(settings, "smtp.from_name", ""), msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if username := optional(settings, "smtp.username", ""); username != "" {
		auth = smtp.PlainAuth("", username, optional(settings, "smtp.password", ""), host)
	}

	addr := net.JoinHostPort(host, port)
	slog.Info("Sending digest email", "server", addr, "to", msg.Recipient)

	if err := s.sendMail(addr, auth, values["smtp.from"], []string{msg.Recipient}, data); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, fromName string, msg digest.Message) ([]byte, error) {
	to := mail.Address{Name: msg.RecipientName, Address: msg.Recipient}
	if _, err := mail.ParseAddress(to.String()); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient %q", digest.ErrBadConfiguration, msg.Recipient)
	}

	var buf bytes.Buffer
	if from != "" {
		fmt.Fprintf(&buf, "From: %s\n", (&mail.Address{Name: fromName, Address: from}).String())
	}
	fmt.Fprintf(&buf, "To: %s\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\n")
	fmt.Fprintf(&buf, "Content-Type: %s\n", msg.ContentType)
	buf.WriteString("Content-Transfer-Encoding: 8bit\n\n")
	buf.WriteString(msg.Body)
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
