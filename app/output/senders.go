package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/samber/lo"
)

const (
	MethodStdout   = "stdout"
	MethodFile     = "file"
	MethodSendmail = "sendmail"
	MethodSMTP     = "smtp"
	MethodAMQP     = "amqp"
)

var _ digest.Senders = (*Registry)(nil)

// Registry maps output method names to senders.
type Registry struct {
	senders map[string]digest.Sender
}

// NewRegistry returns a registry with every built-in method. Console
// methods write to w.
func NewRegistry(w io.Writer) *Registry {
	if w == nil {
		w = os.Stdout
	}

	r := &Registry{senders: make(map[string]digest.Sender)}
	r.Register(MethodStdout, &StdoutSender{w: w})
	r.Register(MethodFile, &FileSender{})
	r.Register(MethodSendmail, &SendmailSender{w: w})
	r.Register(MethodSMTP, NewSMTPSender())
	r.Register(MethodAMQP, &AMQPSender{})
	return r
}

func (r *Registry) Register(method string, sender digest.Sender) {
	r.senders[method] = sender
}

func (r *Registry) Sender(method string) (digest.Sender, error) {
	sender, ok := r.senders[method]
	if !ok {
		return nil, fmt.Errorf("%w: unknown output method %q (available: %s)",
			digest.ErrBadConfiguration, method, strings.Join(r.Methods(), ", "))
	}
	return sender, nil
}

func (r *Registry) Methods() []string {
	methods := lo.Keys(r.senders)
	slices.Sort(methods)
	return methods
}

func required(settings digest.Settings, method string, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	var missing []string

	for _, key := range keys {
		v, ok := settings.String(key)
		if !ok || v == "" {
			missing = append(missing, key)
			continue
		}
		values[key] = v
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: output method %s requires %s", digest.ErrBadConfiguration, method, strings.Join(missing, ", "))
	}
	return values, nil
}

func optional(settings digest.Settings, key, fallback string) string {
	if v, ok := settings.String(key); ok && v != "" {
		return v
	}
	return fallback
}

type StdoutSender struct {
	w io.Writer
}

func (s *StdoutSender) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	_, err := io.WriteString(s.w, strings.TrimRight(msg.Body, "\n")+"\n")
	return err
}

// FileSender writes the digest to file.path, replacing any previous digest.
type FileSender struct{}

func (s *FileSender) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	values, err := required(settings, MethodFile, "file.path")
	if err != nil {
		return err
	}
	path := values["file.path"]

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(msg.Body), 0o644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}

	slog.Debug("Digest written to file", "path", path, "bytes", len(msg.Body))
	return nil
}

// SendmailSender prints a message suitable for piping to `sendmail -t`.
type SendmailSender struct {
	w io.Writer
}

func (s *SendmailSender) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	if msg.Recipient == "" {
		return fmt.Errorf("%w: output method %s requires email", digest.ErrBadConfiguration, MethodSendmail)
	}

	data, err := buildMessage(optional(settings, "smtp.from", ""), optional(settings, "smtp.from_name", ""), msg)
	if err != nil {
		return err
	}

	_, err = s.w.Write(data)
	return err
}
