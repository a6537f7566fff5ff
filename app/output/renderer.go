package output

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	texttemplate "text/template"
	"unicode/utf8"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/feed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*
var builtinTemplates embed.FS

var _ digest.Renderer = (*Renderer)(nil)

// Renderer executes digest templates. A template is looked up in the
// profile's templates directory, then the application templates directory,
// then the built-in templates.
type Renderer struct {
	profilesDir string
	appDir      string
	extractor   *feed.ContentExtractor
}

func NewRenderer(profilesDir, appDir string, extractor *feed.ContentExtractor) *Renderer {
	if extractor == nil {
		extractor = feed.NewContentExtractor()
	}
	return &Renderer{
		profilesDir: profilesDir,
		appDir:      appDir,
		extractor:   extractor,
	}
}

func isHTML(templateID string) bool {
	switch strings.ToLower(path.Ext(templateID)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

func (r *Renderer) ContentType(templateID string) string {
	if isHTML(templateID) {
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, templateID string, c *digest.Context) (string, error) {
	source, origin, err := r.lookup(c.ProfileName, templateID)
	if err != nil {
		return "", err
	}

	slog.Debug("Rendering digest", "profile", c.ProfileName, "template", templateID, "origin", origin)

	funcs := r.funcs(c)
	var buf bytes.Buffer

	if isHTML(templateID) {
		tmpl, err := htmltemplate.New(templateID).Funcs(htmltemplate.FuncMap(funcs)).Parse(source)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", templateID, err)
		}
		if err := tmpl.Execute(&buf, c); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %w", templateID, err)
		}
	} else {
		tmpl, err := texttemplate.New(templateID).Funcs(texttemplate.FuncMap(funcs)).Parse(source)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", templateID, err)
		}
		if err := tmpl.Execute(&buf, c); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %w", templateID, err)
		}
	}

	return buf.String(), nil
}

func (r *Renderer) lookup(profile, templateID string) (string, string, error) {
	if templateID == "" || templateID != filepath.Base(templateID) || strings.HasPrefix(templateID, ".") {
		return "", "", fmt.Errorf("%w: %q", ErrTemplateNotFound, templateID)
	}

	var dirs []string
	if r.profilesDir != "" && profile != "" {
		dirs = append(dirs, filepath.Join(r.profilesDir, profile, "templates"))
	}
	if r.appDir != "" {
		dirs = append(dirs, r.appDir)
	}

	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, templateID))
		if err == nil {
			return string(data), dir, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("failed to read template %s: %w", templateID, err)
		}
	}

	data, err := builtinTemplates.ReadFile(path.Join("templates", templateID))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrTemplateNotFound, templateID)
	}
	return string(data), "builtin", nil
}

func (r *Renderer) funcs(c *digest.Context) map[string]any {
	tag := language.English
	if c.Config.Language != "" {
		if parsed, err := language.Parse(c.Config.Language); err == nil {
			tag = parsed
		} else {
			slog.Warn("Unknown language, using English", "language", c.Config.Language)
		}
	}
	printer := message.NewPrinter(tag)

	return map[string]any{
		"plaintext": r.extractor.Text,
		"date":      c.DateTime.Date,
		"time":      c.DateTime.Time,
		"datetime":  c.DateTime.DateTime,
		"number": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"truncate": truncate,
		"join":     strings.Join,
	}
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
