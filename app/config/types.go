package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Values is a decoded YAML settings document.
type Values map[string]any

// Config resolves settings from its own values, falling back to its
// parent. Keys address nested mappings with dots, e.g. "smtp.host".
type Config struct {
	values Values
	parent *Config
}

func New(values Values, parent *Config) *Config {
	if values == nil {
		values = Values{}
	}
	return &Config{values: values, parent: parent}
}

// Get returns the value stored under key, or false when neither this
// config nor any parent defines it.
func (c *Config) Get(key string) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := lookup(cur.values, key); ok {
			return v, true
		}
	}
	return nil, false
}

// String returns scalar values formatted as text. Mappings and lists
// report false.
func (c *Config) String(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}

	switch v := v.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return "", false
	}
}

func (c *Config) Int(key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}

	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func (c *Config) Bool(key string) (bool, bool) {
	v, ok := c.Get(key)
	if !ok {
		return false, false
	}

	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	default:
		return false, false
	}
}

// Duration accepts Go duration strings ("30s") and plain integers as
// seconds.
func (c *Config) Duration(key string) (time.Duration, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}

	switch v := v.(type) {
	case int:
		return time.Duration(v) * time.Second, true
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		return d, err == nil
	default:
		return 0, false
	}
}

// Set stores value under key in this config's own values, creating
// intermediate mappings as needed.
func (c *Config) Set(key string, value any) error {
	parts := strings.Split(key, ".")
	m := c.values

	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part]
		if !ok || next == nil {
			child := map[string]any{}
			m[part] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %s: %s is not a mapping", key, part)
		}
		m = child
	}

	m[parts[len(parts)-1]] = value
	return nil
}

// Values returns this config's own values, without the parent's.
func (c *Config) Values() Values {
	return c.values
}
