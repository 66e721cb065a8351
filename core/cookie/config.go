package cookie

import "strings"

// Config provides environment-based configuration for the cookie manager.
// Attribute defaults for individual cookies come from the caller, the session
// middleware passes its own from session.Config.
type Config struct {
	// Secrets is a comma separated list, the first one signs
	Secrets string `env:"COOKIE_SECRETS" envDefault:""`
	MaxSize int    `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

// NewFromConfig creates a Manager from configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	m, err := New(cfg.parseSecrets(), opts...)
	if err != nil {
		return nil, err
	}
	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}
	return m, nil
}

func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}
	var secrets []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
