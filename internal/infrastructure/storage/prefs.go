// internal/infrastructure/storage/prefs.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-client/internal/config"
)

// Theme values persisted between sessions
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs wraps the key-value store with the client's persisted state:
// auth token, theme selection, and the onboarding-done flag.
type Prefs struct {
	kv  KeyValue
	cfg config.StorageConfig
}

// NewPrefs creates a Prefs helper over the given store
func NewPrefs(kv KeyValue, cfg config.StorageConfig) *Prefs {
	return &Prefs{kv: kv, cfg: cfg}
}

// Token returns the stored bearer token, or "" when none is stored
func (p *Prefs) Token(ctx context.Context) (string, error) {
	token, err := p.kv.Get(ctx, p.cfg.TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	return token, nil
}

// SetToken persists the bearer token
func (p *Prefs) SetToken(ctx context.Context, token string) error {
	return p.kv.Set(ctx, p.cfg.TokenKey, token, 0)
}

// ClearToken removes the stored bearer token
func (p *Prefs) ClearToken(ctx context.Context) error {
	return p.kv.Delete(ctx, p.cfg.TokenKey)
}

// Theme returns the persisted theme, defaulting to light
func (p *Prefs) Theme(ctx context.Context) string {
	theme, err := p.kv.Get(ctx, p.cfg.ThemeKey)
	if err != nil || theme == "" {
		return ThemeLight
	}
	return theme
}

// SetTheme persists the theme selection
func (p *Prefs) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return p.kv.Set(ctx, p.cfg.ThemeKey, theme, 0)
}

// OnboardingDone reports whether onboarding has been completed
func (p *Prefs) OnboardingDone(ctx context.Context) bool {
	val, err := p.kv.Get(ctx, p.cfg.OnboardingKey)
	return err == nil && val == "1"
}

// MarkOnboardingDone records onboarding completion
func (p *Prefs) MarkOnboardingDone(ctx context.Context) error {
	return p.kv.Set(ctx, p.cfg.OnboardingKey, "1", 0)
}

// snapshotTTL resolves the configured snapshot TTL with a sane default
func (p *Prefs) snapshotTTL() time.Duration {
	if p.cfg.SnapshotTTL > 0 {
		return p.cfg.SnapshotTTL
	}
	return 24 * time.Hour
}
