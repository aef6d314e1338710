// Package locale keeps the user's language preference.
package locale

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/jobportal/jobportal-client/internal/storage"
)

// Supported lists the languages the client ships translations for. The first
// entry is the fallback.
var Supported = []language.Tag{language.English, language.Hindi, language.Marathi}

var matcher = language.NewMatcher(Supported)

// Preference reads and writes the language stored under the "language" key.
type Preference struct {
	store  storage.Store
	logger *slog.Logger

	mu      sync.RWMutex
	current language.Tag
}

// NewPreference returns a Preference starting at the fallback language.
func NewPreference(store storage.Store, logger *slog.Logger) *Preference {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preference{store: store, logger: logger, current: Supported[0]}
}

// Current returns the active language.
func (p *Preference) Current() language.Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// UseDefault sets the language used until a stored preference is loaded.
func (p *Preference) UseDefault(requested string) language.Tag {
	tag := Match(requested)
	p.set(tag)
	return tag
}

// Load applies the stored language, if any. Storage errors are logged and
// leave the current language untouched.
func (p *Preference) Load(ctx context.Context) language.Tag {
	raw, ok, err := p.store.Get(ctx, storage.KeyLanguage)
	if err != nil {
		p.logger.Warn("locale read preference", slog.Any("error", err))
		return p.Current()
	}
	if !ok || raw == "" {
		return p.Current()
	}
	tag := Match(raw)
	p.set(tag)
	return tag
}

// Select switches to the supported language closest to requested and stores
// it. A storage failure is logged; the switch still applies in memory.
func (p *Preference) Select(ctx context.Context, requested string) language.Tag {
	tag := Match(requested)
	p.set(tag)
	if err := p.store.Set(ctx, storage.KeyLanguage, Code(tag)); err != nil {
		p.logger.Warn("locale save preference", slog.String("language", Code(tag)), slog.Any("error", err))
	}
	return tag
}

// Match maps any BCP 47 string to one of Supported.
func Match(requested string) language.Tag {
	desired, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(desired) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Code returns the short language code persisted for tag.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func (p *Preference) set(tag language.Tag) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = tag
}
