// Package prefs stores per-client site preferences: cookie consent flags and
// the theme choice. Both live in the same document store as the cart, under
// their own versioned keys.
package prefs

import (
	"strings"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
)

// Theme is the site color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Consent carries the cookie-consent flags. Necessary is always true; the
// other categories default to declined until the client opts in.
type Consent struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// DefaultConsent is the state before the client has answered the banner.
func DefaultConsent() Consent {
	return Consent{Necessary: true}
}

// Adapter persists preference documents per client namespace.
type Adapter interface {
	Get(namespace, key string, dest any) error
	Put(namespace, key string, value any) error
}

// Service reads and writes preferences for client tokens.
type Service struct {
	adapter Adapter
}

func NewService(adapter Adapter) *Service {
	return &Service{adapter: adapter}
}

// Consent returns the stored consent for the token, or the default when
// nothing has been recorded yet.
func (s *Service) Consent(token string) Consent {
	consent := DefaultConsent()
	if s.adapter == nil {
		return consent
	}
	if err := s.adapter.Get(token, localstore.KeyConsent, &consent); err != nil {
		return DefaultConsent()
	}
	consent.Necessary = true
	return consent
}

// SaveConsent records the client's answer. Necessary cannot be declined.
func (s *Service) SaveConsent(token string, consent Consent) error {
	consent.Necessary = true
	if s.adapter == nil {
		return nil
	}
	return s.adapter.Put(token, localstore.KeyConsent, consent)
}

type themeDoc struct {
	Theme string `json:"theme"`
}

// Theme returns the stored theme, defaulting to light for new clients and
// for unrecognized stored values.
func (s *Service) Theme(token string) Theme {
	if s.adapter == nil {
		return ThemeLight
	}
	var doc themeDoc
	if err := s.adapter.Get(token, localstore.KeyTheme, &doc); err != nil {
		return ThemeLight
	}
	return parseTheme(doc.Theme)
}

// SaveTheme records the theme choice, correcting unknown values to light.
func (s *Service) SaveTheme(token string, theme string) (Theme, error) {
	resolved := parseTheme(theme)
	if s.adapter == nil {
		return resolved, nil
	}
	if err := s.adapter.Put(token, localstore.KeyTheme, themeDoc{Theme: string(resolved)}); err != nil {
		return resolved, err
	}
	return resolved, nil
}

func parseTheme(value string) Theme {
	if strings.ToLower(strings.TrimSpace(value)) == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}
