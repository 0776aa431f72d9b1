// Package theme derives the renderable palette from a site config
// snapshot. Derivation is pure: no I/O, no retained state, so a fresh call
// against the latest snapshot can never serve a stale palette.
package theme

import "github.com/lseungyeop/portfolio-admin/models"

// Built-in palette, used whenever config is absent or a field is missing
// or invalid.
const (
	DefaultPrimary       = "#374151" // charcoal, main background
	DefaultSecondary     = "#0D9488" // teal green, buttons and accents
	DefaultBackground    = "#374151"
	DefaultPaper         = "#4B5563"
	DefaultText          = "#FFFFFF"
	DefaultSecondaryText = "#9CA3AF"
	DefaultNav           = "transparent"
)

// Theme is the resolved presentation palette plus the titles the home view
// renders.
type Theme struct {
	MainTitle     string `json:"mainTitle"`
	SubTitle      string `json:"subTitle"`
	MainImageURL  string `json:"mainImageUrl,omitempty"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Paper         string `json:"paper"`
	Text          string `json:"text"`
	SecondaryText string `json:"secondaryText"`
	Nav           string `json:"nav"`
}

// Derive maps a config snapshot to a theme. A nil config yields the full
// default palette; any individual missing or invalid field falls back to
// its own default without affecting the others.
func Derive(cfg *models.SiteConfig) Theme {
	t := Theme{
		Primary:       DefaultPrimary,
		Secondary:     DefaultSecondary,
		Background:    DefaultBackground,
		Paper:         DefaultPaper,
		Text:          DefaultText,
		SecondaryText: DefaultSecondaryText,
		Nav:           DefaultNav,
	}
	if cfg == nil {
		return t
	}

	t.MainTitle = cfg.MainTitle
	t.SubTitle = cfg.SubTitle
	t.MainImageURL = cfg.MainImageURL

	if ValidHex(cfg.PrimaryColor) {
		t.Primary = cfg.PrimaryColor
		t.Background = cfg.PrimaryColor
	}
	if ValidHex(cfg.SecondaryColor) {
		t.Secondary = cfg.SecondaryColor
	}
	if ValidNavColor(cfg.NavColor) {
		t.Nav = cfg.NavColor
	}
	return t
}

// ValidHex accepts #RGB and #RRGGBB.
func ValidHex(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ValidNavColor accepts the literal "transparent" or a valid hex color.
// The nav bar is the only surface allowed to be transparent.
func ValidNavColor(s string) bool {
	return s == "transparent" || ValidHex(s)
}

// DefaultConfig returns the config the site falls back to when none can be
// fetched.
func DefaultConfig() models.SiteConfig {
	return models.SiteConfig{
		PrimaryColor:   DefaultPrimary,
		SecondaryColor: DefaultSecondary,
		NavColor:       DefaultNav,
	}
}
