package formgroup

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys read by WithTheme.
const (
	TokenErrorClass    = "formgroup.errorClass"
	TokenColumnsClass  = "formgroup.columnsClass"
	TokenErrorTemplate = "formgroup.errorTemplate"
	TokenLabelMode     = "formgroup.labelMode"
)

// WithTheme applies the formgroup.* tokens of a theme selection. Missing or
// blank tokens keep the current settings.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		if cfg == nil || len(cfg.Tokens) == 0 {
			return
		}
		if value, ok := token(cfg.Tokens, TokenErrorClass); ok {
			r.errorClass = value
		}
		if value, ok := token(cfg.Tokens, TokenColumnsClass); ok {
			r.columnsClass = value
		}
		if value, ok := token(cfg.Tokens, TokenErrorTemplate); ok {
			r.errorTemplate = value
		}
		if value, ok := token(cfg.Tokens, TokenLabelMode); ok {
			if mode, err := ParseLabelMode(value); err == nil {
				r.mode = mode
			} else {
				r.logger.Warn("ignoring theme label mode", "theme", cfg.Theme, "value", value)
			}
		}
	}
}

func token(tokens map[string]string, key string) (string, bool) {
	value := strings.TrimSpace(tokens[key])
	return value, value != ""
}
