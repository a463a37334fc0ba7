// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgroup/pkg/formgroup"
)

// Config represents config.yaml. Field names match snake_case YAML keys.
type Config struct {
	LabelMode     string            `yaml:"label_mode"`
	ErrorTemplate string            `yaml:"error_template"`
	ErrorClass    string            `yaml:"error_class"`
	ColumnsClass  *string           `yaml:"columns_class"`
	TemplateDir   string            `yaml:"template_dir"`
	Theme         string            `yaml:"theme"`
	Variant       string            `yaml:"variant"`
	Tokens        map[string]string `yaml:"tokens"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LabelMode:     formgroup.LabelWrap.String(),
		ErrorTemplate: formgroup.DefaultErrorTemplate,
		ErrorClass:    formgroup.DefaultErrorClass,
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown label modes.
func (c Config) Validate() error {
	if _, err := formgroup.ParseLabelMode(c.LabelMode); err != nil {
		return err
	}
	if c.TemplateDir != "" {
		info, err := os.Stat(c.TemplateDir)
		if err != nil {
			return fmt.Errorf("template_dir: %w", err)
		}
		if !info.IsDir() {
			return errors.New("template_dir: not a directory")
		}
	}
	return nil
}

// ThemeConfig wraps the theme name and tokens for formgroup.WithTheme.
// Returns nil when no tokens are configured.
func (c Config) ThemeConfig() *theme.RendererConfig {
	if len(c.Tokens) == 0 {
		return nil
	}
	tokens := make(map[string]string, len(c.Tokens))
	for key, value := range c.Tokens {
		tokens[key] = value
	}
	return &theme.RendererConfig{
		Theme:   c.Theme,
		Variant: c.Variant,
		Tokens:  tokens,
	}
}

// GroupOptions translates the file into renderer options. Theme tokens are
// applied last so a theme can restyle the configured defaults.
func (c Config) GroupOptions(logger *slog.Logger) ([]formgroup.Option, error) {
	mode, err := formgroup.ParseLabelMode(c.LabelMode)
	if err != nil {
		return nil, err
	}

	options := []formgroup.Option{
		formgroup.WithLabelMode(mode),
		formgroup.WithErrorTemplate(c.ErrorTemplate),
	}
	if logger != nil {
		options = append([]formgroup.Option{formgroup.WithLogger(logger)}, options...)
	}
	if strings.TrimSpace(c.ErrorClass) != "" {
		options = append(options, formgroup.WithErrorClass(c.ErrorClass))
	}
	if c.ColumnsClass != nil {
		options = append(options, formgroup.WithColumnsClass(*c.ColumnsClass))
	}
	if cfg := c.ThemeConfig(); cfg != nil {
		options = append(options, formgroup.WithTheme(cfg))
	}
	return options, nil
}
