package config

import (
	"context"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Built-in default templates, used when no config file provides a value.
const (
	BuiltinTemplate     = "%Y%m%d_%{UNIQSUFF}"
	BuiltinTemplateDesc = "%Y%m%d_%{DESC}_%{UNIQSUFF}"
)

// Config holds the four default-template strings a user config file may
// supply. Empty fields inherit: each *_single key falls back to its plural
// key, and the desc keys fall back to the built-in descriptor template.
type Config struct {
	DefaultTemplate           string `yaml:"default_template" hcl:"default_template,optional"`
	DefaultTemplateSingle     string `yaml:"default_template_single" hcl:"default_template_single,optional"`
	DefaultTemplateDesc       string `yaml:"default_template_desc" hcl:"default_template_desc,optional"`
	DefaultTemplateDescSingle string `yaml:"default_template_desc_single" hcl:"default_template_desc_single,optional"`
}

// Parser is the interface for config parsers.
type Parser interface {
	// Parse parses the config from bytes.
	Parse(ctx context.Context, data []byte) (*Config, error)

	// CanParse checks if this parser can handle the given file.
	CanParse(filename string) bool
}

var parsers []Parser

// Register registers a parser.
func Register(p Parser) {
	parsers = append(parsers, p)
}

// GetParser returns a parser that can handle the given file.
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultTemplate:           BuiltinTemplate,
		DefaultTemplateSingle:     BuiltinTemplate,
		DefaultTemplateDesc:       BuiltinTemplateDesc,
		DefaultTemplateDescSingle: BuiltinTemplateDesc,
	}
}

// Load reads and parses the config file at path, filling any missing keys
// from their inherited values.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Resolve finds and loads the user's config file, returning Default() when
// none exists. Search order: $XDG_CONFIG_HOME/renuniq/ (or
// ~/.config/renuniq/), then dotfiles in the home directory; within each
// location yaml is tried before yml before hcl.
func Resolve(ctx context.Context) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(ctx, path)
	}
	logger.Debug().Msg("no config file found, using defaults")
	return Default(), nil
}

func searchPaths() []string {
	var paths []string
	exts := []string{"yaml", "yml", "hcl"}

	configDir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "renuniq")
	} else if home, err := homedir.Dir(); err == nil {
		configDir = filepath.Join(home, ".config", "renuniq")
	}
	if configDir != "" {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(configDir, "renuniq."+ext))
		}
	}

	if home, err := homedir.Dir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(home, ".renuniq."+ext))
		}
	}
	return paths
}

// applyDefaults fills empty keys with their inherited values.
func (c *Config) applyDefaults() {
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = BuiltinTemplate
	}
	if c.DefaultTemplateSingle == "" {
		c.DefaultTemplateSingle = c.DefaultTemplate
	}
	if c.DefaultTemplateDesc == "" {
		c.DefaultTemplateDesc = BuiltinTemplateDesc
	}
	if c.DefaultTemplateDescSingle == "" {
		c.DefaultTemplateDescSingle = c.DefaultTemplateDesc
	}
}

// TemplateFor selects the default template for the shape of the run: a
// single-file batch or not, and whether a descriptor was given.
func (c *Config) TemplateFor(single, withDescriptor bool) string {
	switch {
	case withDescriptor && single:
		return c.DefaultTemplateDescSingle
	case withDescriptor:
		return c.DefaultTemplateDesc
	case single:
		return c.DefaultTemplateSingle
	default:
		return c.DefaultTemplate
	}
}
