// Package config manages DocHist configuration and the .dochist
// directory structure. It handles loading, saving, and initializing
// the repository configuration, including the tracked type
// declarations the metadata registry is built from.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/kilupskalvis/dochist/internal/meta"
)

const (
	DocHistDir    = ".dochist"
	ConfigFile    = "config"
	DocumentsFile = "documents.db"
	RecordsFile   = "records.db"
	DefaultLocale = "en"
)

// AssociationConfig declares one embedded association of a type.
type AssociationConfig struct {
	Kind string `toml:"kind"` // embeds_one or embeds_many
	Type string `toml:"type"`
}

// TypeConfig declares one tracked document type.
type TypeConfig struct {
	Tracked       []string                     `toml:"tracked,omitempty"`
	TrackAll      bool                         `toml:"track_all,omitempty"`
	Untracked     []string                     `toml:"untracked,omitempty"`
	Localized     []string                     `toml:"localized,omitempty"`
	ModifierField string                       `toml:"modifier_field,omitempty"`
	Associations  map[string]AssociationConfig `toml:"associations,omitempty"`
}

// Config represents the DocHist configuration
type Config struct {
	Locale string                `toml:"locale"`
	Types  map[string]TypeConfig `toml:"types,omitempty"`
	path   string                // path to .dochist directory
}

// FindRoot finds the .dochist directory by walking up from current directory
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, DocHistDir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a dochist repository (or any parent up to root)")
		}
		dir = parent
	}
}

// Load loads the configuration from the .dochist directory
func Load() (*Config, error) {
	path, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit .dochist directory
func LoadFrom(path string) (*Config, error) {
	configPath := filepath.Join(path, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.path = path
	return &cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// validate checks the locale tag and association declarations.
func (c *Config) validate() error {
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}
	for typeName, typeCfg := range c.Types {
		for assocName, assoc := range typeCfg.Associations {
			switch assoc.Kind {
			case string(meta.EmbedsOne), string(meta.EmbedsMany):
			default:
				return fmt.Errorf("type %s association %s: unknown kind %q", typeName, assocName, assoc.Kind)
			}
			if assoc.Type == "" {
				return fmt.Errorf("type %s association %s: missing target type", typeName, assocName)
			}
		}
	}
	return nil
}

// NormalizedLocale returns the canonical BCP 47 form of the configured
// locale, defaulting to "en".
func (c *Config) NormalizedLocale() string {
	locale := c.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale
	}
	return tag.String()
}

// Registry builds the metadata registry from the declared types.
func (c *Config) Registry() *meta.Registry {
	registry := meta.NewRegistry()
	for typeName, typeCfg := range c.Types {
		info := meta.TypeInfo{
			Name:          typeName,
			Tracked:       typeCfg.Tracked,
			TrackAll:      typeCfg.TrackAll,
			Untracked:     typeCfg.Untracked,
			Localized:     typeCfg.Localized,
			ModifierField: typeCfg.ModifierField,
			Associations:  make(map[string]meta.Association, len(typeCfg.Associations)),
		}
		for assocName, assoc := range typeCfg.Associations {
			info.Associations[assocName] = meta.Association{
				Kind: meta.AssociationKind(assoc.Kind),
				Type: assoc.Type,
			}
		}
		registry.Register(info)
	}
	return registry
}

// Path returns the path to the .dochist directory
func (c *Config) Path() string {
	return c.path
}

// DocumentsPath returns the path to the document database
func (c *Config) DocumentsPath() string {
	return filepath.Join(c.path, DocumentsFile)
}

// RecordsPath returns the path to the change record database
func (c *Config) RecordsPath() string {
	return filepath.Join(c.path, RecordsFile)
}

// Initialize creates a new .dochist directory with initial configuration
func Initialize(locale string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(cwd, DocHistDir)

	// Check if already initialized
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("dochist repository already exists")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .dochist directory: %w", err)
	}

	if locale == "" {
		locale = DefaultLocale
	}
	cfg := &Config{
		Locale: locale,
		path:   path,
	}
	if err := cfg.validate(); err != nil {
		os.RemoveAll(path)
		return nil, err
	}

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(path)
		return nil, err
	}

	return cfg, nil
}
