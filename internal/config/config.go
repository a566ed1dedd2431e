// Package config loads the optional refgen configuration file.
//
// Files are YAML (.yaml, .yml) or TOML (.toml). Environment variables from
// .env and .env.local are loaded first, and ${VAR} references in the file are
// expanded before parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/redact"
)

// Config holds every setting a generation run reads.
type Config struct {
	// InputPattern locates the help dump; %s is replaced by the version.
	InputPattern string `yaml:"input_pattern" toml:"input_pattern"`
	// OutputRoot is the directory pages are written under; %s is replaced by the version.
	OutputRoot   string          `yaml:"output_root" toml:"output_root"`
	ReferenceDir string          `yaml:"reference_dir" toml:"reference_dir"`
	GlobalPage   string          `yaml:"global_page" toml:"global_page"`
	Extension    string          `yaml:"extension" toml:"extension"`
	TemplatesDir string          `yaml:"templates_dir" toml:"templates_dir"`
	Redaction    RedactionConfig `yaml:"redaction" toml:"redaction"`
	Frontmatter  *bool           `yaml:"frontmatter" toml:"frontmatter"`
	Log          LogConfig       `yaml:"log" toml:"log"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-" toml:"-"`
}

// RedactionConfig names the options that carry the paths to redact and the
// tokens that replace them.
type RedactionConfig struct {
	BuildrootKey   string `yaml:"buildroot_key" toml:"buildroot_key"`
	CacheDirKey    string `yaml:"cachedir_key" toml:"cachedir_key"`
	BuildrootToken string `yaml:"buildroot_token" toml:"buildroot_token"`
	CacheDirToken  string `yaml:"cachedir_token" toml:"cachedir_token"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Candidate file names looked up in the working directory.
var localNames = []string{"refgen.yaml", "refgen.yml", "refgen.toml"}

// xdgName is the config file looked up under the XDG config directories.
const xdgName = "refgen/config.yaml"

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.InputPattern == "" {
		cfg.InputPattern = "%s.help-all.json"
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = "%s"
	}
	if cfg.ReferenceDir == "" {
		cfg.ReferenceDir = "reference"
	}
	if cfg.GlobalPage == "" {
		cfg.GlobalPage = "global-options.mdx"
	}
	if cfg.Extension == "" {
		cfg.Extension = ".mdx"
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	if cfg.Frontmatter == nil {
		enabled := true
		cfg.Frontmatter = &enabled
	}

	keys := redact.DefaultKeys()
	r := &cfg.Redaction
	if r.BuildrootKey == "" {
		r.BuildrootKey = keys.BuildrootKey
	}
	if r.CacheDirKey == "" {
		r.CacheDirKey = keys.CacheDirKey
	}
	if r.BuildrootToken == "" {
		r.BuildrootToken = keys.BuildrootToken
	}
	if r.CacheDirToken == "" {
		r.CacheDirToken = keys.CacheDirToken
	}

	cfg.Log.Level = string(NormalizeLogLevel(cfg.Log.Level))
	cfg.Log.Format = string(NormalizeLogFormat(cfg.Log.Format))
}

// Find resolves the configuration file: explicit wins, then the working
// directory candidates, then the XDG config search path. An empty result
// means no file exists and defaults apply.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", rgerrors.ConfigInvalid(explicit, fmt.Errorf("configuration file not found: %w", err))
		}
		return explicit, nil
	}
	for _, name := range localNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	if p, err := xdg.SearchConfigFile(xdgName); err == nil {
		return p, nil
	}
	return "", nil
}

// Load loads .env files, resolves the configuration file and parses it.
// Without a file, the defaults are returned.
func Load(explicit string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, rgerrors.ConfigInvalid(".env", err)
	}

	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile parses the configuration file at path, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 -- path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rgerrors.ConfigInvalid(path, fmt.Errorf("failed to read config file: %w", err))
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(expanded, &cfg)
	case ".toml":
		err = toml.Unmarshal(expanded, &cfg)
	default:
		err = fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, rgerrors.ConfigInvalid(path, err)
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, rgerrors.ConfigInvalid(path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.Count(c.InputPattern, "%s") != 1 {
		errs = append(errs, fmt.Errorf("input_pattern must contain exactly one %%s: %q", c.InputPattern))
	}
	if strings.Count(c.OutputRoot, "%s") > 1 {
		errs = append(errs, fmt.Errorf("output_root may contain at most one %%s: %q", c.OutputRoot))
	}
	if filepath.IsAbs(c.ReferenceDir) || strings.HasPrefix(filepath.Clean(c.ReferenceDir), "..") {
		errs = append(errs, fmt.Errorf("reference_dir must be relative to output_root: %q", c.ReferenceDir))
	}
	if strings.ContainsRune(c.GlobalPage, '/') {
		errs = append(errs, fmt.Errorf("global_page must be a file name: %q", c.GlobalPage))
	}
	return errors.Join(errs...)
}

// InputPath returns the help dump path for version.
func (c *Config) InputPath(version string) string {
	return fmt.Sprintf(c.InputPattern, version)
}

// OutputPath returns the output root for version.
func (c *Config) OutputPath(version string) string {
	if !strings.Contains(c.OutputRoot, "%s") {
		return c.OutputRoot
	}
	return fmt.Sprintf(c.OutputRoot, version)
}

// FrontmatterEnabled reports whether pages carry YAML frontmatter.
func (c *Config) FrontmatterEnabled() bool {
	return c.Frontmatter == nil || *c.Frontmatter
}

// RedactKeys converts the redaction settings for the redact package.
func (c *Config) RedactKeys() redact.Keys {
	return redact.Keys{
		BuildrootKey:   c.Redaction.BuildrootKey,
		CacheDirKey:    c.Redaction.CacheDirKey,
		BuildrootToken: c.Redaction.BuildrootToken,
		CacheDirToken:  c.Redaction.CacheDirToken,
	}
}
