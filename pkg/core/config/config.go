// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML files
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "IPPC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Tester  TesterConfig  `toml:"tester" yaml:"tester"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// OutputConfig controls the generated XML document
type OutputConfig struct {
	Indent   string `toml:"indent" yaml:"indent"`
	Language string `toml:"language" yaml:"language"`
}

// TesterConfig holds test harness settings
type TesterConfig struct {
	Directory     string `toml:"directory" yaml:"directory"`
	Recursive     bool   `toml:"recursive" yaml:"recursive"`
	HistoryDB     string `toml:"history_db" yaml:"history_db"`
	SourceExt     string `toml:"source_ext" yaml:"source_ext"`
	InputExt      string `toml:"input_ext" yaml:"input_ext"`
	OutputExt     string `toml:"output_ext" yaml:"output_ext"`
	ReturnCodeExt string `toml:"return_code_ext" yaml:"return_code_ext"`
}

// ServerConfig holds the gRPC translation service settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	Port             int      `toml:"port" yaml:"port"`
	MaxMessageSize   int      `toml:"max_message_size" yaml:"max_message_size"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	KeepaliveTime    Duration `toml:"keepalive_time" yaml:"keepalive_time"`
	KeepaliveTimeout Duration `toml:"keepalive_timeout" yaml:"keepalive_timeout"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	CacheSize        int      `toml:"cache_size" yaml:"cache_size"` // negative disables the translation cache
	CacheTTL         Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ippcerr.Wrap(err, "read config").
			WithCode(ippcerr.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, ippcerr.Wrap(err, "parse config").
			WithCode(ippcerr.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by IPPC_CONFIG or the first existing
// default location. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/ippc.toml",
		"./ippc.toml",
		"./ippc.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/ippc/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Output
	if c.Output.Indent == "" {
		c.Output.Indent = "  "
	}
	if c.Output.Language == "" {
		c.Output.Language = "IPPcode18"
	}

	// Tester
	if c.Tester.Directory == "" {
		c.Tester.Directory = "."
	}
	if c.Tester.SourceExt == "" {
		c.Tester.SourceExt = ".src"
	}
	if c.Tester.InputExt == "" {
		c.Tester.InputExt = ".in"
	}
	if c.Tester.OutputExt == "" {
		c.Tester.OutputExt = ".out"
	}
	if c.Tester.ReturnCodeExt == "" {
		c.Tester.ReturnCodeExt = ".rc"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9180
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 16 * 1024 * 1024
	}
	if c.Server.KeepaliveTime.Duration == 0 {
		c.Server.KeepaliveTime.Duration = 30 * time.Second
	}
	if c.Server.KeepaliveTimeout.Duration == 0 {
		c.Server.KeepaliveTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 256
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 10 * time.Minute
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Tester.Directory = os.ExpandEnv(c.Tester.Directory)
	c.Tester.HistoryDB = os.ExpandEnv(c.Tester.HistoryDB)
}

// applyEnvOverrides lets IPPC_* variables override single settings
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("IPPC_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("IPPC_LOG_FORMAT"); v != "" {
		c.General.LogFormat = v
	}
	if v := os.Getenv("IPPC_HISTORY_DB"); v != "" {
		c.Tester.HistoryDB = v
	}
	if v := os.Getenv("IPPC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return ippcerr.Newf("invalid configuration value for %s", field).
			WithCode(ippcerr.CodeConfigError).
			WithDetail("value", value)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.MaxMessageSize < 0 {
		return invalid("server.max_message_size", c.Server.MaxMessageSize)
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return invalid("output.indent", c.Output.Indent)
	}
	for field, ext := range map[string]string{
		"tester.source_ext":      c.Tester.SourceExt,
		"tester.input_ext":       c.Tester.InputExt,
		"tester.output_ext":      c.Tester.OutputExt,
		"tester.return_code_ext": c.Tester.ReturnCodeExt,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return invalid(field, ext)
		}
	}
	return nil
}
