// Package config loads the YAML configuration for saucectl's server and
// scan subcommands: paths, log sinks, listener settings, and the report
// template selection.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the fully merged configuration after resolving every
// included file.
type Config struct {
	LoadedFiles    []string        `yaml:"-"`
	Include        []string        `yaml:"include"`
	Debug          bool            `yaml:"debug"`
	HotReload      bool            `yaml:"hotReload"`
	CatalogRefresh bool            `yaml:"catalogRefresh"`
	Paths          PathsConfig     `yaml:"paths"`
	Loggers        []LoggerConfig  `yaml:"loggers"`
	Listeners      ListenersConfig `yaml:"listeners"`
	Report         ReportConfig    `yaml:"report"`
}

// PathsConfig locates the art tree the catalog scans and the sqlite
// database backing it.
type PathsConfig struct {
	ArtRoot string `yaml:"artRoot"`
	Data    string `yaml:"data"`
	Keys    string `yaml:"keys"`
}

// LoggerConfig configures one slog sink.
type LoggerConfig struct {
	Stdout     bool   `yaml:"stdout,omitempty"`
	File       string `yaml:"file,omitempty"`
	Level      string `yaml:"level"`
	Source     bool   `yaml:"source"`
	HideTime   bool   `yaml:"hideTime,omitempty"`
	TimeFormat string `yaml:"timeFormat,omitempty"`
}

// ListenersConfig configures the two gallery server protocols.
type ListenersConfig struct {
	Telnet TelnetConfig `yaml:"telnet"`
	SSH    SSHConfig    `yaml:"ssh"`
}

// TelnetConfig configures the read-only telnet kiosk.
type TelnetConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// SSHConfig configures the SSH gallery, including curator auth.
type SSHConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	KeyFile string `yaml:"keyFile"`
}

// ReportConfig selects the template rendered by `saucectl report`.
type ReportConfig struct {
	Template string `yaml:"template"`
}

// Load reads filename and every file it (transitively) includes,
// merging them into a single Config. Includes are resolved relative to
// the file that names them, and environment variables in every file's
// content are expanded before parsing.
func Load(filename string) (*Config, error) {
	cfg := &Config{LoadedFiles: []string{}}
	processed := make(map[string]bool)
	if err := loadRecursive(filename, cfg, processed); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadRecursive(filename string, cfg *Config, processed map[string]bool) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if processed[absPath] {
		return nil
	}
	processed[absPath] = true
	cfg.LoadedFiles = append(cfg.LoadedFiles, absPath)

	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	var tempCfg struct {
		Include []string `yaml:"include"`
	}
	if err := yaml.Unmarshal(expanded, &tempCfg); err != nil {
		return err
	}

	baseDir := filepath.Dir(absPath)
	for _, includePath := range tempCfg.Include {
		fullPath := includePath
		if !filepath.IsAbs(includePath) {
			fullPath = filepath.Join(baseDir, includePath)
		}
		if err := loadRecursive(fullPath, cfg, processed); err != nil {
			return fmt.Errorf("failed to load included config %s: %w", fullPath, err)
		}
	}

	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return err
	}
	return nil
}
