package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frobware/prfilter/github"
)

const defaultListenAddr = "127.0.0.1:8080"

// Config holds all configuration and arguments for the application.
type Config struct {
	Repository string
	Host       string
	Timeout    time.Duration
	Listen     string
	// Runtime flags
	Label     string
	DebugMode bool
	Detailed  bool
	Quiet     bool
	Progress  io.Writer // Receives "Loading..." while fetching; nil disables it.
	// Terminal
	IsTTY bool
	Width int
}

// FileConfig is the on-disk configuration, read from
// ~/.config/prfilter/config.yaml unless --config names another file.
type FileConfig struct {
	Repo    string `yaml:"repo"`
	Host    string `yaml:"host"`
	Timeout string `yaml:"timeout"`
	Listen  string `yaml:"listen"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prfilter", "config.yaml")
}

// LoadFileConfig reads path, or the default location when path is
// empty. A missing default file is not an error; a missing explicit
// one is.
func LoadFileConfig(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	fc := &FileConfig{}
	if path == "" {
		return fc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fc, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return fc, nil
}

// ResolveConfig merges command-line values over the file config and
// fills in defaults. Environment variables arrive through the flags.
func ResolveConfig(cli *CLI, fc *FileConfig) (*Config, error) {
	cfg := &Config{
		Repository: cli.Repo,
		Host:       cli.Host,
		Timeout:    cli.Timeout,
		DebugMode:  cli.Debug,
	}

	if cfg.Repository == "" {
		cfg.Repository = fc.Repo
	}
	if cfg.Host == "" {
		cfg.Host = fc.Host
	}
	if cfg.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q in config file: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	cfg.Listen = fc.Listen

	if cfg.Repository == "" {
		cfg.Repository = github.DefaultRepo
	}
	if cfg.Host == "" {
		cfg.Host = github.DefaultHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = github.DefaultTimeout
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListenAddr
	}

	repo, err := ParseRepoArgument(cfg.Repository)
	if err != nil {
		return nil, err
	}
	cfg.Repository = repo

	// A host-qualified repository names its own host.
	if parts := strings.Split(repo, "/"); len(parts) == 3 {
		cfg.Host = parts[0]
	}

	return cfg, nil
}
