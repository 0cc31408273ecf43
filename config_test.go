package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frobware/prfilter/github"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
repo: acme/widgets
host: ghe.example.com
timeout: 5s
listen: 127.0.0.1:9999
`)

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.Equal(t, &FileConfig{
		Repo:    "acme/widgets",
		Host:    "ghe.example.com",
		Timeout: "5s",
		Listen:  "127.0.0.1:9999",
	}, fc)
}

func TestLoadFileConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFileConfig_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fc, err := LoadFileConfig("")
	require.NoError(t, err)
	require.Equal(t, &FileConfig{}, fc)
}

func TestLoadFileConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "repo: [unterminated\n")

	_, err := LoadFileConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name string
		cli  CLI
		file FileConfig
		want Config
	}{
		{
			name: "defaults",
			want: Config{
				Repository: github.DefaultRepo,
				Host:       github.DefaultHost,
				Timeout:    github.DefaultTimeout,
				Listen:     defaultListenAddr,
			},
		},
		{
			name: "file overrides defaults",
			file: FileConfig{Repo: "acme/widgets", Host: "ghe.example.com", Timeout: "5s", Listen: ":9000"},
			want: Config{
				Repository: "acme/widgets",
				Host:       "ghe.example.com",
				Timeout:    5 * time.Second,
				Listen:     ":9000",
			},
		},
		{
			name: "flags override file",
			cli:  CLI{Repo: "https://github.com/other/thing/pull/7", Host: "github.com", Timeout: time.Minute, Debug: true},
			file: FileConfig{Repo: "acme/widgets", Host: "ghe.example.com", Timeout: "5s"},
			want: Config{
				Repository: "other/thing",
				Host:       "github.com",
				Timeout:    time.Minute,
				Listen:     defaultListenAddr,
				DebugMode:  true,
			},
		},
		{
			name: "enterprise repository URL selects its host",
			cli:  CLI{Repo: "https://ghe.example.com/team/tool"},
			want: Config{
				Repository: "ghe.example.com/team/tool",
				Host:       "ghe.example.com",
				Timeout:    github.DefaultTimeout,
				Listen:     defaultListenAddr,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConfig(&tt.cli, &tt.file)
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		cli  CLI
		file FileConfig
	}{
		{name: "invalid timeout", file: FileConfig{Timeout: "soon"}},
		{name: "invalid repository", cli: CLI{Repo: "not-a-repo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConfig(&tt.cli, &tt.file)
			require.Error(t, err)
		})
	}
}
