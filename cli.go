package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/frobware/prfilter/collection"
	"github.com/frobware/prfilter/tui"
	"github.com/frobware/prfilter/web"
)

// errReported means the failure has already been shown to the user;
// main only needs to exit non-zero.
var errReported = errors.New("error already reported")

// CLI is the kong command-line grammar.
type CLI struct {
	Repo    string           `short:"r" placeholder:"OWNER/REPO" help:"GitHub repository (OWNER/REPO, repository URL or PR URL)."`
	Host    string           `env:"GH_HOST" help:"GitHub host."`
	Config  string           `type:"path" placeholder:"FILE" help:"Config file (default ~/.config/prfilter/config.yaml)."`
	Timeout time.Duration    `help:"Timeout for fetching pull requests (default 30s)."`
	Debug   bool             `help:"Enable debug logging."`
	Version kong.VersionFlag `short:"v" help:"Show version information."`

	List   ListCmd   `cmd:"" default:"withargs" help:"List pull requests, optionally filtered by label."`
	Labels LabelsCmd `cmd:"" help:"List the labels in use, in first-seen order."`
	Browse BrowseCmd `cmd:"" help:"Browse pull requests interactively."`
	Serve  ServeCmd  `cmd:"" help:"Serve the filterable list over HTTP."`
}

// App is bound into every command's Run method.
type App struct {
	Ctx     context.Context
	Config  *Config
	Sources SourceFactory
}

// ListCmd prints the pull requests carrying a label, or all of them.
type ListCmd struct {
	Label    string `short:"l" placeholder:"NAME" help:"Only show PRs with this label."`
	Detailed bool   `short:"d" xor:"format" help:"Show one block per PR."`
	Quiet    bool   `short:"q" xor:"format" help:"Print PR numbers only."`
}

func (c *ListCmd) Run(app *App) error {
	cfg := *app.Config
	cfg.Label = c.Label
	cfg.Detailed = c.Detailed
	cfg.Quiet = c.Quiet
	if cfg.IsTTY {
		cfg.Progress = os.Stderr
	}

	result, err := Run(app.Ctx, &cfg, app.Sources)
	if err != nil {
		return reportLoadError(err, &cfg)
	}
	return FormatResult(os.Stdout, result, &cfg)
}

// LabelsCmd prints the label universe.
type LabelsCmd struct{}

func (c *LabelsCmd) Run(app *App) error {
	cfg := *app.Config
	if cfg.IsTTY {
		cfg.Progress = os.Stderr
	}

	result, err := RunLabels(app.Ctx, &cfg, app.Sources)
	if err != nil {
		return reportLoadError(err, &cfg)
	}
	return FormatResult(os.Stdout, result, &cfg)
}

// BrowseCmd runs the interactive view.
type BrowseCmd struct{}

func (c *BrowseCmd) Run(app *App) error {
	src, err := app.Sources(app.Config.Repository)
	if err != nil {
		return fmt.Errorf("failed to create client for %s: %w", app.Config.Repository, err)
	}
	return tui.Run(app.Ctx, src, repoName(app.Config.Repository), tui.DefaultOptions())
}

// ServeCmd serves the HTML view until interrupted.
type ServeCmd struct {
	Listen string `placeholder:"ADDR" help:"Listen address (default 127.0.0.1:8080)."`
}

func (c *ServeCmd) Run(app *App) error {
	addr := c.Listen
	if addr == "" {
		addr = app.Config.Listen
	}

	src, err := app.Sources(app.Config.Repository)
	if err != nil {
		return fmt.Errorf("failed to create client for %s: %w", app.Config.Repository, err)
	}
	return web.Serve(app.Ctx, addr, collection.New(src), repoName(app.Config.Repository))
}

// reportLoadError shows the Failed state. The underlying cause is only
// logged in debug mode.
func reportLoadError(err error, cfg *Config) error {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return err
	}

	if cfg.DebugMode {
		log.Printf("DEBUG: %v", loadErr.Err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", loadErr.Message)
	return errReported
}
