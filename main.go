// Package main implements prfilter, a tool that fetches the pull
// requests of a GitHub repository and filters them by label.
//
// Features:
//   - Fetches PRs once from the GitHub REST API, anonymously or with
//     the gh(1) login when there is one
//   - Derives the set of labels in use across the fetched PRs
//   - Narrows the list to the PRs carrying one selected label
//   - Presents the result as a table, detailed blocks, an interactive
//     terminal view, or an HTML page
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cli/go-gh/pkg/term"

	"github.com/frobware/prfilter/collection"
	"github.com/frobware/prfilter/github"
)

const programName = "prfilter"

func main() {
	log.SetFlags(0)
	log.SetPrefix(programName + ": ")

	// Parse command-line arguments
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name(programName),
		kong.Description(RenderDescription(programName)),
		kong.UsageOnError(),
		kong.Vars{"version": Get().String()},
	)

	fileConfig, err := LoadFileConfig(cli.Config)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config, err := ResolveConfig(&cli, fileConfig)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	t := term.FromEnv()
	config.IsTTY = t.IsTerminalOutput()
	if width, _, err := t.Size(); err == nil {
		config.Width = width
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create source factory
	sourceFactory := func(repo string) (collection.Source, error) {
		return github.NewClient(repo, github.Options{
			Host:    config.Host,
			Timeout: config.Timeout,
			Debug:   config.DebugMode,
		})
	}

	app := &App{
		Ctx:     ctx,
		Config:  config,
		Sources: sourceFactory,
	}

	if err := kctx.Run(app); err != nil {
		stop()
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		log.Fatalf("%v", err)
	}
}
