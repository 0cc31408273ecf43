package main

import (
	"context"
	"fmt"

	"github.com/frobware/prfilter/collection"
)

// Result represents the output of running the application.
type Result interface{}

// PRResult contains the filtered view to be displayed.
type PRResult struct {
	Repository string
	Snapshot   collection.Snapshot
}

// LabelsResult contains the label universe of a repository.
type LabelsResult struct {
	Repository string
	Labels     []string
}

// LoadError is returned when the view ended up in the Failed state.
type LoadError struct {
	Message string // What the user is shown.
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Run loads the repository's pull requests, applies the configured
// label filter and returns the resulting view.
func Run(ctx context.Context, config *Config, sourceFactory SourceFactory) (Result, error) {
	view, err := LoadView(ctx, config, sourceFactory)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	view.SetFilter(config.Label)
	return PRResult{Repository: config.Repository, Snapshot: view.Snapshot()}, nil
}

// RunLabels loads the repository's pull requests and returns the labels
// in use, in first-seen order.
func RunLabels(ctx context.Context, config *Config, sourceFactory SourceFactory) (Result, error) {
	view, err := LoadView(ctx, config, sourceFactory)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	return LabelsResult{Repository: config.Repository, Labels: view.Snapshot().Labels}, nil
}

// LoadView creates a view over the configured repository and loads it
// once. A failed load closes the view and returns a *LoadError.
func LoadView(ctx context.Context, config *Config, sourceFactory SourceFactory) (*collection.View, error) {
	source, err := sourceFactory(config.Repository)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", config.Repository, err)
	}

	view := collection.New(source)

	if config.Progress != nil {
		cancel := view.Subscribe(func(s collection.Snapshot) {
			if s.State == collection.Loading {
				fmt.Fprintln(config.Progress, "Loading...")
			}
		})
		defer cancel()
	}

	if err := view.Load(ctx); err != nil {
		msg := view.Snapshot().Message
		if msg == "" {
			msg = collection.FailedMessage
		}
		view.Close()
		return nil, &LoadError{Message: msg, Err: err}
	}
	return view, nil
}
