package main_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/frobware/prfilter"
	"github.com/frobware/prfilter/collection"
)

// mockSource implements collection.Source for testing.
type mockSource struct {
	records []collection.Record
	err     error
	calls   int
}

func (m *mockSource) Fetch(ctx context.Context) ([]collection.Record, error) {
	m.calls++
	return m.records, m.err
}

// mockSourceFactory hands out the same source for every repository.
func mockSourceFactory(src collection.Source) SourceFactory {
	return func(repo string) (collection.Source, error) {
		return src, nil
	}
}

func records() []collection.Record {
	return []collection.Record{
		{Number: 1, Title: "PR1", Labels: []collection.Label{{Name: "bug"}, {Name: "ui"}}},
		{Number: 2, Title: "PR2", Labels: []collection.Label{{Name: "docs"}}},
		{Number: 3, Title: "PR3", Labels: []collection.Label{{Name: "bug"}}},
	}
}

func TestRun_NoFilter(t *testing.T) {
	src := &mockSource{records: records()}
	config := &Config{Repository: "owner/repo"}

	result, err := Run(context.Background(), config, mockSourceFactory(src))
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	prResult, ok := result.(PRResult)
	if !ok {
		t.Fatalf("Expected PRResult, got %T", result)
	}
	if prResult.Repository != "owner/repo" {
		t.Errorf("Expected repository owner/repo, got %q", prResult.Repository)
	}

	snap := prResult.Snapshot
	if snap.State != collection.Ready {
		t.Errorf("Expected state ready, got %v", snap.State)
	}
	if len(snap.Visible) != 3 {
		t.Errorf("Expected 3 visible PRs, got %d", len(snap.Visible))
	}
	if got := strings.Join(snap.Labels, ","); got != "bug,ui,docs" {
		t.Errorf("Expected labels bug,ui,docs, got %s", got)
	}
	if src.calls != 1 {
		t.Errorf("Expected exactly one fetch, got %d", src.calls)
	}
}

func TestRun_WithLabel(t *testing.T) {
	tests := []struct {
		label string
		want  []int
	}{
		{label: "bug", want: []int{1, 3}},
		{label: "docs", want: []int{2}},
		{label: "missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			config := &Config{Repository: "owner/repo", Label: tt.label}
			result, err := Run(context.Background(), config, mockSourceFactory(&mockSource{records: records()}))
			if err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}

			snap := result.(PRResult).Snapshot
			if snap.Filter != tt.label {
				t.Errorf("Expected filter %q, got %q", tt.label, snap.Filter)
			}
			if len(snap.All) != 3 {
				t.Errorf("Filtering must not shrink the full set, got %d", len(snap.All))
			}

			var got []int
			for _, r := range snap.Visible {
				got = append(got, r.Number)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Expected PRs %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRun_FetchError(t *testing.T) {
	cause := errors.New("connection refused")
	config := &Config{Repository: "owner/repo"}

	result, err := Run(context.Background(), config, mockSourceFactory(&mockSource{err: cause}))
	if err == nil {
		t.Fatal("Expected error from failed fetch")
	}
	if result != nil {
		t.Errorf("Expected nil result, got %T", result)
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *LoadError, got %T", err)
	}
	if loadErr.Message != collection.FailedMessage {
		t.Errorf("Expected message %q, got %q", collection.FailedMessage, loadErr.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected the fetch error to be wrapped, got %v", err)
	}
}

func TestRun_ClientFactoryError(t *testing.T) {
	factory := func(repo string) (collection.Source, error) {
		return nil, fmt.Errorf("mock source factory error")
	}

	_, err := Run(context.Background(), &Config{Repository: "owner/repo"}, factory)
	if err == nil {
		t.Fatal("Expected error from client factory")
	}
	if !strings.Contains(err.Error(), "failed to create client for owner/repo") {
		t.Errorf("Unexpected error message: %v", err)
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		t.Error("Factory errors are not load failures")
	}
}

func TestRun_EmptyRepository(t *testing.T) {
	result, err := Run(context.Background(), &Config{Repository: "owner/repo"}, mockSourceFactory(&mockSource{}))
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	snap := result.(PRResult).Snapshot
	if !snap.Empty() {
		t.Error("Expected an empty ready snapshot")
	}
	if len(snap.Labels) != 0 {
		t.Errorf("Expected no labels, got %v", snap.Labels)
	}
}

func TestRun_Progress(t *testing.T) {
	var progress bytes.Buffer
	config := &Config{Repository: "owner/repo", Progress: &progress}

	if _, err := Run(context.Background(), config, mockSourceFactory(&mockSource{records: records()})); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if progress.String() != "Loading...\n" {
		t.Errorf("Expected a single Loading... line, got %q", progress.String())
	}
}

func TestRunLabels(t *testing.T) {
	result, err := RunLabels(context.Background(), &Config{Repository: "owner/repo"}, mockSourceFactory(&mockSource{records: records()}))
	if err != nil {
		t.Fatalf("RunLabels() returned error: %v", err)
	}

	labelsResult, ok := result.(LabelsResult)
	if !ok {
		t.Fatalf("Expected LabelsResult, got %T", result)
	}
	if got := strings.Join(labelsResult.Labels, ","); got != "bug,ui,docs" {
		t.Errorf("Expected labels bug,ui,docs, got %s", got)
	}
}

func TestLoadView_KeepsViewOpen(t *testing.T) {
	view, err := LoadView(context.Background(), &Config{Repository: "owner/repo"}, mockSourceFactory(&mockSource{records: records()}))
	if err != nil {
		t.Fatalf("LoadView() returned error: %v", err)
	}
	defer view.Close()

	view.SetFilter("ui")
	if snap := view.Snapshot(); len(snap.Visible) != 1 || snap.Visible[0].Number != 1 {
		t.Errorf("Expected only PR 1 for label ui, got %+v", snap.Visible)
	}
}
