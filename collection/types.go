package collection

import (
	"context"
	"strings"
	"time"
)

// DateLayout renders creation dates in the local time zone.
const DateLayout = "Jan 2, 2006"

// NoFilter is the filter selection that shows every record.
const NoFilter = ""

// FailedMessage is surfaced to the user when a load fails for any reason.
const FailedMessage = "Failed to fetch PRs"

// Label is a named tag on a record. Two labels with the same name are
// the same label.
type Label struct {
	Name string
}

// Record represents a minimal view of a pull request for filtering
// and listing.
type Record struct {
	ID        int64
	Number    int
	Title     string
	URL       string
	Author    string
	Status    string // Opaque; typically open, closed or merged.
	CreatedAt time.Time
	Labels    []Label
}

// LabelNames returns the names of the record's own labels in order.
func (r Record) LabelNames() []string {
	names := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		names = append(names, l.Name)
	}
	return names
}

// LabelList returns the record's own label names joined with ", ".
func (r Record) LabelList() string {
	return strings.Join(r.LabelNames(), ", ")
}

// CreatedDate formats CreatedAt as a local calendar date, or "" when
// the timestamp is unknown.
func (r Record) CreatedDate() string {
	if r.CreatedAt.IsZero() {
		return ""
	}
	return r.CreatedAt.Local().Format(DateLayout)
}

// HasLabel reports whether the record carries a label called name.
func (r Record) HasLabel(name string) bool {
	for _, l := range r.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// Source fetches the full collection of records. A non-nil error is a
// transport failure; no partial result is ever returned alongside it.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]Record, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// LoadState is the lifecycle position of a View.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
