package tui

import (
	"context"
	"io"

	"github.com/atotto/clipboard"
	"github.com/cli/go-gh/pkg/browser"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frobware/prfilter/collection"
)

// DefaultOptions opens URLs with the user's configured browser and
// copies through the system clipboard.
func DefaultOptions() Options {
	b := browser.New("", io.Discard, io.Discard)
	return Options{
		Browser: &b,
		Copy:    clipboard.WriteAll,
	}
}

// Run mounts an interactive view over src until the user quits or ctx
// is cancelled. The view is closed on return, so a load still in
// flight is discarded.
func Run(ctx context.Context, src collection.Source, repo string, opts Options) error {
	view := collection.New(src)
	defer view.Close()

	p := tea.NewProgram(New(ctx, view, repo, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
