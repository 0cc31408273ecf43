package main

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/cli/go-gh/pkg/tableprinter"
	"github.com/cli/go-gh/pkg/text"

	"github.com/frobware/prfilter/collection"
)

//go:embed output/templates/detailed.tmpl
var detailedTemplate string

// NoRecordsMessage is shown instead of a list when nothing matches.
const NoRecordsMessage = "No PRs found."

// defaultWidth is used when the terminal width is unknown.
const defaultWidth = 120

// TemplateData structure for detailed PR output.
type TemplateData struct {
	collection.Snapshot
	Name string // Bare repository name.
}

// Template helper functions.
var templateFuncs = template.FuncMap{
	"filterName": filterName,
}

// Formatter defines the interface for different output formats.
type Formatter interface {
	Format(w io.Writer, result Result, config *Config) error
}

// TabularFormatter outputs PRs in a table format.
type TabularFormatter struct{}

// DetailedFormatter outputs one block per PR.
type DetailedFormatter struct{}

// QuietFormatter outputs only PR numbers.
type QuietFormatter struct{}

// Format outputs the visible PRs in tabular format.
func (f *TabularFormatter) Format(w io.Writer, result Result, config *Config) error {
	prResult, ok := result.(PRResult)
	if !ok {
		return fmt.Errorf("TabularFormatter expects PRResult, got %T", result)
	}

	if prResult.Snapshot.Empty() {
		fmt.Fprintln(w, NoRecordsMessage)
		return nil
	}

	width := config.Width
	if width <= 0 {
		width = defaultWidth
	}

	tp := tableprinter.New(w, config.IsTTY, width)
	if config.IsTTY {
		for _, h := range []string{"PR", "TITLE", "AUTHOR", "STATE", "OPENED", "LABELS", "URL"} {
			tp.AddField(h)
		}
		tp.EndRow()
	}

	for _, pr := range prResult.Snapshot.Visible {
		tp.AddField("#" + strconv.Itoa(pr.Number))
		tp.AddField(pr.Title, tableprinter.WithTruncate(truncate))
		tp.AddField(pr.Author)
		tp.AddField(pr.Status)
		tp.AddField(pr.CreatedDate())
		tp.AddField(pr.LabelList(), tableprinter.WithTruncate(truncate))
		tp.AddField(pr.URL)
		tp.EndRow()
	}

	return tp.Render()
}

// Format outputs the visible PRs in detailed format.
func (f *DetailedFormatter) Format(w io.Writer, result Result, config *Config) error {
	prResult, ok := result.(PRResult)
	if !ok {
		return fmt.Errorf("DetailedFormatter expects PRResult, got %T", result)
	}

	tmpl, err := template.New("detailed").Funcs(templateFuncs).Parse(detailedTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	data := TemplateData{
		Snapshot: prResult.Snapshot,
		Name:     repoName(prResult.Repository),
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	if prResult.Snapshot.Empty() {
		fmt.Fprintf(w, "\n%s\n", NoRecordsMessage)
	}
	return nil
}

// Format outputs only PR numbers.
func (f *QuietFormatter) Format(w io.Writer, result Result, config *Config) error {
	prResult, ok := result.(PRResult)
	if !ok {
		return fmt.Errorf("QuietFormatter expects PRResult, got %T", result)
	}

	for _, pr := range prResult.Snapshot.Visible {
		fmt.Fprintln(w, pr.Number)
	}
	return nil
}

// Helper functions.

func truncate(width int, s string) string {
	return text.Truncate(width, s)
}

func filterName(selection string) string {
	if selection == collection.NoFilter {
		return "All"
	}
	return selection
}

// repoName returns the last path element of an OWNER/REPO reference.
func repoName(repo string) string {
	if i := strings.LastIndex(repo, "/"); i >= 0 {
		return repo[i+1:]
	}
	return repo
}
