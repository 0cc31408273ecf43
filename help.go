package main

import (
	"fmt"
	"strings"
)

// RenderDescription renders the text shown under the usage line of
// --help.
func RenderDescription(programName string) string {
	var result strings.Builder

	result.WriteString(`List GitHub pull requests and filter them by label.

The pull requests of one repository are fetched once, the labels in
use are collected, and the list is narrowed to the pull requests
carrying the selected label. Without --repo the repository is taken
from the config file, falling back to ` + "`divvydose/ui-coding-challenge`" + `.

Configuration is read from ~/.config/prfilter/config.yaml (keys: repo,
host, timeout, listen). Flags override the file; GH_HOST overrides
the host. A gh(1) login is used when present, otherwise requests are
anonymous.
`)

	result.WriteString(fmt.Sprintf(`
Examples:
  # List all pull requests.
  %[1]s -r owner/repo

  # Only pull requests labelled "bug", one block each.
  %[1]s -r owner/repo list --label bug --detailed

  # Show the labels available for filtering.
  %[1]s -r owner/repo labels

  # Browse interactively; tab cycles the label filter.
  %[1]s -r owner/repo browse

  # Serve the filterable list as a web page.
  %[1]s -r owner/repo serve --listen :8080`, programName))

	return result.String()
}
