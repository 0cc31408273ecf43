package main

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// repoURLPathRegex matches GitHub repository and pull request URL paths
// like "/owner/repo", "/owner/repo.git" or "/owner/repo/pull/123/".
var repoURLPathRegex = regexp.MustCompile(`^/([^/]+)/([^/]+?)(?:\.git)?(?:/pull/\d+)?/?$`)

// repoRefRegex matches "owner/repo" and "host/owner/repo".
var repoRefRegex = regexp.MustCompile(`^([^/\s]+/)?[^/\s]+/[^/\s]+$`)

// ParseRepoArgument normalises a repository argument. It accepts
// "owner/repo", "host/owner/repo", a repository URL, or the URL of any
// pull request in the repository. URLs on hosts other than github.com
// keep their host as "host/owner/repo".
func ParseRepoArgument(arg string) (string, error) {
	arg = strings.TrimSpace(arg)

	if !strings.Contains(arg, "://") {
		if !repoRefRegex.MatchString(arg) {
			return "", fmt.Errorf("invalid repository %q, expected OWNER/REPO", arg)
		}
		return arg, nil
	}

	parsedURL, err := url.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("invalid repository URL %q", arg)
	}

	matches := repoURLPathRegex.FindStringSubmatch(parsedURL.Path)
	if len(matches) != 3 {
		return "", fmt.Errorf("invalid GitHub repository URL %q", arg)
	}

	repo := matches[1] + "/" + matches[2]
	if host := strings.ToLower(parsedURL.Hostname()); host != "" && host != "github.com" && host != "www.github.com" {
		repo = host + "/" + repo
	}
	return repo, nil
}
