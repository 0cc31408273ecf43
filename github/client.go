// Package github fetches pull requests for one repository from the
// GitHub REST API and converts them to collection records.
package github

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cli/go-gh"
	"github.com/cli/go-gh/pkg/api"
	"github.com/cli/go-gh/pkg/auth"
	"github.com/cli/go-gh/pkg/repository"
)

const (
	// DefaultHost is the host queried when none is configured.
	DefaultHost = "github.com"

	// DefaultRepo is the repository listed when none is configured.
	DefaultRepo = "divvydose/ui-coding-challenge"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 30 * time.Second
)

// Options tune how a Client talks to the API.
type Options struct {
	Host       string        // Defaults to DefaultHost.
	Timeout    time.Duration // Defaults to DefaultTimeout.
	BaseURL    string        // Overrides the API root derived from Host.
	HTTPClient *http.Client  // Overrides the client derived from Host.
	Debug      bool          // Log every decoded pull request.
}

// Client lists the pull requests of a single repository.
type Client struct {
	repo    repository.Repository
	baseURL string
	http    *http.Client
	debug   bool
}

// NewClient returns a client for repo, given as "owner/name",
// "host/owner/name" or a repository URL.
func NewClient(repo string, opts Options) (*Client, error) {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}

	r, err := repository.ParseWithHost(repo, host)
	if err != nil {
		return nil, fmt.Errorf("invalid repository %q: %w", repo, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = newHTTPClient(r.Host(), timeout)
		if err != nil {
			return nil, err
		}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = restURL(r.Host())
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		repo:    r,
		baseURL: baseURL,
		http:    httpClient,
		debug:   opts.Debug,
	}, nil
}

// Repo returns the repository as "owner/name".
func (c *Client) Repo() string {
	return c.repo.Owner() + "/" + c.repo.Name()
}

// Name returns the bare repository name.
func (c *Client) Name() string {
	return c.repo.Name()
}

// PullsURL is the endpoint a fetch requests.
func (c *Client) PullsURL() string {
	return fmt.Sprintf("%srepos/%s/%s/pulls", c.baseURL, c.repo.Owner(), c.repo.Name())
}

// newHTTPClient uses the gh(1) credentials for host when there are
// any. The upstream is public, so without a token requests go out
// anonymously.
func newHTTPClient(host string, timeout time.Duration) (*http.Client, error) {
	token, _ := auth.TokenForHost(host)
	if token == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	client, err := gh.HTTPClient(&api.ClientOptions{
		Host:      host,
		AuthToken: token,
		Timeout:   timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

func restURL(host string) string {
	if host == DefaultHost {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", host)
}
