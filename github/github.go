package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/cli/go-gh/pkg/api"

	"github.com/frobware/prfilter/collection"
)

// ErrMalformedResponse is returned when a successful response body is
// not a JSON array of pull requests.
var ErrMalformedResponse = errors.New("malformed pull request response")

// restPullRequest matches the fields of the REST pulls response that
// we use. Everything is optional: absent fields decode to zero values.
type restPullRequest struct {
	ID        int64       `json:"id"`
	Number    int         `json:"number"`
	Title     string      `json:"title"`
	HTMLURL   string      `json:"html_url"`
	State     string      `json:"state"`
	Draft     bool        `json:"draft"`
	MergedAt  *string     `json:"merged_at"`
	CreatedAt string      `json:"created_at"`
	User      *restUser   `json:"user"`
	Labels    []restLabel `json:"labels"`
}

type restUser struct {
	Login string `json:"login"`
}

type restLabel struct {
	Name string `json:"name"`
}

// Fetch issues a single GET for the repository's pull requests. Any
// network error, non-2xx status or undecodable body is returned as an
// error; there is no retry.
func (c *Client) Fetch(ctx context.Context) ([]collection.Record, error) {
	endpoint := c.PullsURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests from %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpError(resp)
	}

	var pulls []restPullRequest
	if err := json.NewDecoder(resp.Body).Decode(&pulls); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if c.debug {
		for i, p := range pulls {
			data, _ := json.MarshalIndent(p, "", "  ")
			log.Printf("DEBUG: PR %d of %d:\n%s", i+1, len(pulls), data)
		}
	}

	return toRecords(pulls), nil
}

func toRecords(pulls []restPullRequest) []collection.Record {
	records := make([]collection.Record, 0, len(pulls))
	for _, p := range pulls {
		labels := make([]collection.Label, 0, len(p.Labels))
		for _, l := range p.Labels {
			labels = append(labels, collection.Label{Name: l.Name})
		}

		var author string
		if p.User != nil {
			author = p.User.Login
		}

		records = append(records, collection.Record{
			ID:        p.ID,
			Number:    p.Number,
			Title:     p.Title,
			URL:       p.HTMLURL,
			Author:    author,
			Status:    status(p),
			CreatedAt: parseTime(p.CreatedAt),
			Labels:    labels,
		})
	}
	return records
}

// status reports merged pulls as "merged"; the REST API only says
// "closed" for them.
func status(p restPullRequest) string {
	if p.MergedAt != nil && *p.MergedAt != "" {
		return "merged"
	}
	return p.State
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// httpError converts a non-2xx response into an *api.HTTPError,
// keeping the API's own message when the body carries one.
func httpError(resp *http.Response) error {
	httpErr := &api.HTTPError{
		StatusCode: resp.StatusCode,
		RequestURL: &url.URL{},
		Headers:    resp.Header,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		httpErr.RequestURL = resp.Request.URL
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			httpErr.Message = payload.Message
		}
	}

	return httpErr
}
