package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/metrics"
)

// LibraryClient returns contributors of github projects using go-github library.
// It's an alternative to Client, with the same semantics.
type LibraryClient struct {
	client *gogithub.Client
}

var _ app.GithubClient = &LibraryClient{}

// NewLibraryClient creates new LibraryClient.
// address replaces default github api address when not empty, authToken is optional.
func NewLibraryClient(httpClient *http.Client, address string, authToken string) (*LibraryClient, error) {
	client := gogithub.NewClient(httpClient)
	if authToken != "" {
		client = client.WithAuthToken(authToken)
	}
	if address != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(address, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github api address: %w", err)
		}
		client.BaseURL = baseURL
	}

	return &LibraryClient{
		client: client,
	}, nil
}

// Contributors returns contributors of given github project.
func (c *LibraryClient) Contributors(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("project's owner login cannot be empty")
	}
	if name == "" {
		return nil, app.InvalidRequestError("project's name cannot be empty")
	}

	opts := &gogithub.ListContributorsOptions{}
	if limit > 0 && limit <= maxPerPage {
		opts.PerPage = limit
	}

	contributors, resp, err := c.client.Repositories.ListContributors(ctx, owner, name, opts)
	if resp != nil {
		metrics.GithubRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	}
	if err != nil {
		var rateLimitErr *gogithub.RateLimitError
		if errors.As(err, &rateLimitErr) {
			return nil, app.TooManyRequestsError("rate limit exceeded")
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, app.NotFoundError("repository not found")
		}
		return nil, fmt.Errorf("listing contributors: %w", err)
	}

	cs := make([]app.Contributor, 0, len(contributors))
	for _, contributor := range contributors {
		cs = append(cs, app.Contributor{
			Login:         contributor.GetLogin(),
			HTMLURL:       contributor.GetHTMLURL(),
			Contributions: contributor.GetContributions(),
		})
	}

	return cs, nil
}
