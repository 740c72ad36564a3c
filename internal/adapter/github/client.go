package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPerPage is the largest page size accepted by github rest api.
const maxPerPage = 100

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns contributors of github projects using github rest api.
// This struct is an adapter for app.GithubClient.
//go:generate mockgen -destination mock/githubcli.go -package mock github.com/m-zajac/ghcontributors/internal/app GithubClient
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	contributorsResponseMaxSize int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is optional.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		contributorsResponseMaxSize: 1024 * 1024 * 10,
	}

	return &c
}

// Contributors returns contributors of given github project.
//
// Limits in range <1..100> are sent to github as page size, so no more than needed is transferred.
// Other limits fetch github's default page.
func (c *Client) Contributors(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("project's owner login cannot be empty")
	}
	if name == "" {
		return nil, app.InvalidRequestError("project's name cannot be empty")
	}

	u, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/contributors", url.PathEscape(owner), url.PathEscape(name)))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	if limit > 0 && limit <= maxPerPage {
		v := make(url.Values)
		v.Set("per_page", strconv.Itoa(limit))
		u.RawQuery = v.Encode()
	}

	httpReq, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}

	body, code, err := c.makeRequest(ctx, httpReq, c.contributorsResponseMaxSize)
	if err != nil {
		return nil, fmt.Errorf("making http request: %w", err)
	}
	// Github returns 204 for empty repositories.
	if code == http.StatusNoContent {
		return []app.Contributor{}, nil
	}

	var resp contributorsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToContributors(), nil
}

func (c *Client) makeRequest(ctx context.Context, req *http.Request, maxBytes int) ([]byte, int, error) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	metrics.GithubRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.StatusCode, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, app.NotFoundError("repository not found")
	}
	if resp.StatusCode/100 > 3 {
		if c.checkRateLimitExceeded(&resp.Header) {
			return nil, resp.StatusCode, app.TooManyRequestsError("rate limit exceeded")
		}
		return nil, resp.StatusCode, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	// One byte over the limit tells that body was cut.
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading http response body: %w", err)
	}
	if len(b) > maxBytes {
		return nil, resp.StatusCode, errors.New("response body too large")
	}

	return b, resp.StatusCode, nil
}

func (c *Client) checkRateLimitExceeded(h *http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}
