// Package limiter throttles outgoing http requests.
package limiter

import (
	"fmt"
	"net/http"

	"github.com/m-zajac/ghcontributors/internal/app"
	"golang.org/x/time/rate"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// limitedHTTPDoer wraps HTTPDoer and allows Dos with maximum rate limit.
type limitedHTTPDoer struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewHTTPDoer creates LimitedHTTPDoer instance.
// maxRate - maximum number of Dos per second.
func NewHTTPDoer(doer HTTPDoer, maxRate float64) HTTPDoer {
	return &limitedHTTPDoer{
		doer:    doer,
		limiter: rate.NewLimiter(rate.Limit(maxRate), 1),
	}
}

// Do executes http request. If limit is exceeded, blocks until call rate is within limit.
func (d *limitedHTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, app.TooManyRequestsError(fmt.Sprintf("waiting for httpDoer limiter: %v", err))
	}

	return d.doer.Do(r)
}

// limitedRoundTripper is a transport counterpart of limitedHTTPDoer, used by clients accepting only *http.Client.
type limitedRoundTripper struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

// NewRoundTripper wraps transport with rate limit of maxRate requests per second.
// Nil next means http.DefaultTransport.
func NewRoundTripper(next http.RoundTripper, maxRate float64) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &limitedRoundTripper{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(maxRate), 1),
	}
}

// RoundTrip implements http.RoundTripper. Blocks until call rate is within limit.
func (t *limitedRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, app.TooManyRequestsError(fmt.Sprintf("waiting for transport limiter: %v", err))
	}

	return t.next.RoundTrip(r)
}
