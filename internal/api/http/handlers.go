package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/character"
	"github.com/m-zajac/ghcontributors/internal/registry"
	"github.com/m-zajac/ghcontributors/internal/render"
	"github.com/sirupsen/logrus"
)

type contributor struct {
	Login         string `json:"login"`
	HTMLURL       string `json:"htmlUrl"`
	Contributions int    `json:"contributions"`
}

type contributorsResponse struct {
	Organization string        `json:"organization"`
	Repository   string        `json:"repository"`
	Contributors []contributor `json:"contributors"`
}

func newContributorsResponse(owner string, name string, contributors []app.Contributor) contributorsResponse {
	out := make([]contributor, 0, len(contributors))
	for _, c := range contributors {
		out = append(out, contributor{
			Login:         c.Login,
			HTMLURL:       c.HTMLURL,
			Contributions: c.Contributions,
		})
	}

	return contributorsResponse{
		Organization: owner,
		Repository:   name,
		Contributors: out,
	}
}

// NewContributorsHandler creates handlerfunc returning contributors of repository as json.
func NewContributorsHandler(
	getRepository func(*http.Request) app.Repository,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo := getRepository(r)
		limit := getIntParam(r, "limit", 0)

		contributors, err := service.Contributors(r.Context(), repo.Owner, repo.Name, limit)
		if err != nil {
			status := errorStatus(err)
			if status >= http.StatusInternalServerError {
				l.WithError(err).WithField("repository", repo.String()).Error("retrieving contributors")
				http.Error(w, "", status)
				return
			}

			http.Error(w, err.Error(), status)
			return
		}

		response := newContributorsResponse(repo.Owner, repo.Name, contributors)

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(response)
	}
}

// NewWidgetHandler creates handlerfunc mounting new widget for every request and writing rendered widget.
// Failed loads are rendered too, response status reflects load error.
func NewWidgetHandler(
	getRepository func(*http.Request) app.Repository,
	components Components,
	tag string,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo := getRepository(r)
		q := r.URL.Query()

		c, err := components.New(tag, registry.Settings{
			Locales: []string{q.Get("lang"), r.Header.Get("Accept-Language")},
			Format:  q.Get("format"),
			Title:   q.Get("title"),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer c.Unmount()

		c.Configure(repo.Owner, repo.Name, getIntParam(r, "limit", 0))

		status := http.StatusOK
		if err := c.Mount(r.Context()); err != nil {
			status = errorStatus(err)
			if status >= http.StatusInternalServerError {
				l.WithError(err).WithField("repository", repo.String()).Warn("mounting widget")
			}
		}

		var buf bytes.Buffer
		if err := c.Render(r.Context(), &buf); err != nil {
			l.WithError(err).Error("rendering widget")
			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-type", c.ContentType())
		w.WriteHeader(status)
		_, _ = buf.WriteTo(w)
	}
}

// NewCharacterHandler creates handlerfunc returning svg image of character generated from seed.
func NewCharacterHandler(getSeed func(*http.Request) string, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed := strings.TrimSuffix(getSeed(r), ".svg")
		if seed == "" {
			http.Error(w, "seed cannot be empty", http.StatusBadRequest)
			return
		}

		var buf bytes.Buffer
		if err := character.New(seed).SVG().Render(r.Context(), &buf); err != nil {
			l.WithError(err).Error("rendering character")
			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = buf.WriteTo(w)
	}
}

// NewStylesHandler creates handlerfunc returning widget stylesheet.
func NewStylesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "text/css; charset=utf-8")
		_, _ = w.Write([]byte(render.Stylesheet))
	}
}

// errorStatus maps app errors to http status codes.
func errorStatus(err error) int {
	switch {
	case app.IsInvalidRequestError(err):
		return http.StatusBadRequest
	case app.IsNotFoundError(err):
		return http.StatusNotFound
	case app.IsScheduledForLaterError(err):
		return http.StatusAccepted
	case app.IsTooManyRequestsError(err):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func getIntParam(r *http.Request, name string, defaultValue int) int {
	value := defaultValue
	if vs := r.URL.Query().Get(name); vs != "" {
		if v, err := strconv.Atoi(vs); err == nil && v > 0 {
			value = v
		}
	}

	return value
}
