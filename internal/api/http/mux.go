package http

import (
	"context"
	"net/http"
	"time"

	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/metrics"
	"github.com/m-zajac/ghcontributors/internal/registry"
	"github.com/sirupsen/logrus"
)

// Service can return contributors of github repository.
//go:generate mockgen -destination mock/service.go -package mock github.com/m-zajac/ghcontributors/internal/api/http Service
type Service interface {
	Contributors(
		ctx context.Context,
		owner string,
		name string,
		limit int,
	) ([]app.Contributor, error)
}

// Components creates registered components.
type Components interface {
	New(tag string, s registry.Settings) (registry.Component, error)
}

// NewMux creates router for app's http server.
// Widget registered under tag is served on /contributors/{org}/{repo}.
func NewMux(
	service Service,
	components Components,
	tag string,
	timeout time.Duration,
	l logrus.FieldLogger,
) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)
	logMiddleware := NewLogMiddleware(l.WithField("middleware", "log"))

	getRepository := func(r *http.Request) app.Repository {
		return app.Repository{
			Owner: r.PathValue("org"),
			Name:  r.PathValue("repo"),
		}
	}

	widgetHandler := NewWidgetHandler(getRepository, components, tag, l.WithField("handler", "widget"))
	contributorsHandler := NewContributorsHandler(getRepository, service, l.WithField("handler", "contributors"))
	characterHandler := NewCharacterHandler(
		func(r *http.Request) string {
			return r.PathValue("seed")
		},
		l.WithField("handler", "character"),
	)

	m := http.NewServeMux()
	m.HandleFunc("GET /contributors/{org}/{repo}", logMiddleware(timeoutMiddleware(widgetHandler)))
	m.HandleFunc("GET /api/contributors/{org}/{repo}", logMiddleware(timeoutMiddleware(contributorsHandler)))
	m.HandleFunc("GET /character/{seed}", logMiddleware(characterHandler))
	m.HandleFunc("GET /styles.css", NewStylesHandler())
	m.Handle("GET /metrics", metrics.Handler())

	return m
}
