// Package widget implements the contributors widget: a component showing contributors of a github repository
// as cards with generated characters.
package widget

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/i18n"
	"github.com/m-zajac/ghcontributors/internal/metrics"
	"github.com/m-zajac/ghcontributors/internal/registry"
	"github.com/m-zajac/ghcontributors/internal/render"
	"github.com/sirupsen/logrus"
)

// Tag is a name under which widget is registered.
const Tag = "github-rpg-contributors"

// Loader fetches contributors of github repository.
//go:generate mockgen -destination mock/loader.go -package mock github.com/m-zajac/ghcontributors/internal/widget Loader
type Loader interface {
	Contributors(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error)
}

// Widget shows contributors of a single repository.
// Widget is safe for concurrent use.
type Widget struct {
	id        string
	loader    Loader
	renderer  render.Renderer
	localizer *i18n.Localizer
	title     string
	l         logrus.FieldLogger

	m            sync.Mutex
	organization string
	repository   string
	limit        int
	contributors []app.Contributor
	state        string
	err          error
	generation   uint64
	mounts       uint64
	// loads counts loads in flight, settledState and settledErr are shown when none is left.
	loads        int
	settledState string
	settledErr   error
	cancels      map[uint64]context.CancelFunc
}

var _ registry.Component = (*Widget)(nil)

// New creates widget with empty inputs.
func New(loader Loader, renderer render.Renderer, localizer *i18n.Localizer, l logrus.FieldLogger) *Widget {
	id := "contributors-" + uuid.NewString()
	return &Widget{
		id:           id,
		loader:       loader,
		renderer:     renderer,
		localizer:    localizer,
		l:            l.WithField("widget", id),
		state:        render.StateIdle,
		settledState: render.StateIdle,
		cancels:      make(map[uint64]context.CancelFunc),
	}
}

// ID returns unique id of widget instance.
func (w *Widget) ID() string {
	return w.id
}

// Configure sets widget inputs. It doesn't load anything, the new inputs are used by next Mount or Load.
// Non positive limit means no limit.
func (w *Widget) Configure(organization string, repository string, limit int) {
	w.m.Lock()
	defer w.m.Unlock()

	w.organization = organization
	w.repository = repository
	w.limit = limit
	w.generation++
}

// Mount attaches widget and loads its contributors.
// Every mount loads again. Load is cancelled when ctx is done or widget is unmounted.
func (w *Widget) Mount(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	w.m.Lock()
	w.mounts++
	mount := w.mounts
	w.cancels[mount] = cancel
	w.m.Unlock()

	defer func() {
		w.m.Lock()
		delete(w.cancels, mount)
		w.m.Unlock()
		cancel()
	}()

	_, err := w.Load(ctx)
	return err
}

// Unmount cancels all loads started by Mount.
func (w *Widget) Unmount() {
	w.m.Lock()
	defer w.m.Unlock()

	for mount, cancel := range w.cancels {
		cancel()
		delete(w.cancels, mount)
	}
}

// Load fetches contributors for current inputs.
// Without organization or repository it does nothing and returns nil, nil.
// On failure previously loaded contributors are kept and the error is returned.
func (w *Widget) Load(ctx context.Context) ([]app.Contributor, error) {
	w.m.Lock()
	organization, repository, limit := w.organization, w.repository, w.limit
	generation := w.generation
	if organization == "" || repository == "" {
		w.m.Unlock()
		return nil, nil
	}
	if w.loads == 0 {
		w.settledState, w.settledErr = w.state, w.err
	}
	w.loads++
	w.state = render.StateLoading
	w.err = nil
	w.m.Unlock()

	l := w.l.WithFields(logrus.Fields{
		"organization": organization,
		"repository":   repository,
		"limit":        limit,
	})

	start := time.Now()
	contributors, err := w.loader.Contributors(ctx, organization, repository, limit)
	metrics.WidgetLoadDuration.Observe(time.Since(start).Seconds())

	w.m.Lock()
	defer w.m.Unlock()

	w.loads--
	if generation != w.generation {
		l.Debug("inputs changed during load, result discarded")
		if w.loads == 0 {
			w.state, w.err = w.settledState, w.settledErr
		}
		if err != nil {
			return nil, err
		}
		return app.Truncate(contributors, limit), nil
	}

	switch {
	case err == nil:
		metrics.WidgetLoads.WithLabelValues("ok").Inc()
	case app.IsScheduledForLaterError(err):
		metrics.WidgetLoads.WithLabelValues("scheduled").Inc()
		w.state = render.StateLoading
		w.err = err
		w.settledState, w.settledErr = w.state, w.err
		return nil, err
	default:
		metrics.WidgetLoads.WithLabelValues("failed").Inc()
		l.WithError(err).Warn("loading contributors")
		w.state = render.StateFailed
		w.err = err
		w.settledState, w.settledErr = w.state, w.err
		return nil, err
	}

	if contributors == nil {
		contributors = []app.Contributor{}
	}
	w.contributors = app.Truncate(contributors, limit)
	w.state = render.StateReady
	w.settledState, w.settledErr = w.state, nil

	return w.contributors, nil
}

// Contributors returns last loaded contributors.
func (w *Widget) Contributors() []app.Contributor {
	w.m.Lock()
	defer w.m.Unlock()

	out := make([]app.Contributor, len(w.contributors))
	copy(out, w.contributors)
	return out
}

// State returns widget state, one of render.State* values.
func (w *Widget) State() string {
	w.m.Lock()
	defer w.m.Unlock()

	return w.state
}

// Err returns error of last load.
func (w *Widget) Err() error {
	w.m.Lock()
	defer w.m.Unlock()

	return w.err
}

// ContentType returns content type of rendered widget.
func (w *Widget) ContentType() string {
	return w.renderer.ContentType()
}

// Render writes widget using its renderer.
func (w *Widget) Render(ctx context.Context, out io.Writer) error {
	return w.renderer.Render(ctx, out, w.View())
}

// View returns snapshot of widget prepared for rendering.
func (w *Widget) View() render.View {
	w.m.Lock()
	defer w.m.Unlock()

	loc := w.localizer
	v := render.View{
		ID:           w.id,
		Lang:         loc.Lang(),
		Dir:          loc.Direction(),
		Organization: w.organization,
		Repository:   w.repository,
		Title:        w.title,
		State:        w.state,
		Labels: render.Labels{
			Contributors: loc.T("contributors"),
			Loading:      loc.T("loading"),
			Error:        loc.T("error"),
			Empty:        loc.T("empty"),
		},
		Contributors: make([]render.Contributor, 0, len(w.contributors)),
	}
	if w.organization != "" && w.repository != "" {
		v.RepositoryURL = app.Repository{Owner: w.organization, Name: w.repository}.URL()
	}
	if w.err != nil && w.state == render.StateFailed {
		v.Error = w.err.Error()
	}
	for _, c := range w.contributors {
		v.Contributors = append(v.Contributors, render.Contributor{
			Login:         c.Login,
			ProfileURL:    c.HTMLURL,
			Contributions: c.Contributions,
			Caption:       c.Login + " (" + loc.Number(c.Contributions) + " " + loc.T("contributions") + ")",
			ProfileLabel:  loc.T("open_profile", c.Login),
		})
	}

	return v
}
