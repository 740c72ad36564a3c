package widget

import (
	"fmt"

	"github.com/m-zajac/ghcontributors/internal/i18n"
	"github.com/m-zajac/ghcontributors/internal/registry"
	"github.com/m-zajac/ghcontributors/internal/render"
	"github.com/sirupsen/logrus"
)

// Supported render formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// NewFactory returns registry factory creating widgets using given loader and translations.
func NewFactory(loader Loader, catalog *i18n.Catalog, l logrus.FieldLogger) registry.Factory {
	l = l.WithField("component", Tag)

	return func(s registry.Settings) (registry.Component, error) {
		var renderer render.Renderer
		switch s.Format {
		case "", FormatHTML:
			renderer = render.HTMLRenderer{InlineStyles: true}
		case FormatJSON:
			renderer = render.JSONRenderer{}
		default:
			return nil, fmt.Errorf("unsupported format %q", s.Format)
		}

		w := New(loader, renderer, catalog.Localizer(s.Locales...), l)
		w.title = s.Title

		return w, nil
	}
}
