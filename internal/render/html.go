package render

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/m-zajac/ghcontributors/internal/character"
)

// HTMLRenderer renders view as html fragment.
type HTMLRenderer struct {
	// InlineStyles adds <style> element with Stylesheet to every fragment.
	InlineStyles bool
}

var _ Renderer = HTMLRenderer{}

// ContentType implements Renderer.
func (HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements Renderer.
func (r HTMLRenderer) Render(ctx context.Context, w io.Writer, v View) error {
	return r.widget(v).Render(ctx, w)
}

func (r HTMLRenderer) widget(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<div class="github-rpg-contributors" id="`, templ.EscapeString(v.ID),
			`" lang="`, templ.EscapeString(v.Lang),
			`" dir="`, templ.EscapeString(v.Dir),
			`" data-state="`, templ.EscapeString(v.State), `">`,
		); err != nil {
			return err
		}
		if r.InlineStyles {
			if err := write(w, "<style>", Stylesheet, "</style>"); err != nil {
				return err
			}
		}
		if v.Title != "" {
			if err := write(w, `<h3><span>`, templ.EscapeString(v.Title), `</span></h3>`); err != nil {
				return err
			}
		}
		if err := repositoryLink(v).Render(ctx, w); err != nil {
			return err
		}
		if err := write(w, `<div class="contributors"><p>`, templ.EscapeString(v.Labels.Contributors), ` </p>`); err != nil {
			return err
		}
		if err := status(v).Render(ctx, w); err != nil {
			return err
		}
		for _, c := range v.Contributors {
			if err := contributorCard(c).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</div></div>`)
	})
}

func repositoryLink(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v.RepositoryURL == "" {
			return write(w, `<div class="wrapper"></div>`)
		}
		return write(w,
			`<div class="wrapper"><a href="`, templ.EscapeString(string(templ.URL(v.RepositoryURL))),
			`" target="_blank" rel="noopener">`,
			templ.EscapeString(v.Organization), "/", templ.EscapeString(v.Repository),
			`</a></div>`,
		)
	})
}

func status(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		switch {
		case v.State == StateLoading:
			return write(w, `<p class="status loading" role="status">`, templ.EscapeString(v.Labels.Loading), `</p>`)
		case v.State == StateFailed:
			return write(w, `<p class="status error" role="alert">`, templ.EscapeString(v.Labels.Error), `</p>`)
		case v.State == StateReady && len(v.Contributors) == 0:
			return write(w, `<p class="status empty">`, templ.EscapeString(v.Labels.Empty), `</p>`)
		default:
			return nil
		}
	})
}

func contributorCard(c Contributor) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<div class="contributor"><a href="`, templ.EscapeString(string(templ.URL(c.ProfileURL))),
			`" target="_blank" rel="noopener" aria-label="`, templ.EscapeString(c.ProfileLabel), `">`,
		); err != nil {
			return err
		}
		if err := character.New(c.Login).SVG().Render(ctx, w); err != nil {
			return err
		}
		return write(w, `<p>`, templ.EscapeString(c.Caption), `</p></a></div>`)
	})
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
