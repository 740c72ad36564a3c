// Package render turns widget views into markup.
package render

import (
	"context"
	_ "embed"
	"io"
)

// Stylesheet contains widget styles built on design system variables.
//
//go:embed widget.css
var Stylesheet string

// Widget states as seen by renderers.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

// Renderer writes view of a widget.
type Renderer interface {
	ContentType() string
	Render(ctx context.Context, w io.Writer, v View) error
}

// View is a read-only snapshot of widget prepared for rendering.
type View struct {
	ID            string        `json:"id"`
	Lang          string        `json:"lang"`
	Dir           string        `json:"dir"`
	Organization  string        `json:"organization"`
	Repository    string        `json:"repository"`
	Title         string        `json:"title,omitempty"`
	RepositoryURL string        `json:"repositoryUrl"`
	State         string        `json:"state"`
	Error         string        `json:"error,omitempty"`
	Labels        Labels        `json:"-"`
	Contributors  []Contributor `json:"contributors"`
}

// Labels are texts of widget translated to view's language.
type Labels struct {
	Contributors string
	Loading      string
	Error        string
	Empty        string
}

// Contributor is a single card of the widget.
type Contributor struct {
	Login         string `json:"login"`
	ProfileURL    string `json:"htmlUrl"`
	Contributions int    `json:"contributions"`
	// Caption is a translated "login (n contributions)" text.
	Caption string `json:"caption"`
	// ProfileLabel is a translated accessible name of the profile link.
	ProfileLabel string `json:"-"`
}
