package render

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// JSONRenderer renders view as json document.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

// ContentType implements Renderer.
func (JSONRenderer) ContentType() string {
	return "application/json; charset=utf-8"
}

// Render implements Renderer.
func (JSONRenderer) Render(_ context.Context, w io.Writer, v View) error {
	if v.Contributors == nil {
		v.Contributors = []Contributor{}
	}
	return jsoniter.ConfigFastest.NewEncoder(w).Encode(v)
}
