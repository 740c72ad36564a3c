// Package registry maps component tags to factories.
//
// Every host application owns its registry, there is no process wide one.
package registry

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"sync"
)

// Component is a widget that can be configured, mounted and rendered by a host.
type Component interface {
	Configure(organization string, repository string, limit int)
	Mount(ctx context.Context) error
	Unmount()
	Render(ctx context.Context, w io.Writer) error
	ContentType() string
}

// Settings are passed by host to factory for every created component.
type Settings struct {
	// Locales are language preferences, most important first.
	Locales []string
	// Format selects renderer, empty means default one.
	Format string
	// Title is shown as component heading, empty means no heading.
	Title string
}

// Factory creates new component instance.
type Factory func(Settings) (Component, error)

// tagPattern follows custom element naming: lowercase, starting with letter, containing a hyphen.
var tagPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)+$`)

// Registry holds factories registered under tags.
type Registry struct {
	m         sync.RWMutex
	factories map[string]Factory
}

// New creates empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds factory under given tag.
// Returns error if tag is invalid or already taken.
func (r *Registry) Register(tag string, f Factory) error {
	if !tagPattern.MatchString(tag) {
		return fmt.Errorf("invalid component tag %q", tag)
	}
	if f == nil {
		return fmt.Errorf("nil factory for component tag %q", tag)
	}

	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.factories[tag]; ok {
		return fmt.Errorf("component tag %q already registered", tag)
	}
	r.factories[tag] = f

	return nil
}

// New creates component registered under given tag.
func (r *Registry) New(tag string, s Settings) (Component, error) {
	r.m.RLock()
	f, ok := r.factories[tag]
	r.m.RUnlock()

	if !ok {
		return nil, fmt.Errorf("component tag %q not registered", tag)
	}

	c, err := f(s)
	if err != nil {
		return nil, fmt.Errorf("creating %s component: %w", tag, err)
	}

	return c, nil
}

// Tags returns sorted registered tags.
func (r *Registry) Tags() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}
