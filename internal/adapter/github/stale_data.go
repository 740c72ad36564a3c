package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/metrics"
	"github.com/sirupsen/logrus"
)

// KVStore provides simple kv data storage
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// ClientWithStaleData wraps GithubClient and returns data saved in db if possible.
//
// If data is not available (or datas ttl is exceeded), update is scheduled, and app.ScheduledForLaterError is returned with empty data.
// If data is available, ttl is ok, but refreshTTL is exceeded, additional job for update is scheduled. Exisiting data is returned immediately.
// If data is available and no ttl is exceeded, then data is returned immediately.
// Repositories reported as not found are remembered for a short time, app.NotFoundError is returned meanwhile.
type ClientWithStaleData struct {
	client     app.GithubClient
	store      KVStore
	ttl        time.Duration
	refreshTTL time.Duration
	l          logrus.FieldLogger

	// notFoundTTL - lifetime of entries for repositories that don't exist
	notFoundTTL time.Duration

	updates chan contributorsDBUpdateRequest

	// Chan for controlling scheduler - only used for unit testing.
	schedulerPendingOps chan int

	// Func for canceling internal worker loop
	stop func()
}

// NewClientWithStaleData creates new ClientWithStaleData instance.
func NewClientWithStaleData(
	client app.GithubClient,
	store KVStore,
	ttl time.Duration,
	refreshTTL time.Duration,
	l logrus.FieldLogger,
) (*ClientWithStaleData, error) {
	if refreshTTL > ttl {
		return nil, errors.New("refresh ttl cannot be greater than ttl")
	}

	c := ClientWithStaleData{
		client:     client,
		store:      store,
		ttl:        ttl,
		refreshTTL: refreshTTL,
		l:          l,
		updates:    make(chan contributorsDBUpdateRequest, 1000),

		notFoundTTL: time.Minute,
	}

	return &c, nil
}

// RunScheduler runs internal scheduling goroutine.
// Doesn't block.
func (c *ClientWithStaleData) RunScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel

	go func() {
		pending := make(map[string]bool)
		done := make(chan string)

		for {
			// This is intended for blocking scheduler for unit testing.
			// In standard execution this is always nil.
			if c.schedulerPendingOps != nil {
				c.schedulerPendingOps <- len(pending)
			}

			select {
			case req := <-c.updates:
				key := req.key()
				if pending[key] {
					continue
				}
				pending[key] = true

				go func(req contributorsDBUpdateRequest) {
					c.l.Infof("ClientWithStaleData: scheduled contributors update for %s...", req.key())
					if err := c.update(ctx, req); err != nil {
						c.l.Errorf("ClientWithStaleData scheduler: updating contributors data: %v", err)
					} else {
						c.l.Infof("ClientWithStaleData: scheduled contributors update for %s done", req.key())
					}
					select {
					case done <- req.key():
					case <-ctx.Done():
					}
				}(req)
			case key := <-done:
				delete(pending, key)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Contributors returns contributors of given github project.
//
// Returns data from db if available.
func (c *ClientWithStaleData) Contributors(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
	req := contributorsDBUpdateRequest{
		owner: owner,
		name:  name,
		limit: limit,
	}

	data, err := c.store.ReadKey(c.dbKey(owner, name))
	if err != nil {
		return nil, err
	}
	if data != nil {
		entry, err := c.unserialize(data)
		if err != nil {
			return nil, fmt.Errorf("unserializing contributors data: %w", err)
		}
		entryCreated := time.Unix(entry.Created, 0)
		if entry.NotFound && entryCreated.Add(c.notFoundTTL).After(time.Now()) {
			metrics.CacheHits.WithLabelValues("store").Inc()
			return nil, app.NotFoundError("repository not found")
		}
		if !entry.NotFound && entryCovers(entry.Limit, len(entry.Data), limit) && entryCreated.Add(c.ttl).After(time.Now()) {
			metrics.CacheHits.WithLabelValues("store").Inc()
			if entryCreated.Add(c.refreshTTL).Before(time.Now()) {
				select {
				case c.updates <- req:
				default:
					c.l.Warnf("ClientWithStaleData: no free slots left, skipping refresh of %s", req.key())
				}
			}

			return app.Truncate(entry.Data, limit), nil
		}
	}
	metrics.CacheMisses.WithLabelValues("store").Inc()

	select {
	case c.updates <- req:
		return nil, app.ScheduledForLaterError("scheduled")
	default:
		return nil, errors.New("stale data scheduler: no free slots left")
	}
}

// Close stops the scheduler.
func (c *ClientWithStaleData) Close() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *ClientWithStaleData) update(ctx context.Context, req contributorsDBUpdateRequest) error {
	entry := contributorsDBEntry{
		Created: time.Now().Unix(),
		Limit:   req.limit,
	}

	contributors, err := c.client.Contributors(ctx, req.owner, req.name, req.limit)
	switch {
	case app.IsNotFoundError(err):
		entry.NotFound = true
	case err != nil:
		return fmt.Errorf("calling client.Contributors: %w", err)
	default:
		entry.Data = contributors
	}

	if err := c.save(req, entry); err != nil {
		return fmt.Errorf("saving contributors: %w", err)
	}

	return nil
}

func (c *ClientWithStaleData) save(req contributorsDBUpdateRequest, entry contributorsDBEntry) error {
	dbdata, err := c.serialize(entry)
	if err != nil {
		return fmt.Errorf("serializing data for save: %w", err)
	}

	return c.store.UpdateKey(c.dbKey(req.owner, req.name), dbdata)
}

func (c *ClientWithStaleData) dbKey(owner string, name string) []byte {
	return []byte("ct/" + owner + "/" + name)
}

func (c *ClientWithStaleData) serialize(entry contributorsDBEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshalling json: %w", err)
	}

	return data, nil
}

func (c *ClientWithStaleData) unserialize(data []byte) (*contributorsDBEntry, error) {
	var entry contributorsDBEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}

	return &entry, nil
}

type contributorsDBEntry struct {
	Created  int64
	Limit    int
	Data     []app.Contributor
	NotFound bool `json:",omitempty"`
}

type contributorsDBUpdateRequest struct {
	owner string
	name  string
	limit int
}

func (r contributorsDBUpdateRequest) key() string {
	return r.owner + "/" + r.name
}
