package crm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

var ErrNoToken = errors.New("no stored credential")

// TokenSource supplies the bearer credential attached to each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Resource is the REST endpoint behind one collection.
type Resource[T, In, P any] interface {
	List(ctx context.Context, token string) ([]T, error)
	Create(ctx context.Context, token string, record In) error
	Update(ctx context.Context, token, id string, patch P) error
	Delete(ctx context.Context, token, id string) error
}

// Collection mirrors one server-side collection in memory. Writes are
// never applied locally: each successful write is followed by a full
// refetch, and failures leave the items untouched.
type Collection[T, In, P any] struct {
	name     string
	resource Resource[T, In, P]
	tokens   TokenSource
	log      zerolog.Logger

	mu      sync.RWMutex
	items   []T
	lastErr error
}

func newCollection[T, In, P any](name string, resource Resource[T, In, P], tokens TokenSource, log *zerolog.Logger) *Collection[T, In, P] {
	return &Collection[T, In, P]{
		name:     name,
		resource: resource,
		tokens:   tokens,
		log:      log.With().Str("resource", name).Logger(),
		items:    []T{},
	}
}

// Items returns a copy of the collection as of the last successful fetch.
func (c *Collection[T, In, P]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

// Err returns the error of the most recent operation, or nil if it
// succeeded.
func (c *Collection[T, In, P]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Fetch replaces the collection with the server's copy.
func (c *Collection[T, In, P]) Fetch(ctx context.Context) error {
	token, err := c.token(ctx)
	if err != nil {
		return c.fail("fetch", "", err)
	}

	items, err := c.resource.List(ctx, token)
	if err != nil {
		return c.fail("fetch", "", err)
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	c.items = items
	c.lastErr = nil
	c.mu.Unlock()

	c.log.Debug().Int("count", len(items)).Msg("collection fetched")
	return nil
}

// Create posts a new record and refetches.
func (c *Collection[T, In, P]) Create(ctx context.Context, record In) error {
	token, err := c.token(ctx)
	if err != nil {
		return c.fail("create", "", err)
	}
	if err := c.resource.Create(ctx, token, record); err != nil {
		return c.fail("create", "", err)
	}
	return c.Fetch(ctx)
}

// Update sends a partial update for id and refetches.
func (c *Collection[T, In, P]) Update(ctx context.Context, id string, patch P) error {
	token, err := c.token(ctx)
	if err != nil {
		return c.fail("update", id, err)
	}
	if err := c.resource.Update(ctx, token, id, patch); err != nil {
		return c.fail("update", id, err)
	}
	return c.Fetch(ctx)
}

// Delete removes id and refetches.
func (c *Collection[T, In, P]) Delete(ctx context.Context, id string) error {
	token, err := c.token(ctx)
	if err != nil {
		return c.fail("delete", id, err)
	}
	if err := c.resource.Delete(ctx, token, id); err != nil {
		return c.fail("delete", id, err)
	}
	return c.Fetch(ctx)
}

func (c *Collection[T, In, P]) token(ctx context.Context) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (c *Collection[T, In, P]) fail(op, id string, err error) error {
	err = fmt.Errorf("%s %s: %w", op, c.name, err)

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	event := c.log.Error().Err(err).Str("op", op)
	if id != "" {
		event = event.Str("id", id)
	}
	event.Msg("crm request failed")
	return err
}
