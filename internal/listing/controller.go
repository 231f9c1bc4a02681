// Package listing keeps the paginated view state of one entity table and
// reloads it against a data source.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/helpers"
)

var (
	// ErrSuperseded is returned by a fetch whose result was discarded because a newer one was requested
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrClosed is returned once the controller has been closed
	ErrClosed = errors.New("list controller closed")
)

// DataSource is the slice of the data service one table needs
type DataSource[T any] interface {
	List(ctx context.Context, page, pageSize int) (*dto.Page[T], error)
	Delete(ctx context.Context, id string) error
}

// State is a snapshot of what the table currently shows
type State[T any] struct {
	CurrentPage int
	PageSize    int
	Items       []T
	TotalPages  int
	TotalCount  int64
	IsLoading   bool
	LastError   error
}

// Controller owns the pagination state of one table. Only the most recently
// requested fetch may change the state; older ones are cancelled and their
// late results dropped.
type Controller[T any] struct {
	source   DataSource[T]
	pageSize int
	logger   zerolog.Logger

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	requested int
	cancel    context.CancelFunc
	closed    bool
}

// NewController creates a controller showing page 1. A pageSize outside
// 1..helpers.MaxPageSize falls back to helpers.DefaultPageSize.
func NewController[T any](source DataSource[T], pageSize int, logger zerolog.Logger) *Controller[T] {
	if pageSize < 1 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}
	return &Controller[T]{
		source:    source,
		pageSize:  pageSize,
		logger:    logger,
		requested: 1,
		state: State[T]{
			CurrentPage: 1,
			PageSize:    pageSize,
			Items:       []T{},
		},
	}
}

// State returns a copy of the current state
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = append([]T(nil), c.state.Items...)
	return s
}

// LoadPage fetches page and, when it succeeds, replaces the shown rows with it.
// A page past the end is clamped to the last existing page.
//
// Service, not-found and validation failures keep the previous rows, are
// recorded in LastError and return nil. Authentication failures are recorded
// and returned so the caller can force a new login.
func (c *Controller[T]) LoadPage(ctx context.Context, page int) error {
	gen, fetchCtx, err := c.begin(ctx, page)
	if err != nil {
		return err
	}

	for {
		result, err := c.source.List(fetchCtx, page, c.pageSize)
		if err == nil {
			// rows vanished from under the requested page
			if last := max(1, result.TotalPages); page > last {
				if err := c.retarget(gen, last); err != nil {
					return err
				}
				page = last
				continue
			}
		}
		return c.finish(gen, page, result, err)
	}
}

// Reload refetches the page on screen
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	page := c.requested
	c.mu.Unlock()
	return c.LoadPage(ctx, page)
}

// SetPage moves to page. It is a no-op when page is already shown or requested.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	last := max(1, c.state.TotalPages)
	requested := c.requested
	c.mu.Unlock()

	if page < 1 || page > last {
		return apperrors.NewValidationError(fmt.Sprintf("page %d is out of range 1..%d", page, last))
	}
	if page == requested {
		return nil
	}
	return c.LoadPage(ctx, page)
}

// Remove deletes a row and reloads the current page. A failed delete is
// recorded in LastError and returned; the shown rows stay as they were.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	if err := c.source.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.state.LastError = err
		c.mu.Unlock()
		return err
	}
	return c.Reload(ctx)
}

// Close cancels any fetch in flight. Results arriving afterwards are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.IsLoading = false
}

// begin makes a new fetch authoritative and cancels the previous one
func (c *Controller[T]) begin(ctx context.Context, page int) (uint64, context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, nil, ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.gen++
	c.cancel = cancel
	c.requested = page
	c.state.IsLoading = true
	c.state.LastError = nil
	return c.gen, fetchCtx, nil
}

func (c *Controller[T]) retarget(gen uint64, page int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.currentLocked(gen); err != nil {
		return err
	}
	c.requested = page
	return nil
}

func (c *Controller[T]) currentLocked(gen uint64) error {
	switch {
	case c.closed:
		return ErrClosed
	case gen != c.gen:
		return ErrSuperseded
	}
	return nil
}

func (c *Controller[T]) finish(gen uint64, page int, result *dto.Page[T], err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stale := c.currentLocked(gen); stale != nil {
		return stale
	}
	c.cancel()
	c.cancel = nil
	c.state.IsLoading = false

	if err != nil {
		c.requested = c.state.CurrentPage
		if apperrors.IsCanceled(err) {
			return err
		}
		c.state.LastError = err
		if apperrors.IsAuthentication(err) {
			return err
		}
		c.logger.Warn().Err(err).Int("page", page).Msg("Failed to load page, keeping previous rows")
		return nil
	}

	items := result.Items
	if items == nil {
		items = []T{}
	}
	c.state.Items = items
	c.state.TotalPages = result.TotalPages
	c.state.TotalCount = result.TotalCount
	c.state.CurrentPage = page
	c.requested = page
	return nil
}
