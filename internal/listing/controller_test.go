package listing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/helpers"
)

type call struct {
	page int
	ctx  context.Context
}

// fakeSource serves ids newest first. A gate holds back the response for a
// page regardless of cancellation, like a transport that ignores it.
type fakeSource struct {
	mu        sync.Mutex
	ids       []string
	gates     map[int]chan struct{}
	calls     []call
	listErr   error
	deleteErr error
}

func newFakeSource(n int) *fakeSource {
	f := &fakeSource{gates: map[int]chan struct{}{}}
	for i := 0; i < n; i++ {
		f.ids = append(f.ids, fmt.Sprintf("id-%03d", i))
	}
	return f
}

func (f *fakeSource) List(ctx context.Context, page, pageSize int) (*dto.Page[string], error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{page: page, ctx: ctx})
	gate := f.gates[page]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	items := []string{}
	for i := int(offset); i < len(f.ids) && i < int(offset)+limit; i++ {
		items = append(items, f.ids[i])
	}
	return helpers.NewPage(items, int64(len(f.ids)), page, pageSize), nil
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("not found")
}

func (f *fakeSource) set(fn func(f *fakeSource)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestPagesCoverEveryRecordOnce(t *testing.T) {
	ctx := context.Background()
	c := NewController[string](newFakeSource(320), 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))

	st := c.State()
	assert.Equal(t, 32, st.TotalPages)
	assert.EqualValues(t, 320, st.TotalCount)

	seen := map[string]bool{}
	for page := 1; page <= st.TotalPages; page++ {
		require.NoError(t, c.SetPage(ctx, page))
		got := c.State()
		assert.Equal(t, page, got.CurrentPage)
		assert.LessOrEqual(t, len(got.Items), 10)
		for _, id := range got.Items {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 320)
	assert.Len(t, c.State().Items, 10)
}

func TestLatestRequestWins(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(30)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 3))

	gate := make(chan struct{})
	src.set(func(f *fakeSource) { f.gates[1] = gate })

	slow := make(chan error, 1)
	go func() { slow <- c.LoadPage(ctx, 1) }()
	require.Eventually(t, func() bool { return src.callCount() == 2 }, time.Second, time.Millisecond)
	assert.True(t, c.State().IsLoading)

	require.NoError(t, c.SetPage(ctx, 2))
	close(gate)
	assert.ErrorIs(t, <-slow, ErrSuperseded)

	st := c.State()
	assert.Equal(t, 2, st.CurrentPage)
	assert.Equal(t, "id-010", st.Items[0])
	assert.False(t, st.IsLoading)

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Error(t, src.calls[1].ctx.Err(), "superseded fetch is cancelled")
}

func TestRemovingLastRowOnLastPageClampsBack(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(21)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 3))
	require.Equal(t, []string{"id-020"}, c.State().Items)

	require.NoError(t, c.Remove(ctx, "id-020"))

	st := c.State()
	assert.Equal(t, 2, st.CurrentPage)
	assert.Equal(t, 2, st.TotalPages)
	assert.Len(t, st.Items, 10)
	assert.NotContains(t, st.Items, "id-020")
}

func TestRemovingEverythingStaysOnPageOne(t *testing.T) {
	ctx := context.Background()
	c := NewController[string](newFakeSource(1), 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))
	require.NoError(t, c.Remove(ctx, "id-000"))

	st := c.State()
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 0, st.TotalPages)
	assert.Empty(t, st.Items)
}

func TestFailedLoadKeepsPreviousRows(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(15)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))
	before := c.State().Items

	src.set(func(f *fakeSource) { f.listErr = apperrors.NewServiceError("storage unavailable") })
	require.NoError(t, c.SetPage(ctx, 2))

	st := c.State()
	assert.Equal(t, before, st.Items)
	assert.Equal(t, 1, st.CurrentPage)
	assert.False(t, st.IsLoading)
	assert.Equal(t, apperrors.KindService, apperrors.KindOf(st.LastError))

	src.set(func(f *fakeSource) { f.listErr = nil })
	require.NoError(t, c.SetPage(ctx, 2))
	assert.NoError(t, c.State().LastError)
	assert.Len(t, c.State().Items, 5)
}

func TestAuthenticationFailurePropagates(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(5)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))

	src.set(func(f *fakeSource) { f.listErr = apperrors.ErrTokenExpired })
	err := c.Reload(ctx)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.ErrorIs(t, c.State().LastError, apperrors.ErrTokenExpired)
	assert.Len(t, c.State().Items, 5)
}

func TestSetPageValidatesRange(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(25)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))
	calls := src.callCount()

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(c.SetPage(ctx, 0)))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(c.SetPage(ctx, 4)))
	require.NoError(t, c.SetPage(ctx, 1))
	assert.Equal(t, calls, src.callCount())
}

func TestFailedRemoveLeavesRows(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(3)
	c := NewController[string](src, 10, zerolog.Nop())
	require.NoError(t, c.LoadPage(ctx, 1))

	err := c.Remove(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Len(t, c.State().Items, 3)
	assert.ErrorIs(t, c.State().LastError, apperrors.ErrResourceNotFound)
}

func TestCloseDropsLateResults(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(5)
	c := NewController[string](src, 10, zerolog.Nop())

	gate := make(chan struct{})
	src.set(func(f *fakeSource) { f.gates[1] = gate })
	done := make(chan error, 1)
	go func() { done <- c.LoadPage(ctx, 1) }()
	require.Eventually(t, func() bool { return src.callCount() == 1 }, time.Second, time.Millisecond)

	c.Close()
	close(gate)
	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, c.State().Items)
	assert.False(t, c.State().IsLoading)
	assert.ErrorIs(t, c.LoadPage(ctx, 1), ErrClosed)
	assert.ErrorIs(t, c.Remove(ctx, "id-000"), ErrClosed)
}
