package paging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pageOf builds n items named after the query and page
func pageOf(query string, page, n int) domain.Page[string] {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("%s-%d-%d", query, page, i)
	}
	return domain.Page[string]{Content: items, Number: page}
}

type fakeSource struct {
	mu    sync.Mutex
	calls []int
	size  int
	fail  map[int]error
	last  map[int]bool
}

func (f *fakeSource) fetch(_ context.Context, query string, page int) (domain.Page[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if err, ok := f.fail[page]; ok {
		return domain.Page[string]{}, err
	}
	pg := pageOf(query, page, f.size)
	pg.Last = f.last[page]
	return pg, nil
}

func TestStateTransitions(t *testing.T) {
	var s State[int]
	assert.Equal(t, Idle, s.Status)

	s = s.BeginLoad().Complete([]int{1, 2}, false)
	assert.Equal(t, Loaded, s.Status)
	assert.Equal(t, []int{1, 2}, s.Items)

	s = s.BeginLoad()
	assert.Equal(t, Loading, s.Status)
	assert.Equal(t, []int{1, 2}, s.Items, "loading keeps visible items")

	s = s.Complete([]int{3}, true)
	assert.Equal(t, []int{1, 2, 3}, s.Items)

	s = s.Complete([]int{9}, false)
	assert.Equal(t, []int{9}, s.Items, "first page replaces")
}

func TestStateFailKeepsVisibleItems(t *testing.T) {
	s := LoadedState([]int{1, 2})
	s = s.BeginLoad().Fail(errors.New("boom"))

	assert.Equal(t, Error, s.Status)
	assert.Equal(t, "boom", s.Message)
	assert.Equal(t, []int{1, 2}, s.Items)
}

func TestStateCompleteAfterErrorStartsOver(t *testing.T) {
	s := LoadedState([]int{1, 2}).Fail(errors.New("boom"))

	direct := s.Complete([]int{3}, true)
	assert.Equal(t, []int{3}, direct.Items)

	viaLoading := s.BeginLoad().Complete([]int{3}, true)
	assert.Equal(t, []int{3}, viaLoading.Items)

	next := viaLoading.BeginLoad().Complete([]int{4}, true)
	assert.Equal(t, []int{3, 4}, next.Items, "append resumes once loaded again")
}

func TestStateIsNotMutatedByLaterTransitions(t *testing.T) {
	first := LoadedState([]int{1, 2})
	_ = first.Complete([]int{3}, true)
	assert.Equal(t, []int{1, 2}, first.Items)
}

func TestCursor(t *testing.T) {
	var c Cursor
	assert.Equal(t, 0, c.Value())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 1, c.Rollback())
	assert.Equal(t, 0, c.Reset())
	assert.Equal(t, 0, c.Rollback(), "never negative")
}

func TestShouldLoadMore(t *testing.T) {
	tests := []struct {
		name        string
		lastVisible int
		total       int
		want        bool
	}{
		{"empty list", -1, 0, false},
		{"nothing visible", -1, 5, false},
		{"single item", 0, 1, false},
		{"last of two", 1, 2, true},
		{"middle", 3, 10, false},
		{"last of many", 9, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldLoadMore(tt.lastVisible, tt.total))
		})
	}
}

func TestTriggerFiresOncePerEdge(t *testing.T) {
	var tr Trigger
	assert.False(t, tr.Observe(5, 10))
	assert.True(t, tr.Observe(9, 10))
	assert.False(t, tr.Observe(9, 10), "holding at the boundary does not refire")
	assert.False(t, tr.Observe(8, 10))
	assert.True(t, tr.Observe(9, 10), "leaving and returning refires")
	assert.False(t, tr.Observe(9, 20), "list grew")
	assert.True(t, tr.Observe(19, 20))
}

func TestPagerAppendsPagesInOrder(t *testing.T) {
	src := &fakeSource{size: 3}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	first, err := p.Refresh(ctx, "top")
	require.NoError(t, err)
	require.Len(t, first.Items, 3)

	second, err := p.LoadMore(ctx)
	require.NoError(t, err)

	assert.Equal(t, Loaded, second.Status)
	assert.Equal(t, pageOf("top", 0, 3).Content, second.Items[:3])
	assert.Equal(t, pageOf("top", 1, 3).Content, second.Items[3:])
	assert.Equal(t, []int{0, 1}, src.calls)
}

func TestPagerLengthGrowsByPageSize(t *testing.T) {
	src := &fakeSource{size: 4}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	_, err := p.Refresh(ctx, "q")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		before := p.State().Len()
		after, err := p.LoadMore(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+4, after.Len())
	}
}

func TestPagerEmptyPageIsNotTerminal(t *testing.T) {
	src := &fakeSource{size: 2}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	_, err := p.Refresh(ctx, "q")
	require.NoError(t, err)

	src.size = 0
	s, err := p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, src.calls)
}

func TestPagerPublishesLastPageFlag(t *testing.T) {
	src := &fakeSource{size: 2, last: map[int]bool{1: true}}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	s, err := p.Refresh(ctx, "q")
	require.NoError(t, err)
	assert.False(t, s.Last)

	s, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, s.Last)
	assert.True(t, s.BeginLoad().Last, "kept while the next page loads")

	// the flag is informational; the next page is still requested
	s, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, s.Last)
	assert.Equal(t, []int{0, 1, 2}, src.calls)

	s, err = p.Refresh(ctx, "q")
	require.NoError(t, err)
	assert.False(t, s.Last)
}

func TestTriggerIgnoresEmptyList(t *testing.T) {
	var tr Trigger
	assert.False(t, tr.Observe(-1, 0))
	assert.False(t, tr.Observe(-1, 0))
}

func TestPagerRefreshDiscardsAccumulatedItems(t *testing.T) {
	src := &fakeSource{size: 2}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	_, _ = p.Refresh(ctx, "drama")
	_, _ = p.LoadMore(ctx)
	require.Equal(t, 4, p.State().Len())

	s, err := p.Refresh(ctx, "comedy")
	require.NoError(t, err)
	assert.Equal(t, pageOf("comedy", 0, 2).Content, s.Items)
	assert.Equal(t, 0, p.Page())
	assert.Equal(t, "comedy", p.Query())
}

func TestPagerFailureSkipsPageByDefault(t *testing.T) {
	src := &fakeSource{size: 1, fail: map[int]error{1: errors.New("boom")}}
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()

	_, _ = p.Refresh(ctx, "q")
	s, err := p.LoadMore(ctx)
	require.Error(t, err)
	assert.Equal(t, Error, s.Status)
	assert.Equal(t, pageOf("q", 0, 1).Content, s.Items, "previous items stay visible")

	s, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, src.calls)
	assert.Equal(t, pageOf("q", 2, 1).Content, s.Items, "complete after error starts over")
}

func TestPagerRollbackOnFailure(t *testing.T) {
	src := &fakeSource{size: 1, fail: map[int]error{1: errors.New("boom")}}
	p := New(src.fetch, WithLogger(quietLogger()), WithRollbackOnFailure(true))
	ctx := context.Background()

	_, _ = p.Refresh(ctx, "q")
	_, err := p.LoadMore(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, p.Page())

	delete(src.fail, 1)
	_, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, src.calls)
}

// blockingSource parks requests for one page until released
type blockingSource struct {
	fakeSource
	blockQuery string
	blockPage  int
	started    chan struct{}
	release    chan struct{}
}

func newBlockingSource(query string, page int) *blockingSource {
	return &blockingSource{
		fakeSource: fakeSource{size: 2},
		blockQuery: query,
		blockPage:  page,
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (b *blockingSource) fetch(ctx context.Context, query string, page int) (domain.Page[string], error) {
	if query == b.blockQuery && page == b.blockPage {
		close(b.started)
		<-b.release
	}
	return b.fakeSource.fetch(ctx, query, page)
}

func TestPagerDeduplicatesInFlightLoadMore(t *testing.T) {
	src := newBlockingSource("q", 1)
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()
	_, _ = p.Refresh(ctx, "q")

	done := make(chan error, 1)
	go func() {
		_, err := p.LoadMore(ctx)
		done <- err
	}()
	<-src.started

	assert.True(t, p.InFlight())
	_, err := p.LoadMore(ctx)
	assert.ErrorIs(t, err, ErrInFlight)
	assert.True(t, Skipped(err))

	close(src.release)
	require.NoError(t, <-done)
	assert.Equal(t, 4, p.State().Len())
	assert.Equal(t, []int{0, 1}, src.calls)
}

func TestPagerDiscardsSupersededResponse(t *testing.T) {
	src := newBlockingSource("old", 1)
	p := New(src.fetch, WithLogger(quietLogger()))
	ctx := context.Background()
	_, _ = p.Refresh(ctx, "old")

	done := make(chan error, 1)
	go func() {
		_, err := p.LoadMore(ctx)
		done <- err
	}()
	<-src.started

	fresh, err := p.Refresh(ctx, "new")
	require.NoError(t, err)

	close(src.release)
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, fresh.Items, p.State().Items)
	assert.Equal(t, pageOf("new", 0, 2).Content, p.State().Items)
}

func TestPagerSetEmptyAndReset(t *testing.T) {
	src := &fakeSource{size: 2}
	p := New(src.fetch, WithLogger(quietLogger()))

	p.SetEmpty()
	assert.Equal(t, Empty, p.State().Status)

	_, _ = p.Refresh(context.Background(), "q")
	p.Reset()
	assert.Equal(t, Idle, p.State().Status)
	assert.Equal(t, "", p.Query())
}
