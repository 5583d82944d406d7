package apiclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/cache"
	"github.com/matzehuels/stackscope/pkg/integrations/github"
	"github.com/matzehuels/stackscope/pkg/observability"
)

// countingAnalyzer returns canned views and counts calls per view.
type countingAnalyzer struct {
	mu    sync.Mutex
	calls map[string]int
	fail  error
}

func (a *countingAnalyzer) hit(kind string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calls == nil {
		a.calls = map[string]int{}
	}
	a.calls[kind]++
	return a.fail
}

func (a *countingAnalyzer) count(kind string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[kind]
}

func (a *countingAnalyzer) Info(ctx context.Context, rawURL string) (*analyzer.RepoInfoResult, error) {
	if err := a.hit(analyzer.KindInfo); err != nil {
		return nil, err
	}
	return &analyzer.RepoInfoResult{RepoInfo: &github.Repository{FullName: "octocat/Hello-World"}}, nil
}

func (a *countingAnalyzer) Languages(ctx context.Context, rawURL string) (analyzer.LanguagesResult, error) {
	if err := a.hit(analyzer.KindLanguages); err != nil {
		return nil, err
	}
	return analyzer.LanguagesResult{"Go": 10}, nil
}

func (a *countingAnalyzer) Technologies(ctx context.Context, rawURL string) (*analyzer.TechnologiesResult, error) {
	if err := a.hit(analyzer.KindTechnologies); err != nil {
		return nil, err
	}
	res := analyzer.EmptyTechnologies()
	res.Technologies = []string{"Go"}
	return res, nil
}

func (a *countingAnalyzer) Schema(ctx context.Context, rawURL string) (*analyzer.SchemaResult, error) {
	if err := a.hit(analyzer.KindSchema); err != nil {
		return nil, err
	}
	return &analyzer.SchemaResult{}, nil
}

type recordingCacheHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *recordingCacheHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.mu.Lock()
	if size > 0 {
		h.set++
	}
	h.mu.Unlock()
}

func newCached(t *testing.T, inner Analyzer) *Cached {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return NewCached(inner, fc, 0, log.New(io.Discard))
}

func TestCachedReadThrough(t *testing.T) {
	hooks := &recordingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	inner := &countingAnalyzer{}
	c := newCached(t, inner)
	ctx := context.Background()

	for range 2 {
		info, err := c.Info(ctx, helloWorld)
		require.NoError(t, err)
		assert.Equal(t, "octocat/Hello-World", info.RepoInfo.FullName)

		langs, err := c.Languages(ctx, helloWorld)
		require.NoError(t, err)
		assert.Equal(t, int64(10), langs["Go"])

		tech, err := c.Technologies(ctx, helloWorld)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, tech.Technologies)
	}

	for _, kind := range []string{analyzer.KindInfo, analyzer.KindLanguages, analyzer.KindTechnologies} {
		assert.Equal(t, 1, inner.count(kind), kind)
	}
	assert.Equal(t, 3, hooks.misses)
	assert.Equal(t, 3, hooks.hits)
	assert.Equal(t, 3, hooks.set)
}

func TestCachedKeysByURL(t *testing.T) {
	inner := &countingAnalyzer{}
	c := newCached(t, inner)
	ctx := context.Background()

	_, err := c.Languages(ctx, helloWorld)
	require.NoError(t, err)
	_, err = c.Languages(ctx, "https://github.com/octocat/Spoon-Knife")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.count(analyzer.KindLanguages))
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	inner := &countingAnalyzer{fail: errors.New("boom")}
	c := newCached(t, inner)
	ctx := context.Background()

	_, err := c.Info(ctx, helloWorld)
	require.Error(t, err)
	inner.fail = nil
	_, err = c.Info(ctx, helloWorld)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.count(analyzer.KindInfo))
}

func TestCachedClear(t *testing.T) {
	inner := &countingAnalyzer{}
	c := newCached(t, inner)
	ctx := context.Background()

	_, err := c.Schema(ctx, helloWorld)
	require.NoError(t, err)
	require.NoError(t, c.Clear(ctx))
	_, err = c.Schema(ctx, helloWorld)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.count(analyzer.KindSchema))
}

func TestCachedNullCache(t *testing.T) {
	inner := &countingAnalyzer{}
	c := NewCached(inner, cache.NewNullCache(), 0, nil)
	for range 2 {
		_, err := c.Languages(context.Background(), helloWorld)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.count(analyzer.KindLanguages))
}
