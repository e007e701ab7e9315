package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-ai/recall/pkg/cache/file"
	"github.com/recall-ai/recall/pkg/calllog"
	"github.com/recall-ai/recall/pkg/models"
	"github.com/recall-ai/recall/pkg/provider/openai"
	"github.com/recall-ai/recall/pkg/tracker"
)

// fakeCompleter counts remote calls and returns a canned response or error.
type fakeCompleter struct {
	calls    int
	response string
	err      error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (openai.Result, error) {
	f.calls++
	if f.err != nil {
		return openai.Result{}, f.err
	}
	return openai.Result{
		Text:  f.response,
		Model: "gpt-4o-mini",
		Usage: &models.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (f *fakeCompleter) Model() string { return "gpt-4o-mini" }

type fixture struct {
	client    *Client
	completer *fakeCompleter
	cache     *file.Store
	logDir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")

	log, err := calllog.New(logDir)
	require.NoError(t, err)

	completer := &fakeCompleter{response: "the answer"}
	cache := file.New(filepath.Join(dir, "llm_cache.json"))

	return &fixture{
		client:    New(completer, cache, log),
		completer: completer,
		cache:     cache,
		logDir:    logDir,
	}
}

func (f *fixture) logContents(t *testing.T) string {
	t.Helper()
	name := "llm_calls_" + time.Now().Format("20060102") + ".log"
	data, err := os.ReadFile(filepath.Join(f.logDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestMissCallsRemoteAndStores(t *testing.T) {
	f := newFixture(t)

	res, err := f.client.CompleteDetailed(context.Background(), "what is Go?")
	require.NoError(t, err)

	assert.Equal(t, "the answer", res.Text)
	assert.Equal(t, models.CacheMissStored, res.Outcome)
	assert.Equal(t, 1, f.completer.calls, "exactly one remote call")

	cached, ok, err := f.cache.Lookup("what is Go?")
	require.NoError(t, err)
	require.True(t, ok, "response persisted to cache")
	assert.Equal(t, "the answer", cached)
}

func TestHitSkipsRemote(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Put("what is Go?", "cached answer"))

	res, err := f.client.CompleteDetailed(context.Background(), "what is Go?")
	require.NoError(t, err)

	assert.Equal(t, "cached answer", res.Text)
	assert.Equal(t, models.CacheHit, res.Outcome)
	assert.Zero(t, f.completer.calls, "zero remote calls on hit")
}

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)

	first, err := f.client.Complete(context.Background(), "p")
	require.NoError(t, err)

	second, err := f.client.Complete(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.completer.calls, "second call served from cache")
}

func TestWithoutCacheAlwaysCallsRemote(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Put("p", "stale cached answer"))

	res, err := f.client.CompleteDetailed(context.Background(), "p", WithoutCache())
	require.NoError(t, err)

	assert.Equal(t, "the answer", res.Text, "cache is not read")
	assert.Equal(t, models.CacheBypassed, res.Outcome)
	assert.Equal(t, 1, f.completer.calls)

	// The store was not touched either.
	cached, ok, err := f.cache.Lookup("p")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "stale cached answer", cached)
}

func TestRemoteErrorIsReturnedUnchanged(t *testing.T) {
	f := newFixture(t)
	remoteErr := errors.New("upstream exploded")
	f.completer.err = remoteErr

	_, err := f.client.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, remoteErr)

	// No cache write happened.
	_, ok, lookupErr := f.cache.Lookup("p")
	require.NoError(t, lookupErr)
	assert.False(t, ok)

	assert.Contains(t, f.logContents(t), "ERROR - LLM call failed")
}

func TestCorruptCacheProceedsAsEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.cache.Path(), []byte("{broken"), 0644))

	res, err := f.client.CompleteDetailed(context.Background(), "p")
	require.NoError(t, err, "corrupt cache must not crash the call")

	assert.Equal(t, "the answer", res.Text)
	assert.Equal(t, 1, f.completer.calls)
	assert.Contains(t, f.logContents(t), "WARNING - failed to load cache")
}

func TestStoreFailureStillReturnsResponse(t *testing.T) {
	dir := t.TempDir()
	log, err := calllog.New(filepath.Join(dir, "logs"))
	require.NoError(t, err)

	// Cache path points into a missing directory, so every write fails.
	cache := file.New(filepath.Join(dir, "missing", "llm_cache.json"))
	completer := &fakeCompleter{response: "still delivered"}
	c := New(completer, cache, log)

	res, err := c.CompleteDetailed(context.Background(), "p")
	require.NoError(t, err, "store failure is swallowed")

	assert.Equal(t, "still delivered", res.Text)
	assert.Equal(t, models.CacheMissStoreFailed, res.Outcome)
}

func TestLogsPromptAndResponse(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Complete(context.Background(), "log me")
	require.NoError(t, err)

	content := f.logContents(t)
	assert.Contains(t, content, "]: log me")
	assert.Contains(t, content, "]: the answer")

	// A cache hit logs the cached response too.
	_, err = f.client.Complete(context.Background(), "log me")
	require.NoError(t, err)
	assert.Contains(t, f.logContents(t), "RESPONSE")
}

func TestTrackerRecordsOutcomes(t *testing.T) {
	f := newFixture(t)
	tr, err := tracker.New(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })

	c := New(f.completer, f.cache, mustLog(t, f.logDir), WithTracker(tr))

	_, err = c.Complete(context.Background(), "p") // miss
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "p") // hit
	require.NoError(t, err)

	summaries, err := tr.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byOutcome := map[string]models.UsageSummary{}
	for _, s := range summaries {
		byOutcome[s.Outcome] = s
	}
	assert.Equal(t, 1, byOutcome["miss_stored"].RequestCount)
	assert.Equal(t, 15, byOutcome["miss_stored"].TotalTokens)
	assert.Equal(t, 1, byOutcome["hit"].RequestCount)
}

func mustLog(t *testing.T, dir string) *calllog.Logger {
	t.Helper()
	l, err := calllog.New(dir)
	require.NoError(t, err)
	return l
}
