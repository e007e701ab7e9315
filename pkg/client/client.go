// Package client implements the prompt completion client: forward a prompt
// to the remote model, serve repeats from the on-disk cache, and log every
// request/response pair to the dated call log.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recall-ai/recall/pkg/cache/file"
	"github.com/recall-ai/recall/pkg/calllog"
	"github.com/recall-ai/recall/pkg/models"
	"github.com/recall-ai/recall/pkg/provider/openai"
	"github.com/recall-ai/recall/pkg/tracker"
)

// Completer issues a single remote completion call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (openai.Result, error)
	Model() string
}

// Client completes prompts with best-effort caching. All state is held
// explicitly: cache file, call log, completer, optional usage tracker.
// There are no package-level singletons, so independent clients can run
// against isolated paths.
type Client struct {
	completer Completer
	cache     *file.Store
	log       *calllog.Logger
	tracker   tracker.Tracker
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTracker records per-call usage in the given tracker. Tracker failures
// never affect the completion result.
func WithTracker(t tracker.Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

// New creates a Client from its dependencies.
func New(completer Completer, cache *file.Store, log *calllog.Logger, opts ...Option) *Client {
	c := &Client{
		completer: completer,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CallOption configures a single call.
type CallOption func(*callSettings)

type callSettings struct {
	useCache bool
}

// WithoutCache disables the cache for one call: no lookup, no store, one
// remote call regardless of prior cache contents.
func WithoutCache() CallOption {
	return func(s *callSettings) { s.useCache = false }
}

// Complete returns the completion text for the prompt.
func (c *Client) Complete(ctx context.Context, prompt string, opts ...CallOption) (string, error) {
	res, err := c.CompleteDetailed(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// CompleteDetailed is Complete plus the cache outcome, usage and latency
// for the call.
//
// The sequence is fixed: log the prompt, maybe return from cache, call the
// remote API, log the response, maybe persist to cache, return. Cache and
// log I/O failures are recovered locally and never surface to the caller;
// a remote failure is logged and returned unchanged with no cache write.
func (c *Client) CompleteDetailed(ctx context.Context, prompt string, opts ...CallOption) (models.Completion, error) {
	settings := callSettings{useCache: true}
	for _, opt := range opts {
		opt(&settings)
	}

	requestID := uuid.New().String()
	start := c.now()

	// The prompt is logged before any cache lookup or network call.
	// Call-log write errors are swallowed throughout: a broken log file
	// never fails a completion.
	_ = c.log.Prompt(requestID, prompt)

	if settings.useCache {
		cached, ok, err := c.cache.Lookup(prompt)
		if err != nil {
			// Corrupt or unreadable store reads as empty.
			_ = c.log.Warn(fmt.Sprintf("failed to load cache, starting with empty cache: %v", err))
		}
		if ok {
			_ = c.log.Response(requestID, cached)
			result := models.Completion{
				RequestID: requestID,
				Text:      cached,
				Model:     c.completer.Model(),
				Outcome:   models.CacheHit,
				LatencyMs: c.now().Sub(start).Milliseconds(),
				CreatedAt: start.UTC(),
			}
			c.record(ctx, result)
			return result, nil
		}
	}

	remote, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		_ = c.log.Error(fmt.Sprintf("LLM call failed: %v", err))
		return models.Completion{}, err
	}

	_ = c.log.Response(requestID, remote.Text)

	outcome := models.CacheBypassed
	if settings.useCache {
		if err := c.cache.Put(prompt, remote.Text); err != nil {
			_ = c.log.Error(fmt.Sprintf("failed to save cache: %v", err))
			outcome = models.CacheMissStoreFailed
		} else {
			outcome = models.CacheMissStored
		}
	}

	result := models.Completion{
		RequestID: requestID,
		Text:      remote.Text,
		Model:     remote.Model,
		Outcome:   outcome,
		Usage:     remote.Usage,
		LatencyMs: c.now().Sub(start).Milliseconds(),
		CreatedAt: start.UTC(),
	}
	c.record(ctx, result)
	return result, nil
}

// record stores usage in the tracker, best-effort.
func (c *Client) record(ctx context.Context, res models.Completion) {
	if c.tracker == nil {
		return
	}
	rec := models.UsageRecord{
		RequestID: res.RequestID,
		Model:     res.Model,
		Outcome:   res.Outcome,
		LatencyMs: res.LatencyMs,
		CreatedAt: res.CreatedAt,
	}
	if res.Usage != nil {
		rec.PromptTokens = res.Usage.PromptTokens
		rec.CompletionTokens = res.Usage.CompletionTokens
		rec.TotalTokens = res.Usage.TotalTokens
	}
	if err := c.tracker.Record(ctx, rec); err != nil {
		_ = c.log.Warn(fmt.Sprintf("failed to record usage: %v", err))
	}
}
