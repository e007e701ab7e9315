package models

import "time"

// CacheOutcome describes what the best-effort cache did for a single call.
type CacheOutcome string

const (
	// CacheHit means the completion came from the on-disk store and no
	// remote call was made.
	CacheHit CacheOutcome = "hit"
	// CacheMissStored means the remote response was persisted to the store.
	CacheMissStored CacheOutcome = "miss_stored"
	// CacheMissStoreFailed means the remote call succeeded but the store
	// write failed. The completion is still valid.
	CacheMissStoreFailed CacheOutcome = "miss_store_failed"
	// CacheBypassed means caching was disabled for the call.
	CacheBypassed CacheOutcome = "bypassed"
)

// Completion is the detailed result of a single prompt completion.
type Completion struct {
	RequestID string       `json:"request_id"`
	Text      string       `json:"text"`
	Model     string       `json:"model"`
	Outcome   CacheOutcome `json:"cache_outcome"`
	Usage     *Usage       `json:"usage,omitempty"`
	LatencyMs int64        `json:"latency_ms"`
	CreatedAt time.Time    `json:"created_at"`
}

// CacheStats reports the state of the on-disk prompt cache.
type CacheStats struct {
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"size_bytes"`
}
