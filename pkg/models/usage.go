package models

import "time"

// Usage represents token usage from an LLM response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageRecord tracks a single completion call.
type UsageRecord struct {
	ID               int64        `json:"id"`
	RequestID        string       `json:"request_id"`
	Model            string       `json:"model"`
	Outcome          CacheOutcome `json:"cache_outcome"`
	PromptTokens     int          `json:"prompt_tokens"`
	CompletionTokens int          `json:"completion_tokens"`
	TotalTokens      int          `json:"total_tokens"`
	LatencyMs        int64        `json:"latency_ms"`
	CreatedAt        time.Time    `json:"created_at"`
}

// UsageSummary aggregates usage across calls, grouped by model and cache outcome.
type UsageSummary struct {
	Model           string `json:"model"`
	Outcome         string `json:"cache_outcome"`
	RequestCount    int    `json:"request_count"`
	TotalPrompt     int    `json:"total_prompt"`
	TotalCompletion int    `json:"total_completion"`
	TotalTokens     int    `json:"total_tokens"`
}
