package model

import "time"

// Status is the lifecycle state of the feed.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// FeedState is the observable state handed to the view layer.
type FeedState struct {
	Status       Status     `json:"status"`
	Locale       Locale     `json:"locale"`
	Direction    Direction  `json:"direction"`
	Category     Category   `json:"category"`
	Articles     []Article  `json:"articles"`
	Citations    []Citation `json:"citations"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	Generation   uint64     `json:"generation"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FeedRequest is what the controller asks the provider for.
type FeedRequest struct {
	Locale   Locale
	Category Category
	Sources  []string
}

// GroundingChunk is a retrieval source returned by the provider. Web is nil
// for chunks that do not reference a web page.
type GroundingChunk struct {
	Web *Citation
}

// GroundingSupport ties a segment of the generated text to the chunks that
// back it.
type GroundingSupport struct {
	Text         string
	ChunkIndices []int
}

// ProviderResponse is the raw outcome of a provider call, before validation.
type ProviderResponse struct {
	Text     string
	Chunks   []GroundingChunk
	Supports []GroundingSupport
}
