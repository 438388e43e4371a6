// Package triage defines the orchestrator's port to the classifier
// service and the wire types of its /triage contract.
package triage

import "context"

// TicketInput is the ticket text handed to the classifier.
type TicketInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// KBItem is one published knowledge-base article in the snapshot the
// classifier sees. The snapshot is the only KB data it gets.
type KBItem struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// Request is the POST /triage payload.
type Request struct {
	TraceID string      `json:"traceId"`
	Ticket  TicketInput `json:"ticket"`
	KB      []KBItem    `json:"kb"`
}

// StepLog is one pipeline step the classifier reports back. Steps are
// re-persisted as system-actor audit entries.
type StepLog struct {
	Action string                 `json:"action"`
	Meta   map[string]interface{} `json:"meta"`
}

// ModelInfo is the classifier's self-reported provenance metadata.
type ModelInfo struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion string `json:"promptVersion"`
}

// Quality carries the classifier's own quality metrics, kept as audit
// metadata only.
type Quality struct {
	RetrievalQuality float64 `json:"retrievalQuality"`
	DraftQuality     float64 `json:"draftQuality"`
	CitationCount    int     `json:"citationCount"`
	ResponseLength   int     `json:"responseLength"`
	KBCoverage       float64 `json:"kbCoverage"`
}

// Response is the classifier's triage result.
type Response struct {
	PredictedCategory  string    `json:"predictedCategory" validate:"required"`
	DraftReply         string    `json:"draftReply"`
	Citations          []string  `json:"citations"`
	Confidence         float64   `json:"confidence" validate:"gte=0,lte=1"`
	OriginalConfidence *float64  `json:"originalConfidence,omitempty"`
	ModelInfo          ModelInfo `json:"modelInfo"`
	StepLogs           []StepLog `json:"stepLogs"`
	Quality            *Quality  `json:"quality,omitempty"`
}

// Classifier is the outbound port to the classification service. One call
// is one attempt; the orchestrator owns the retry policy so every attempt
// can be audited.
type Classifier interface {
	Triage(ctx context.Context, req *Request) (*Response, error)
}
