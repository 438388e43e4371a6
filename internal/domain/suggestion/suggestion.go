// Package suggestion holds the persisted output of one triage run: the
// predicted category, the draft reply with its citations, the confidence
// score, and the eventual review outcome.
package suggestion

import (
	"fmt"
	"time"
)

type ReviewResult string

const (
	ReviewAccepted ReviewResult = "accepted"
	ReviewRejected ReviewResult = "rejected"
	ReviewNone     ReviewResult = ""
)

func (r ReviewResult) IsValid() bool {
	return r == ReviewAccepted || r == ReviewRejected || r == ReviewNone
}

func (r ReviewResult) String() string {
	return string(r)
}

// ModelInfo carries provenance metadata about the classifier run.
type ModelInfo struct {
	Provider      string
	Model         string
	PromptVersion string
	LatencyMs     int64
	Attempts      int
}

type AgentSuggestion struct {
	id                 uint
	ticketID           uint
	predictedCategory  string
	citations          []string
	draftReply         string
	confidence         float64
	originalConfidence float64
	autoClosed         bool
	modelInfo          ModelInfo
	reviewed           bool
	reviewResult       ReviewResult
	reviewerID         *uint
	reviewedAt         *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func NewAgentSuggestion(
	ticketID uint,
	predictedCategory string,
	citations []string,
	draftReply string,
	confidence float64,
	originalConfidence float64,
	autoClosed bool,
	modelInfo ModelInfo,
) (*AgentSuggestion, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if predictedCategory == "" {
		return nil, fmt.Errorf("predicted category is required")
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("confidence must be between 0 and 1, got %v", confidence)
	}
	if citations == nil {
		citations = []string{}
	}

	now := time.Now()
	return &AgentSuggestion{
		ticketID:           ticketID,
		predictedCategory:  predictedCategory,
		citations:          citations,
		draftReply:         draftReply,
		confidence:         confidence,
		originalConfidence: originalConfidence,
		autoClosed:         autoClosed,
		modelInfo:          modelInfo,
		reviewResult:       ReviewNone,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructAgentSuggestion(
	id uint,
	ticketID uint,
	predictedCategory string,
	citations []string,
	draftReply string,
	confidence float64,
	originalConfidence float64,
	autoClosed bool,
	modelInfo ModelInfo,
	reviewed bool,
	reviewResult ReviewResult,
	reviewerID *uint,
	reviewedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*AgentSuggestion, error) {
	if id == 0 {
		return nil, fmt.Errorf("suggestion ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !reviewResult.IsValid() {
		return nil, fmt.Errorf("invalid review result: %s", reviewResult)
	}
	if citations == nil {
		citations = []string{}
	}

	return &AgentSuggestion{
		id:                 id,
		ticketID:           ticketID,
		predictedCategory:  predictedCategory,
		citations:          citations,
		draftReply:         draftReply,
		confidence:         confidence,
		originalConfidence: originalConfidence,
		autoClosed:         autoClosed,
		modelInfo:          modelInfo,
		reviewed:           reviewed,
		reviewResult:       reviewResult,
		reviewerID:         reviewerID,
		reviewedAt:         reviewedAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (s *AgentSuggestion) ID() uint {
	return s.id
}

func (s *AgentSuggestion) TicketID() uint {
	return s.ticketID
}

func (s *AgentSuggestion) PredictedCategory() string {
	return s.predictedCategory
}

func (s *AgentSuggestion) Citations() []string {
	out := make([]string, len(s.citations))
	copy(out, s.citations)
	return out
}

func (s *AgentSuggestion) DraftReply() string {
	return s.draftReply
}

func (s *AgentSuggestion) Confidence() float64 {
	return s.confidence
}

func (s *AgentSuggestion) OriginalConfidence() float64 {
	return s.originalConfidence
}

func (s *AgentSuggestion) AutoClosed() bool {
	return s.autoClosed
}

func (s *AgentSuggestion) ModelInfo() ModelInfo {
	return s.modelInfo
}

func (s *AgentSuggestion) Reviewed() bool {
	return s.reviewed
}

func (s *AgentSuggestion) ReviewResult() ReviewResult {
	return s.reviewResult
}

func (s *AgentSuggestion) ReviewerID() *uint {
	return s.reviewerID
}

func (s *AgentSuggestion) ReviewedAt() *time.Time {
	return s.reviewedAt
}

func (s *AgentSuggestion) CreatedAt() time.Time {
	return s.createdAt
}

func (s *AgentSuggestion) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *AgentSuggestion) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("suggestion ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("suggestion ID cannot be zero")
	}
	s.id = id
	return nil
}

// MarkReviewed records the review outcome. A reviewed suggestion may only
// be re-marked by the same reviewer with the same result (an edit following
// an earlier accept); anything else is a conflict handled by the caller.
func (s *AgentSuggestion) MarkReviewed(result ReviewResult, reviewerID uint) error {
	if result != ReviewAccepted && result != ReviewRejected {
		return fmt.Errorf("invalid review result: %q", result)
	}
	if reviewerID == 0 {
		return fmt.Errorf("reviewer ID is required")
	}
	if s.reviewed {
		if s.reviewerID == nil || *s.reviewerID != reviewerID {
			return fmt.Errorf("suggestion already reviewed by another agent")
		}
		if s.reviewResult != result {
			return fmt.Errorf("review result is immutable once set")
		}
	}

	now := time.Now()
	s.reviewed = true
	s.reviewResult = result
	s.reviewerID = &reviewerID
	s.reviewedAt = &now
	s.updatedAt = now

	return nil
}

// ReplaceDraft overwrites the stored draft with agent-edited text. The audit
// log retains the original for traceability.
func (s *AgentSuggestion) ReplaceDraft(editedReply string) error {
	if len(editedReply) == 0 {
		return fmt.Errorf("edited reply cannot be empty")
	}
	s.draftReply = editedReply
	s.updatedAt = time.Now()
	return nil
}
