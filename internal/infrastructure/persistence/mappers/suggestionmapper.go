package mappers

import (
	"encoding/json"
	"time"

	"triago/internal/domain/suggestion"
	"triago/internal/infrastructure/persistence/models"
)

type SuggestionMapper interface {
	ToModel(s *suggestion.AgentSuggestion) *models.AgentSuggestionModel
	ToDomain(model *models.AgentSuggestionModel) (*suggestion.AgentSuggestion, error)
}

type SuggestionMapperImpl struct{}

func NewSuggestionMapper() SuggestionMapper {
	return &SuggestionMapperImpl{}
}

func (m *SuggestionMapperImpl) ToModel(s *suggestion.AgentSuggestion) *models.AgentSuggestionModel {
	info := s.ModelInfo()
	model := &models.AgentSuggestionModel{
		ID:                 s.ID(),
		TicketID:           s.TicketID(),
		PredictedCategory:  s.PredictedCategory(),
		DraftReply:         s.DraftReply(),
		Confidence:         s.Confidence(),
		OriginalConfidence: s.OriginalConfidence(),
		AutoClosed:         s.AutoClosed(),
		ModelProvider:      info.Provider,
		ModelName:          info.Model,
		PromptVersion:      info.PromptVersion,
		LatencyMs:          info.LatencyMs,
		Attempts:           info.Attempts,
		Reviewed:           s.Reviewed(),
		ReviewResult:       string(s.ReviewResult()),
		ReviewerID:         s.ReviewerID(),
		CreatedAt:          s.CreatedAt().UnixMilli(),
		UpdatedAt:          s.UpdatedAt().UnixMilli(),
	}

	if len(s.Citations()) > 0 {
		citationsJSON, _ := json.Marshal(s.Citations())
		model.Citations = string(citationsJSON)
	}

	if s.ReviewedAt() != nil {
		reviewed := s.ReviewedAt().UnixMilli()
		model.ReviewedAt = &reviewed
	}

	return model
}

func (m *SuggestionMapperImpl) ToDomain(model *models.AgentSuggestionModel) (*suggestion.AgentSuggestion, error) {
	var citations []string
	if model.Citations != "" {
		_ = json.Unmarshal([]byte(model.Citations), &citations)
	}

	var reviewedAt *time.Time
	if model.ReviewedAt != nil {
		t := time.UnixMilli(*model.ReviewedAt)
		reviewedAt = &t
	}

	return suggestion.ReconstructAgentSuggestion(
		model.ID,
		model.TicketID,
		model.PredictedCategory,
		citations,
		model.DraftReply,
		model.Confidence,
		model.OriginalConfidence,
		model.AutoClosed,
		suggestion.ModelInfo{
			Provider:      model.ModelProvider,
			Model:         model.ModelName,
			PromptVersion: model.PromptVersion,
			LatencyMs:     model.LatencyMs,
			Attempts:      model.Attempts,
		},
		model.Reviewed,
		suggestion.ReviewResult(model.ReviewResult),
		model.ReviewerID,
		reviewedAt,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
