package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidSuggestion(t *testing.T) *AgentSuggestion {
	t.Helper()
	s, err := NewAgentSuggestion(
		7, "billing", []string{"kb-refunds"}, "Please check the billing portal.",
		0.61, 0.61, false,
		ModelInfo{Provider: "acme", Model: "classifier-lg", Attempts: 1},
	)
	require.NoError(t, err)
	return s
}

func TestNewAgentSuggestion_Validation(t *testing.T) {
	t.Run("zero ticket id", func(t *testing.T) {
		_, err := NewAgentSuggestion(0, "billing", nil, "d", 0.5, 0.5, false, ModelInfo{})
		assert.Error(t, err)
	})

	t.Run("empty category", func(t *testing.T) {
		_, err := NewAgentSuggestion(7, "", nil, "d", 0.5, 0.5, false, ModelInfo{})
		assert.Error(t, err)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		_, err := NewAgentSuggestion(7, "billing", nil, "d", 1.2, 1.2, false, ModelInfo{})
		assert.Error(t, err)

		_, err = NewAgentSuggestion(7, "billing", nil, "d", -0.1, -0.1, false, ModelInfo{})
		assert.Error(t, err)
	})

	t.Run("nil citations become empty slice", func(t *testing.T) {
		s, err := NewAgentSuggestion(7, "billing", nil, "d", 0.5, 0.5, false, ModelInfo{})
		require.NoError(t, err)
		assert.NotNil(t, s.Citations())
		assert.Empty(t, s.Citations())
	})
}

func TestMarkReviewed_FirstReviewer(t *testing.T) {
	s := newValidSuggestion(t)

	require.NoError(t, s.MarkReviewed(ReviewAccepted, 30))

	assert.True(t, s.Reviewed())
	assert.Equal(t, ReviewAccepted, s.ReviewResult())
	require.NotNil(t, s.ReviewerID())
	assert.Equal(t, uint(30), *s.ReviewerID())
	assert.NotNil(t, s.ReviewedAt())
}

func TestMarkReviewed_SecondAgentLoses(t *testing.T) {
	s := newValidSuggestion(t)
	require.NoError(t, s.MarkReviewed(ReviewAccepted, 30))

	err := s.MarkReviewed(ReviewRejected, 31)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")

	// Decision is untouched.
	assert.Equal(t, ReviewAccepted, s.ReviewResult())
	assert.Equal(t, uint(30), *s.ReviewerID())
}

func TestMarkReviewed_SameAgentIdempotent(t *testing.T) {
	s := newValidSuggestion(t)
	require.NoError(t, s.MarkReviewed(ReviewRejected, 30))

	assert.NoError(t, s.MarkReviewed(ReviewRejected, 30))
	assert.Error(t, s.MarkReviewed(ReviewAccepted, 30))
}

func TestMarkReviewed_Rejections(t *testing.T) {
	s := newValidSuggestion(t)

	assert.Error(t, s.MarkReviewed(ReviewNone, 30))
	assert.Error(t, s.MarkReviewed(ReviewResult("maybe"), 30))
	assert.Error(t, s.MarkReviewed(ReviewAccepted, 0))
}

func TestReplaceDraft(t *testing.T) {
	s := newValidSuggestion(t)

	require.NoError(t, s.ReplaceDraft("Corrected reply text."))
	assert.Equal(t, "Corrected reply text.", s.DraftReply())

	assert.Error(t, s.ReplaceDraft(""))
}
