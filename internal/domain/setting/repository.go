package setting

import "context"

type Repository interface {
	// GetOrCreateDefault returns the singleton settings document, creating
	// it with the given defaults when none exists yet.
	GetOrCreateDefault(ctx context.Context, defaults *TriageSettings) (*TriageSettings, error)

	Update(ctx context.Context, s *TriageSettings) error
}
