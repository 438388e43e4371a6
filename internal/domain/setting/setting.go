// Package setting holds the singleton triage configuration document: the
// auto-close switch, the confidence threshold, and the SLA window. It is
// read once per triage run and mutated only through admin settings actions.
package setting

import (
	"fmt"
	"time"
)

const (
	DefaultConfidenceThreshold = 0.78
	DefaultSLAHours            = 24
)

type TriageSettings struct {
	id                  uint
	autoCloseEnabled    bool
	confidenceThreshold float64
	slaHours            int
	updatedBy           uint
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

// NewDefaultTriageSettings builds the settings document used when none has
// been persisted yet.
func NewDefaultTriageSettings(autoCloseEnabled bool) *TriageSettings {
	now := time.Now()
	return &TriageSettings{
		autoCloseEnabled:    autoCloseEnabled,
		confidenceThreshold: DefaultConfidenceThreshold,
		slaHours:            DefaultSLAHours,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}
}

func NewTriageSettings(autoCloseEnabled bool, confidenceThreshold float64, slaHours int) (*TriageSettings, error) {
	if confidenceThreshold < 0 || confidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence threshold must be between 0 and 1, got %v", confidenceThreshold)
	}
	if slaHours < 1 {
		return nil, fmt.Errorf("SLA hours must be at least 1, got %d", slaHours)
	}

	now := time.Now()
	return &TriageSettings{
		autoCloseEnabled:    autoCloseEnabled,
		confidenceThreshold: confidenceThreshold,
		slaHours:            slaHours,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructTriageSettings(
	id uint,
	autoCloseEnabled bool,
	confidenceThreshold float64,
	slaHours int,
	updatedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) (*TriageSettings, error) {
	if id == 0 {
		return nil, fmt.Errorf("settings ID cannot be zero")
	}
	if confidenceThreshold < 0 || confidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence threshold must be between 0 and 1, got %v", confidenceThreshold)
	}
	if slaHours < 1 {
		return nil, fmt.Errorf("SLA hours must be at least 1, got %d", slaHours)
	}

	return &TriageSettings{
		id:                  id,
		autoCloseEnabled:    autoCloseEnabled,
		confidenceThreshold: confidenceThreshold,
		slaHours:            slaHours,
		updatedBy:           updatedBy,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (s *TriageSettings) ID() uint {
	return s.id
}

func (s *TriageSettings) AutoCloseEnabled() bool {
	return s.autoCloseEnabled
}

func (s *TriageSettings) ConfidenceThreshold() float64 {
	return s.confidenceThreshold
}

func (s *TriageSettings) SLAHours() int {
	return s.slaHours
}

func (s *TriageSettings) UpdatedBy() uint {
	return s.updatedBy
}

func (s *TriageSettings) Version() int {
	return s.version
}

func (s *TriageSettings) CreatedAt() time.Time {
	return s.createdAt
}

func (s *TriageSettings) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *TriageSettings) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("settings ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("settings ID cannot be zero")
	}
	s.id = id
	return nil
}

// ShouldAutoClose applies the closed decision rule: auto-close requires the
// switch on and confidence at or above the threshold. Ties at exactly the
// threshold auto-close.
func (s *TriageSettings) ShouldAutoClose(confidence float64) bool {
	return s.autoCloseEnabled && confidence >= s.confidenceThreshold
}

// Update replaces the mutable fields through the admin settings action.
func (s *TriageSettings) Update(autoCloseEnabled bool, confidenceThreshold float64, slaHours int, updatedBy uint) error {
	if confidenceThreshold < 0 || confidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be between 0 and 1, got %v", confidenceThreshold)
	}
	if slaHours < 1 {
		return fmt.Errorf("SLA hours must be at least 1, got %d", slaHours)
	}

	s.autoCloseEnabled = autoCloseEnabled
	s.confidenceThreshold = confidenceThreshold
	s.slaHours = slaHours
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = time.Now()

	return nil
}
