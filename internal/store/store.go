// Package store provides persistence for skill profiles and lifecycle
// audit records, with a PostgreSQL implementation and an in-memory one.
package store

import (
	"context"

	"github.com/jonathan/skillsense/internal/types"
)

// Store is the storage collaborator for skill profiles. Implementations
// guarantee that skill-list updates on one profile are atomic with respect
// to concurrent updates on the same profile.
type Store interface {
	// CreateProfile persists a profile. Creation is idempotent per resume:
	// when a profile for the same resume id already exists, the existing
	// profile is returned unchanged.
	CreateProfile(ctx context.Context, profile *types.SkillProfile) (*types.SkillProfile, error)
	// GetProfile returns a profile by id, or nil when absent
	GetProfile(ctx context.Context, profileID string) (*types.SkillProfile, error)
	// GetProfileByResume returns a profile by resume id, or nil when absent
	GetProfileByResume(ctx context.Context, resumeID string) (*types.SkillProfile, error)
	// UpdateProfileSkills replaces a profile's skill list
	UpdateProfileSkills(ctx context.Context, profileID string, skills []types.SkillItem) error
	// AppendAudit records one lifecycle transition
	AppendAudit(ctx context.Context, record *types.AuditRecord) error
	// ListAudit returns a profile's audit history, oldest first
	ListAudit(ctx context.Context, profileID string) ([]types.AuditRecord, error)
}
