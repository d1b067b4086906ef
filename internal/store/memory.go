package store

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/skillsense/internal/types"
)

// MemoryStore implements Store in process memory. It backs CLI runs
// without a database and the test suite. All operations on one profile
// are serialized by the store mutex.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]*types.SkillProfile // by profile id
	byResume map[string]string              // resume id -> profile id
	audits   map[string][]types.AuditRecord // by profile id
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*types.SkillProfile),
		byResume: make(map[string]string),
		audits:   make(map[string][]types.AuditRecord),
	}
}

// CreateProfile persists a profile, idempotently per resume id
func (s *MemoryStore) CreateProfile(_ context.Context, profile *types.SkillProfile) (*types.SkillProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byResume[profile.ResumeID]; ok {
		return copyProfile(s.profiles[existingID]), nil
	}

	stored := copyProfile(profile)
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.profiles[stored.ProfileID] = stored
	s.byResume[stored.ResumeID] = stored.ProfileID
	return copyProfile(stored), nil
}

// GetProfile returns a profile by id, or nil when absent
func (s *MemoryStore) GetProfile(_ context.Context, profileID string) (*types.SkillProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfile(s.profiles[profileID]), nil
}

// GetProfileByResume returns a profile by resume id, or nil when absent
func (s *MemoryStore) GetProfileByResume(_ context.Context, resumeID string) (*types.SkillProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profileID, ok := s.byResume[resumeID]; ok {
		return copyProfile(s.profiles[profileID]), nil
	}
	return nil, nil
}

// UpdateProfileSkills replaces a profile's skill list
func (s *MemoryStore) UpdateProfileSkills(_ context.Context, profileID string, skills []types.SkillItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[profileID]
	if !ok {
		return &NotFoundError{ProfileID: profileID}
	}
	profile.Skills = append([]types.SkillItem(nil), skills...)
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendAudit records one lifecycle transition
func (s *MemoryStore) AppendAudit(_ context.Context, record *types.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits[record.ProfileID] = append(s.audits[record.ProfileID], *record)
	return nil
}

// ListAudit returns a profile's audit history, oldest first
func (s *MemoryStore) ListAudit(_ context.Context, profileID string) ([]types.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.AuditRecord(nil), s.audits[profileID]...), nil
}

// NotFoundError reports an update against an unknown profile
type NotFoundError struct {
	ProfileID string
}

func (e *NotFoundError) Error() string {
	return "profile not found: " + e.ProfileID
}

func copyProfile(profile *types.SkillProfile) *types.SkillProfile {
	if profile == nil {
		return nil
	}
	clone := *profile
	clone.Skills = append([]types.SkillItem(nil), profile.Skills...)
	if profile.PrivacySettings != nil {
		clone.PrivacySettings = make(map[string]bool, len(profile.PrivacySettings))
		for k, v := range profile.PrivacySettings {
			clone.PrivacySettings[k] = v
		}
	}
	return &clone
}
