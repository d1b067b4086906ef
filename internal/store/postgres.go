package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillsense/internal/types"
)

// PostgresStore implements Store on a PostgreSQL connection pool.
// Skills and audit snapshots are stored as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateProfile persists a profile, idempotently per resume id. The insert
// races safely: on conflict the already-stored profile wins and is
// returned.
func (s *PostgresStore) CreateProfile(ctx context.Context, profile *types.SkillProfile) (*types.SkillProfile, error) {
	existing, err := s.GetProfileByResume(ctx, profile.ResumeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	privacyJSON, err := json.Marshal(profile.PrivacySettings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal privacy settings: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO skill_profiles (profile_id, resume_id, skills, privacy_settings)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (resume_id) DO NOTHING`,
		profile.ProfileID, profile.ResumeID, skillsJSON, privacyJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.GetProfileByResume(ctx, profile.ResumeID)
}

// GetProfile retrieves a profile by id, or nil when absent
func (s *PostgresStore) GetProfile(ctx context.Context, profileID string) (*types.SkillProfile, error) {
	return s.getProfile(ctx,
		`SELECT profile_id, resume_id, skills, privacy_settings, created_at, updated_at
		 FROM skill_profiles WHERE profile_id = $1`, profileID)
}

// GetProfileByResume retrieves a profile by resume id, or nil when absent
func (s *PostgresStore) GetProfileByResume(ctx context.Context, resumeID string) (*types.SkillProfile, error) {
	return s.getProfile(ctx,
		`SELECT profile_id, resume_id, skills, privacy_settings, created_at, updated_at
		 FROM skill_profiles WHERE resume_id = $1`, resumeID)
}

func (s *PostgresStore) getProfile(ctx context.Context, query, arg string) (*types.SkillProfile, error) {
	var profile types.SkillProfile
	var skillsJSON, privacyJSON []byte

	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&profile.ProfileID, &profile.ResumeID, &skillsJSON, &privacyJSON,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	if len(privacyJSON) > 0 {
		if err := json.Unmarshal(privacyJSON, &profile.PrivacySettings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal privacy settings: %w", err)
		}
	}

	return &profile, nil
}

// UpdateProfileSkills replaces a profile's skill list in one statement
func (s *PostgresStore) UpdateProfileSkills(ctx context.Context, profileID string, skills []types.SkillItem) error {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE skill_profiles SET skills = $1, updated_at = NOW() WHERE profile_id = $2`,
		skillsJSON, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile skills: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", profileID)
	}
	return nil
}

// AppendAudit records one lifecycle transition
func (s *PostgresStore) AppendAudit(ctx context.Context, record *types.AuditRecord) error {
	previousJSON, err := json.Marshal(record.Previous)
	if err != nil {
		return fmt.Errorf("failed to marshal previous state: %w", err)
	}
	newJSON, err := json.Marshal(record.New)
	if err != nil {
		return fmt.Errorf("failed to marshal new state: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO skill_audit_logs (id, profile_id, skill_name, action, previous_value, new_value)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.ProfileID, record.SkillName, record.Action, previousJSON, newJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// ListAudit returns a profile's audit history, oldest first
func (s *PostgresStore) ListAudit(ctx context.Context, profileID string) ([]types.AuditRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, profile_id, skill_name, action, previous_value, new_value, created_at
		 FROM skill_audit_logs WHERE profile_id = $1 ORDER BY created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var records []types.AuditRecord
	for rows.Next() {
		var record types.AuditRecord
		var previousJSON, newJSON []byte
		if err := rows.Scan(&record.ID, &record.ProfileID, &record.SkillName,
			&record.Action, &previousJSON, &newJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if len(previousJSON) > 0 {
			_ = json.Unmarshal(previousJSON, &record.Previous)
		}
		if len(newJSON) > 0 {
			_ = json.Unmarshal(newJSON, &record.New)
		}
		records = append(records, record)
	}
	return records, nil
}
