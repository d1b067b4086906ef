// Package lifecycle implements the accept/reject/edit state machine for
// skills in a profile, with audit history.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillsense/internal/store"
	"github.com/jonathan/skillsense/internal/types"
)

// Service applies user actions to persisted skill profiles. Not-found and
// invalid inputs are routine outcomes and are reported in the result, not
// as errors; only storage failures surface as failed results too, with a
// logged cause.
type Service struct {
	store    store.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a lifecycle service over the given store
func New(st store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:    st,
		validate: validator.New(),
		logger:   logger,
	}
}

// Apply performs one accept/reject/edit transition. The skill is looked up
// by case-insensitive name; the pre-transition state is snapshotted into
// an audit record. Transitions never recompute confidence or evidence.
func (s *Service) Apply(ctx context.Context, req types.ActionRequest) types.ActionResult {
	if err := s.validate.Struct(req); err != nil {
		return types.ActionResult{Success: false, Message: fmt.Sprintf("invalid request: %v", err)}
	}

	profile, err := s.store.GetProfile(ctx, req.ProfileID)
	if err != nil {
		s.logger.Error("failed to load profile for skill action",
			zap.String("profile_id", req.ProfileID), zap.Error(err))
		return types.ActionResult{Success: false, Message: "failed to load profile"}
	}
	if profile == nil {
		return types.ActionResult{Success: false, Message: "Profile not found"}
	}

	skillIndex := -1
	for i, skill := range profile.Skills {
		if strings.EqualFold(skill.Name, req.SkillName) {
			skillIndex = i
			break
		}
	}
	if skillIndex == -1 {
		return types.ActionResult{
			Success: false,
			Message: fmt.Sprintf("Skill '%s' not found in profile", req.SkillName),
		}
	}

	previous := profile.Skills[skillIndex]
	updated := previous

	var message string
	switch req.Action {
	case "accept":
		updated.ManualStatus = types.StatusAccepted
		message = fmt.Sprintf("Skill '%s' accepted", req.SkillName)
	case "reject":
		updated.ManualStatus = types.StatusRejected
		message = fmt.Sprintf("Skill '%s' rejected", req.SkillName)
	case "edit":
		updated.ManualStatus = types.StatusEdited
		if req.EditedName != "" {
			updated.EditedName = req.EditedName
		}
		if req.EditedCategory != "" {
			updated.Category = req.EditedCategory
		}
		message = fmt.Sprintf("Skill '%s' edited", req.SkillName)
	default:
		return types.ActionResult{Success: false, Message: fmt.Sprintf("Invalid action: %s", req.Action)}
	}

	profile.Skills[skillIndex] = updated
	if err := s.store.UpdateProfileSkills(ctx, profile.ProfileID, profile.Skills); err != nil {
		s.logger.Error("failed to persist skill action",
			zap.String("profile_id", req.ProfileID),
			zap.String("skill", req.SkillName), zap.Error(err))
		return types.ActionResult{Success: false, Message: "failed to persist skill action"}
	}

	record := &types.AuditRecord{
		ID:        uuid.NewString(),
		ProfileID: req.ProfileID,
		SkillName: req.SkillName,
		Action:    req.Action,
		Previous:  &previous,
		New:       &updated,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendAudit(ctx, record); err != nil {
		// The transition itself is already persisted; a lost audit row is
		// logged, not surfaced as a failed action.
		s.logger.Error("failed to append audit record",
			zap.String("profile_id", req.ProfileID), zap.Error(err))
	}

	return types.ActionResult{Success: true, Message: message, UpdatedSkill: &updated}
}
