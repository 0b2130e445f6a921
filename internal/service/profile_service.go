package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrWorkRoleNotFound = errors.New("work role not found")
)

// ProfileInput is the patch structure for profile create/update. Empty
// fields are left untouched on update. Languages arrives as a
// comma-separated string and is split into a list.
type ProfileInput struct {
	Username  string
	Website   string
	Country   string
	Portfolio string
	Languages string
	Youtube   string
	Facebook  string
	Instagram string
}

// WorkRoleInput is one work-history entry to append.
type WorkRoleInput struct {
	Role    string
	Company string
	Country string
	From    *time.Time
	To      *time.Time
	Current bool
	Details string
}

type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetOwn returns the requester's profile.
func (s *ProfileService) GetOwn(userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch profile",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetByUsername returns a profile by its username with the limited owner
// join, for the public lookup.
func (s *ProfileService) GetByUsername(username string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to fetch profile by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetByUserID returns a profile by its owning user id with the limited
// owner join, for the public lookup.
func (s *ProfileService) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserIDWithOwner(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch profile by user id",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetAll returns every profile with the limited owner join.
func (s *ProfileService) GetAll() ([]models.Profile, error) {
	profiles, err := s.profileRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to list profiles", zap.Error(err))
		return nil, err
	}
	return profiles, nil
}

// Upsert creates the requester's profile on first submission, otherwise
// applies a partial update with whatever fields were supplied.
func (s *ProfileService) Upsert(userID uuid.UUID, input ProfileInput) (*models.Profile, error) {
	existing, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch profile for upsert",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if existing == nil {
		return s.create(userID, input)
	}
	return s.update(existing, input)
}

func (s *ProfileService) create(userID uuid.UUID, input ProfileInput) (*models.Profile, error) {
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}

	taken, err := s.profileRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		logger.Log.Warn("Profile creation rejected: username taken",
			zap.String("username", input.Username),
		)
		return nil, ErrUsernameTaken
	}

	profile := &models.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  input.Username,
		Website:   input.Website,
		Country:   input.Country,
		Portfolio: input.Portfolio,
		Languages: splitLanguages(input.Languages),
		Social: models.Social{
			Youtube:   input.Youtube,
			Facebook:  input.Facebook,
			Instagram: input.Instagram,
		},
	}

	if err := s.profileRepo.Create(profile); err != nil {
		logger.Log.Error("Failed to create profile",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Profile created",
		zap.String("user_id", userID.String()),
		zap.String("username", input.Username),
	)

	return s.profileRepo.GetByUserID(userID)
}

func (s *ProfileService) update(existing *models.Profile, input ProfileInput) (*models.Profile, error) {
	values := map[string]interface{}{}

	if input.Username != "" && input.Username != existing.Username {
		taken, err := s.profileRepo.GetByUsername(input.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrUsernameTaken
		}
		values["username"] = input.Username
	}
	if input.Website != "" {
		values["website"] = input.Website
	}
	if input.Country != "" {
		values["country"] = input.Country
	}
	if input.Portfolio != "" {
		values["portfolio"] = input.Portfolio
	}
	if input.Languages != "" {
		values["languages"] = splitLanguages(input.Languages)
	}
	if input.Youtube != "" {
		values["social_youtube"] = input.Youtube
	}
	if input.Facebook != "" {
		values["social_facebook"] = input.Facebook
	}
	if input.Instagram != "" {
		values["social_instagram"] = input.Instagram
	}

	if len(values) > 0 {
		if err := s.profileRepo.Update(existing.UserID, values); err != nil {
			logger.Log.Error("Failed to update profile",
				zap.String("user_id", existing.UserID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	logger.Log.Info("Profile updated",
		zap.String("user_id", existing.UserID.String()),
		zap.Int("fields", len(values)),
	)

	return s.profileRepo.GetByUserID(existing.UserID)
}

// Delete removes the requester's profile together with the owning user
// record. Both writes run in one transaction; any failure is surfaced.
func (s *ProfileService) Delete(userID uuid.UUID) error {
	if err := s.profileRepo.DeleteWithUser(userID); err != nil {
		logger.Log.Error("Failed to delete profile and user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Profile and user deleted", zap.String("user_id", userID.String()))
	return nil
}

// AddWorkRole appends one entry to the requester's work history.
func (s *ProfileService) AddWorkRole(userID uuid.UUID, input WorkRoleInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	workRole := &models.WorkRole{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Role:      input.Role,
		Company:   input.Company,
		Country:   input.Country,
		From:      input.From,
		To:        input.To,
		Current:   input.Current,
		Details:   input.Details,
	}

	if err := s.profileRepo.AddWorkRole(workRole); err != nil {
		logger.Log.Error("Failed to add work role",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Work role added",
		zap.String("user_id", userID.String()),
		zap.String("work_role_id", workRole.ID.String()),
	)

	return s.profileRepo.GetByUserID(userID)
}

// RemoveWorkRole deletes one work-history entry by id. Unknown ids are an
// explicit not-found, not a silent no-op.
func (s *ProfileService) RemoveWorkRole(userID, workRoleID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	deleted, err := s.profileRepo.DeleteWorkRole(profile.ID, workRoleID)
	if err != nil {
		logger.Log.Error("Failed to delete work role",
			zap.String("work_role_id", workRoleID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if !deleted {
		return nil, ErrWorkRoleNotFound
	}

	logger.Log.Info("Work role removed",
		zap.String("user_id", userID.String()),
		zap.String("work_role_id", workRoleID.String()),
	)

	return s.profileRepo.GetByUserID(userID)
}

func splitLanguages(raw string) models.StringList {
	if raw == "" {
		return models.StringList{}
	}
	parts := strings.Split(raw, ",")
	languages := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}
