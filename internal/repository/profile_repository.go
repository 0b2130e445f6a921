package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ownerFields limits the joined user columns on public lookups. The
// password hash must never ride along on a profile read.
func ownerFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar", "gender")
}

func workRoleOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// An empty work history serializes as [] on the wire, not null.
func normalizeProfile(p *models.Profile) {
	if p.WorkRoles == nil {
		p.WorkRoles = []models.WorkRole{}
	}
}

func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetByUserID returns a user's profile with its work history, or nil if
// the user has none.
func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Preload("WorkRoles", workRoleOrder).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeProfile(&profile)
	return &profile, nil
}

// GetByUsername returns the profile with that username joined with the
// limited owner fields, or nil if none exists.
func (r *ProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Preload("WorkRoles", workRoleOrder).
		Preload("Owner", ownerFields).
		Where("username = ?", username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeProfile(&profile)
	return &profile, nil
}

// GetByUserIDWithOwner is GetByUserID plus the limited owner join, for the
// public lookup-by-id endpoint.
func (r *ProfileRepository) GetByUserIDWithOwner(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Preload("WorkRoles", workRoleOrder).
		Preload("Owner", ownerFields).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeProfile(&profile)
	return &profile, nil
}

// GetAll returns every profile with the limited owner join.
func (r *ProfileRepository) GetAll() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.
		Preload("WorkRoles", workRoleOrder).
		Preload("Owner", ownerFields).
		Order("created_at DESC").
		Find(&profiles).Error
	for i := range profiles {
		normalizeProfile(&profiles[i])
	}
	return profiles, err
}

/// Update applies a partial update: only the supplied columns change.
func (r *ProfileRepository) Update(userID uuid.UUID, values map[string]interface{}) error {
	return r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(values).Error
}

// DeleteWithUser removes a user's profile, its work history and the user
// row itself in one transaction. Either everything goes or nothing does.
func (r *ProfileRepository) DeleteWithUser(userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.WorkRole{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
}

func (r *ProfileRepository) AddWorkRole(workRole *models.WorkRole) error {
	return r.db.Create(workRole).Error
}

// DeleteWorkRole removes one work-history entry by id, scoped to the
// owning profile. Reports whether a row was actually removed.
func (r *ProfileRepository) DeleteWorkRole(profileID, workRoleID uuid.UUID) (bool, error) {
	result := r.db.
		Where("id = ? AND profile_id = ?", workRoleID, profileID).
		Delete(&models.WorkRole{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
