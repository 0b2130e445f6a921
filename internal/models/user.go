package models

import (
	"time"

	"github.com/google/uuid"
)

// Default avatars assigned at registration based on gender.
const (
	DefaultAvatarMale   = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"
	DefaultAvatarFemale = "https://cdn.pixabay.com/photo/2014/04/03/10/32/user-310807_1280.png"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"type:varchar(100);not null" json:"name"`
	Email string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	// Password holds the bcrypt hash, never the plaintext. The wire
	// contract returns the stored record from /api/auth/register, so the
	// hash is serialized there; every other endpoint returns explicit
	// field subsets.
	Password  string    `gorm:"type:varchar(255);not null" json:"password"`
	Username  string    `gorm:"type:varchar(50)" json:"username,omitempty"`
	Avatar    string    `gorm:"type:varchar(255)" json:"profilepic"`
	Gender    string    `gorm:"type:varchar(10);not null;default:'male'" json:"gender"`
	CreatedAt time.Time `json:"date"`
}

// DefaultAvatar returns the stock avatar URL for a gender.
func DefaultAvatar(gender string) string {
	if gender == "female" {
		return DefaultAvatarFemale
	}
	return DefaultAvatarMale
}
