package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList stores a list of strings as a JSON text column so the same
// model runs on both postgres and the in-memory sqlite used in tests.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

// Social holds the optional social links, flattened into the profiles
// table but serialized as a nested object like the original document.
type Social struct {
	Youtube   string `gorm:"type:varchar(255)" json:"youtube,omitempty"`
	Facebook  string `gorm:"type:varchar(255)" json:"facebook,omitempty"`
	Instagram string `gorm:"type:varchar(255)" json:"instagram,omitempty"`
}

// Profile is the per-user public profile. One per user, created lazily on
// the first profile submission.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user"`
	Username  string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Website   string     `gorm:"type:varchar(255)" json:"website,omitempty"`
	Country   string     `gorm:"type:varchar(100)" json:"country,omitempty"`
	Portfolio string     `gorm:"type:varchar(255)" json:"portfolio,omitempty"`
	Languages StringList `gorm:"type:text" json:"languages"`
	Social    Social     `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	WorkRoles []WorkRole `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"workrole"`
	CreatedAt time.Time  `json:"date"`

	// Owner is preloaded with a limited column set (name, avatar, gender)
	// for the public lookup endpoints. Handlers decide what to expose.
	Owner *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// WorkRole is one entry in a profile's ordered work history. Entries are
// appended and removed by id, never reordered.
type WorkRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID  `gorm:"type:uuid;index;not null" json:"-"`
	Role      string     `gorm:"type:varchar(100);not null" json:"role"`
	Company   string     `gorm:"type:varchar(100)" json:"company,omitempty"`
	Country   string     `gorm:"type:varchar(100)" json:"country,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Current   bool       `gorm:"default:false" json:"current"`
	Details   string     `gorm:"type:text" json:"details,omitempty"`
	CreatedAt time.Time  `json:"-"`
}
