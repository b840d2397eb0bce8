package models

import "time"

type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

type Person struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"size:100;not null" json:"name"`
	Email           string       `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Timezone        string       `gorm:"size:50;default:Asia/Tashkent" json:"timezone"`
	HashedPassword  string       `gorm:"size:255" json:"-"`
	AuthProvider    AuthProvider `gorm:"size:20;default:local" json:"auth_provider"`
	GoogleID        string       `gorm:"size:100" json:"-"`
	ProfilePhotoURL string       `gorm:"size:255" json:"profile_photo_url,omitempty"`

	IsActive      bool `gorm:"default:true" json:"is_active"`
	IsVerified    bool `gorm:"default:false" json:"is_verified"`
	EmailVerified bool `gorm:"default:false" json:"email_verified"`

	// login lockout state, checked before every password comparison
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLogin           *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Goals []Goal `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsLocked reports whether the lockout window is still open.
func (p *Person) IsLocked(now time.Time) bool {
	return p.LockedUntil != nil && now.Before(*p.LockedUntil)
}
