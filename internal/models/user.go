package models

import "time"

const (
	RoleClient = "CLIENT"
	RoleBarber = "BARBER"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'CLIENT';index" json:"role"`
	Image        string `gorm:"size:255" json:"image"`

	Barber *Barber `gorm:"foreignKey:UserID" json:"barber,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Account is an OAuth identity linked to a user.
type Account struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"index;not null" json:"user_id"`
	Provider          string `gorm:"size:50;not null" json:"provider"`
	ProviderAccountID string `gorm:"size:255;not null" json:"provider_account_id"`

	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenID   string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	IP        string    `gorm:"size:64" json:"ip"`

	CreatedAt time.Time `json:"created_at"`
}

type PushSubscription struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Endpoint string `gorm:"type:text;not null" json:"endpoint"`
	P256dh   string `gorm:"size:255" json:"p256dh"`
	Auth     string `gorm:"size:255" json:"auth"`

	CreatedAt time.Time `json:"created_at"`
}
