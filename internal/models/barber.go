package models

import "time"

// Barber is the professional profile. A user owning one is "barber-linked"
// and is managed through the barber endpoints, not the plain user ones.
type Barber struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Bio    string `gorm:"type:text" json:"bio"`
	Image  string `gorm:"size:255" json:"image"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
