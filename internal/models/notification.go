package models

import "time"

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Type    string `gorm:"size:50" json:"type"`
	Title   string `gorm:"size:200" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Link    string `gorm:"size:255" json:"link"`
	Read    bool   `gorm:"default:false;index" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
