package models

import "time"

type Review struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID uint   `gorm:"uniqueIndex" json:"appointment_id"`
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	BarberID      uint   `gorm:"index" json:"barber_id"`
	Rating        int    `gorm:"not null" json:"rating"`
	Comment       string `gorm:"type:text" json:"comment"`
	Approved      bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	Title    string `gorm:"size:200" json:"title"`
	Body     string `gorm:"type:text" json:"body"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"index;not null" json:"post_id"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	Body     string `gorm:"type:text" json:"body"`

	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SenderID   uint       `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint       `gorm:"index;not null" json:"receiver_id"`
	Body       string     `gorm:"type:text" json:"body"`
	ReadAt     *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

type GalleryImage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Key     string `gorm:"size:255;uniqueIndex;not null" json:"key"`
	URL     string `gorm:"size:512" json:"url"`
	Caption string `gorm:"size:255" json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	CreatedAt time.Time `json:"created_at"`
}
