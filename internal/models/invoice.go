package models

import "time"

type Invoice struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Number string `gorm:"size:32;uniqueIndex:idx_invoices_number;not null" json:"number"`

	AppointmentID *uint        `gorm:"uniqueIndex:idx_invoices_appointment_id" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	RecipientID    *uint  `gorm:"index" json:"recipient_id"`
	RecipientName  string `gorm:"size:100" json:"recipient_name"`
	RecipientEmail string `gorm:"size:100" json:"recipient_email"`
	RecipientPhone string `gorm:"size:20" json:"recipient_phone"`

	Amount        float64    `json:"amount"`
	Currency      string     `gorm:"size:3" json:"currency"`
	IsPaid        bool       `gorm:"default:false" json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at"`
	PaymentMethod string     `gorm:"size:30" json:"payment_method"`
	IssuedAt      time.Time  `json:"issued_at"`
	DueDate       *time.Time `json:"due_date"`
	Notes         string     `gorm:"type:text" json:"notes"`
	PaymentLink   string     `gorm:"size:512" json:"payment_link"`
	ArchiveKey    string     `gorm:"size:255" json:"archive_key"`

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"index;not null" json:"invoice_id"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Total       float64 `gorm:"not null" json:"total"`
}
