package models

import "time"

// ShopSettings is the single shop-profile row printed on invoices.
type ShopSettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessName string    `gorm:"size:100;not null" json:"business_name"`
	Email        string    `gorm:"size:100" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	TaxID        string    `gorm:"size:50" json:"tax_id"`
	Currency     string    `gorm:"size:3;default:'BRL'" json:"currency"`
	LogoURL      string    `gorm:"size:255" json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		BusinessName: "Barbershop",
		Currency:     "BRL",
	}
}
