package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestBuildPreferenceUsesLineItems(t *testing.T) {
	inv := &models.Invoice{
		ID:       4,
		Number:   "INV-2026-0004",
		Currency: "BRL",
		Amount:   80,
		Items: []models.InvoiceItem{
			{Description: "Haircut", Quantity: 1, UnitPrice: 50, Total: 50},
			{Description: "Beard trim", Quantity: 1, UnitPrice: 30, Total: 30},
		},
	}

	req := buildPreference(inv, "https://shop.example.com")

	require.Len(t, req.Items, 2)
	assert.Equal(t, "Haircut", req.Items[0].Title)
	assert.Equal(t, "BRL", req.Items[1].CurrencyID)
	assert.Equal(t, "INV-2026-0004", req.ExternalReference)
	assert.Equal(t, "https://shop.example.com/invoices/4", req.BackURLs.Success)
}

func TestBuildPreferenceFallsBackToTotal(t *testing.T) {
	req := buildPreference(&models.Invoice{Number: "INV-2026-0001", Amount: 35, Currency: "BRL"}, "")

	require.Len(t, req.Items, 1)
	assert.Equal(t, 35.0, req.Items[0].UnitPrice)
	assert.Equal(t, 1, req.Items[0].Quantity)
}

func TestDisabledProvider(t *testing.T) {
	_, err := Disabled{}.CreateLink(context.Background(), &models.Invoice{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
