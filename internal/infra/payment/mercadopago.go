package payment

import (
	"context"
	"errors"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var ErrNotConfigured = errors.New("payments not configured")

// LinkProvider creates a hosted checkout link for an invoice.
type LinkProvider interface {
	CreateLink(ctx context.Context, inv *models.Invoice) (string, error)
}

type MercadoPago struct {
	client  preference.Client
	baseURL string
}

func NewMercadoPago(accessToken, baseURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		client:  preference.NewClient(cfg),
		baseURL: baseURL,
	}, nil
}

func (m *MercadoPago) CreateLink(ctx context.Context, inv *models.Invoice) (string, error) {
	res, err := m.client.Create(ctx, buildPreference(inv, m.baseURL))
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}
	return res.InitPoint, nil
}

func buildPreference(inv *models.Invoice, baseURL string) preference.Request {
	items := make([]preference.ItemRequest, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, preference.ItemRequest{
			Title:      it.Description,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: inv.Currency,
		})
	}
	if len(items) == 0 {
		items = append(items, preference.ItemRequest{
			Title:      "Invoice " + inv.Number,
			Quantity:   1,
			UnitPrice:  inv.Amount,
			CurrencyID: inv.Currency,
		})
	}

	return preference.Request{
		Items:             items,
		ExternalReference: inv.Number,
		BackURLs: &preference.BackURLsRequest{
			Success: fmt.Sprintf("%s/invoices/%d", baseURL, inv.ID),
			Failure: fmt.Sprintf("%s/invoices/%d", baseURL, inv.ID),
			Pending: fmt.Sprintf("%s/invoices/%d", baseURL, inv.ID),
		},
	}
}

// Disabled is used when no access token is configured.
type Disabled struct{}

func (Disabled) CreateLink(context.Context, *models.Invoice) (string, error) {
	return "", ErrNotConfigured
}

var (
	_ LinkProvider = (*MercadoPago)(nil)
	_ LinkProvider = Disabled{}
)
