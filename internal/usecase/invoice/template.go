package invoice

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(currency string, v float64) string { return fmt.Sprintf("%s %.2f", currency, v) },
	"date":  func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.Invoice.Number}}</title></head>
<body style="font-family: Arial, sans-serif; color: #222;">
  <table width="100%">
    <tr>
      <td>
        {{if .Shop.LogoURL}}<img src="{{.Shop.LogoURL}}" alt="{{.Shop.BusinessName}}" height="48"><br>{{end}}
        <strong>{{.Shop.BusinessName}}</strong><br>
        {{if .Shop.Address}}{{.Shop.Address}}<br>{{end}}
        {{if .Shop.Phone}}{{.Shop.Phone}}<br>{{end}}
        {{if .Shop.Email}}{{.Shop.Email}}<br>{{end}}
        {{if .Shop.TaxID}}Tax ID: {{.Shop.TaxID}}{{end}}
      </td>
      <td align="right">
        <h2>Invoice {{.Invoice.Number}}</h2>
        Issued: {{date .Invoice.IssuedAt}}<br>
        {{if .Invoice.IsPaid}}<strong>PAID</strong>{{if .Invoice.PaidAt}} on {{date .Invoice.PaidAt}}{{end}}{{else}}<strong>DUE</strong>{{end}}
      </td>
    </tr>
  </table>
  <p>
    Bill to:<br>
    <strong>{{.Invoice.RecipientName}}</strong><br>
    {{.Invoice.RecipientEmail}}{{if .Invoice.RecipientPhone}}<br>{{.Invoice.RecipientPhone}}{{end}}
  </p>
  <table width="100%" cellpadding="6" style="border-collapse: collapse;">
    <tr style="background: #f2f2f2;">
      <th align="left">Description</th><th align="right">Qty</th><th align="right">Unit</th><th align="right">Total</th>
    </tr>
    {{range .Invoice.Items}}
    <tr>
      <td>{{.Description}}</td>
      <td align="right">{{.Quantity}}</td>
      <td align="right">{{money $.Invoice.Currency .UnitPrice}}</td>
      <td align="right">{{money $.Invoice.Currency .Total}}</td>
    </tr>
    {{end}}
    <tr>
      <td colspan="3" align="right"><strong>Total</strong></td>
      <td align="right"><strong>{{money .Invoice.Currency .Invoice.Amount}}</strong></td>
    </tr>
  </table>
  {{if .Invoice.Notes}}<p>{{.Invoice.Notes}}</p>{{end}}
  {{if and (not .Invoice.IsPaid) .Invoice.PaymentLink}}<p><a href="{{.Invoice.PaymentLink}}">Pay online</a></p>{{end}}
</body>
</html>
`))

func RenderHTML(inv *models.Invoice, shop *models.ShopSettings) ([]byte, error) {
	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, struct {
		Invoice *models.Invoice
		Shop    *models.ShopSettings
	}{inv, shop})
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}
