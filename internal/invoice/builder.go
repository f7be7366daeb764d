package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/swippe/quickcommerce/internal/checkout"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

type invoiceLine struct {
	Name     string
	Brand    string
	Quantity int
	Total    string
}

type invoiceData struct {
	OrderRef    string
	PlacedAt    string
	Lines       []invoiceLine
	Subtotal    string
	DeliveryFee string
	Savings     string
	Total       string
	HasSavings  bool
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f6f8; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #16a34a; color: #ffffff; padding: 20px 24px;">
      <h2 style="margin: 0;">Swippe</h2>
      <p style="margin: 4px 0 0;">Order confirmation &amp; invoice</p>
    </div>
    <div style="padding: 24px;">
      <p style="margin: 0 0 4px; color: #6b7280;">Order {{.OrderRef}} &middot; {{.PlacedAt}}</p>
      <table style="width: 100%; border-collapse: collapse; margin-top: 16px;">
        <tr style="text-align: left; color: #6b7280; font-size: 13px;">
          <th style="padding: 8px 0; border-bottom: 1px solid #e5e7eb;">Item</th>
          <th style="padding: 8px 0; border-bottom: 1px solid #e5e7eb;">Qty</th>
          <th style="padding: 8px 0; border-bottom: 1px solid #e5e7eb; text-align: right;">Amount</th>
        </tr>
        {{range .Lines}}
        <tr>
          <td style="padding: 8px 0; border-bottom: 1px solid #f3f4f6;">{{.Name}}<br><span style="color: #9ca3af; font-size: 12px;">{{.Brand}}</span></td>
          <td style="padding: 8px 0; border-bottom: 1px solid #f3f4f6;">{{.Quantity}}</td>
          <td style="padding: 8px 0; border-bottom: 1px solid #f3f4f6; text-align: right;">{{.Total}}</td>
        </tr>
        {{end}}
        <tr><td colspan="2" style="padding: 8px 0; color: #6b7280;">Subtotal</td><td style="text-align: right;">{{.Subtotal}}</td></tr>
        <tr><td colspan="2" style="padding: 8px 0; color: #6b7280;">Delivery fee</td><td style="text-align: right;">{{.DeliveryFee}}</td></tr>
        {{if .HasSavings}}<tr><td colspan="2" style="padding: 8px 0; color: #16a34a;">You saved</td><td style="text-align: right; color: #16a34a;">{{.Savings}}</td></tr>{{end}}
        <tr><td colspan="2" style="padding: 12px 0; font-weight: bold;">Total</td><td style="text-align: right; font-weight: bold;">{{.Total}}</td></tr>
      </table>
      <p style="color: #9ca3af; font-size: 12px; margin-top: 24px;">Delivery in minutes. Thank you for shopping with Swippe.</p>
    </div>
  </div>
</body>
</html>`))

// BuildInvoiceHTML renders the order confirmation email body from the priced
// order rows of one checkout.
func BuildInvoiceHTML(orders []commerceModel.Order) (string, error) {
	if len(orders) == 0 {
		return "", fmt.Errorf("no orders to invoice")
	}

	placedAt := orders[0].OrderedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}
	data := invoiceData{
		OrderRef: fmt.Sprintf("#%d", orders[0].Id),
		PlacedAt: placedAt.Format("02 Jan 2006 15:04"),
	}

	var subtotal, savings float64
	for _, o := range orders {
		subtotal += o.TotalPrice
		if o.MarketPrice > o.SalePrice {
			savings += (o.MarketPrice - o.SalePrice) * float64(o.Quantity)
		}
		data.Lines = append(data.Lines, invoiceLine{
			Name:     o.ProductName,
			Brand:    o.Brand,
			Quantity: o.Quantity,
			Total:    rupees(o.TotalPrice),
		})
	}

	fee := checkout.DeliveryFeeFor(subtotal)
	data.Subtotal = rupees(subtotal)
	data.DeliveryFee = rupees(fee)
	data.Savings = rupees(savings)
	data.HasSavings = savings > 0
	data.Total = rupees(subtotal + fee)

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering invoice: %w", err)
	}
	return buf.String(), nil
}

func rupees(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
