package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

func sampleOrders() []commerceModel.Order {
	placed := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return []commerceModel.Order{
		{
			Id:          41,
			ProductId:   1,
			Quantity:    2,
			TotalPrice:  240,
			OrderedAt:   placed,
			ProductName: "Basmati Rice",
			Brand:       "Daawat",
			SalePrice:   120,
			MarketPrice: 150,
		},
		{
			Id:          42,
			ProductId:   4,
			Quantity:    1,
			TotalPrice:  33,
			OrderedAt:   placed,
			ProductName: "Full Cream Milk",
			Brand:       "Amul",
			SalePrice:   33,
			MarketPrice: 33,
		},
	}
}

func TestBuildInvoiceHTML(t *testing.T) {
	html, err := BuildInvoiceHTML(sampleOrders())
	if err != nil {
		t.Fatalf("BuildInvoiceHTML failed: %v", err)
	}

	for _, want := range []string{
		"Order #41",
		"Basmati Rice",
		"Daawat",
		"Full Cream Milk",
		"₹273.00", // subtotal above the free-delivery threshold
		"₹0.00",   // delivery fee
		"You saved",
		"₹60.00", // (150-120) x 2
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Invoice missing %q", want)
		}
	}
}

func TestBuildInvoiceHTML_NoSavings(t *testing.T) {
	orders := sampleOrders()[1:2] // milk only, no market spread
	html, err := BuildInvoiceHTML(orders)
	if err != nil {
		t.Fatalf("BuildInvoiceHTML failed: %v", err)
	}
	if strings.Contains(html, "You saved") {
		t.Error("Savings row rendered without any savings")
	}
	// 33 subtotal, below the threshold
	if !strings.Contains(html, "₹40.00") {
		t.Error("Delivery fee missing for a small order")
	}
	if !strings.Contains(html, "₹73.00") {
		t.Error("Total should include the delivery fee")
	}
}

func TestBuildInvoiceHTML_Empty(t *testing.T) {
	if _, err := BuildInvoiceHTML(nil); err == nil {
		t.Error("Expected an error for an empty order set")
	}
}

func TestMailer_DisabledIsANoop(t *testing.T) {
	m := NewMailer(MailerConfig{Enabled: false})
	if err := m.Send(context.Background(), "buyer@example.com", "hi", "<p>hi</p>"); err != nil {
		t.Errorf("Disabled mailer should succeed quietly, got %v", err)
	}
}
