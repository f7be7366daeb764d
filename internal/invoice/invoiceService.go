package invoice

import (
	"context"
	"fmt"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

// Service resolves a checkout's order rows and emails the rendered invoice.
// The worker pool calls it for invoice jobs.
type Service struct {
	orders *store.OrderStore
	mailer *Mailer
	logger *logger_i.Logger
}

func NewService(orders *store.OrderStore, mailer *Mailer) *Service {
	return &Service{orders: orders, mailer: mailer, logger: logger_i.NewLogger("InvoiceService")}
}

func (s *Service) SendInvoice(ctx context.Context, userId int64, email string, orderIds []int64) error {
	orders, err := s.orders.GetByIds(ctx, userId, orderIds)
	if err != nil {
		return fmt.Errorf("loading invoice orders: %w", err)
	}
	if len(orders) == 0 {
		return fmt.Errorf("no orders found for invoice")
	}

	html, err := BuildInvoiceHTML(orders)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your Swippe order #%d is confirmed", orders[0].Id)
	return s.mailer.Send(ctx, email, subject, html)
}
