package flow

import (
	"context"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
)

// HistoryAPI is the slice of the API client the history screens need.
type HistoryAPI interface {
	PaymentHistory(ctx context.Context, phone string) ([]api.Payment, error)
	TVPaymentHistory(ctx context.Context) ([]api.Payment, error)
	Transactions(ctx context.Context, phone string) ([]api.Transaction, error)
}

// History serves the payment-history, TV payment-history and transaction
// screens.
type History struct {
	session *session.Manager
	client  HistoryAPI
}

// NewHistory constructs the history flow.
func NewHistory(sess *session.Manager, client HistoryAPI) *History {
	return &History{session: sess, client: client}
}

// Payments lists settled district payments.
func (f *History) Payments(ctx context.Context) ([]api.Payment, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return nil, err
	}
	return f.client.PaymentHistory(ctx, phone)
}

// TVPayments lists settled TV licence payments.
func (f *History) TVPayments(ctx context.Context) ([]api.Payment, error) {
	return f.client.TVPaymentHistory(ctx)
}

// Transactions lists the account-wide transaction feed.
func (f *History) Transactions(ctx context.Context) ([]api.Transaction, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return nil, err
	}
	return f.client.Transactions(ctx, phone)
}
