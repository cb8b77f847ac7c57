package flow

import (
	"context"
	"log"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
)

// InvoiceAPI is the slice of the API client the invoice flow needs.
type InvoiceAPI interface {
	Invoices(ctx context.Context, phone string) ([]api.Invoice, error)
	Invoice(ctx context.Context, id int) (api.Invoice, error)
	GenerateInvoice(ctx context.Context, phone, plan, method string) (api.GenerateResult, error)
	PayInvoice(ctx context.Context, req api.PaymentRequest) (api.PaymentResult, error)
}

// Invoices covers the invoice list, the detail view, and payment submission.
type Invoices struct {
	session *session.Manager
	client  InvoiceAPI
}

// NewInvoices constructs the invoice flow.
func NewInvoices(sess *session.Manager, client InvoiceAPI) *Invoices {
	return &Invoices{session: sess, client: client}
}

// List fetches the session's district invoices.
func (f *Invoices) List(ctx context.Context) ([]api.Invoice, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return nil, err
	}
	return f.client.Invoices(ctx, phone)
}

// Detail fetches one invoice by id for the detail view.
func (f *Invoices) Detail(ctx context.Context, id int) (api.Invoice, error) {
	return f.client.Invoice(ctx, id)
}

// Generate asks the server to raise invoices for the chosen plan and method.
func (f *Invoices) Generate(ctx context.Context, plan, method string) (api.GenerateResult, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.GenerateResult{}, err
	}
	if plan == "" || method == "" {
		return api.GenerateResult{}, api.ValidationError("payment plan and method are required")
	}
	return f.client.GenerateInvoice(ctx, phone, plan, method)
}

// Pay submits a payment and then re-fetches the invoice so the status shown
// to the user is the server's, never inferred from the payment response.
func (f *Invoices) Pay(ctx context.Context, id int, amount float64, method string) (api.Invoice, api.PaymentResult, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.Invoice{}, api.PaymentResult{}, err
	}
	if amount <= 0 {
		return api.Invoice{}, api.PaymentResult{}, api.ValidationError("amount must be greater than zero")
	}
	if method == "" {
		return api.Invoice{}, api.PaymentResult{}, api.ValidationError("select a payment method")
	}

	result, err := f.client.PayInvoice(ctx, api.PaymentRequest{
		PhoneNumber:   phone,
		InvoiceID:     id,
		Amount:        amount,
		PaymentMethod: method,
	})
	if err != nil {
		return api.Invoice{}, api.PaymentResult{}, err
	}

	refreshed, err := f.client.Invoice(ctx, id)
	if err != nil {
		// The payment went through; only the status refresh failed.
		log.Printf("[Invoices] post-payment refresh of invoice %d failed: %v", id, err)
		return api.Invoice{}, result, err
	}
	return refreshed, result, nil
}
