package api

import (
	"context"
	"net/url"
	"strconv"
)

// Invoices lists district invoices for the phone number.
func (c *Client) Invoices(ctx context.Context, phone string) ([]Invoice, error) {
	var envelope struct {
		Invoices []Invoice `json:"invoices"`
	}
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/invoices", query, &envelope); err != nil {
		return nil, err
	}
	for i := range envelope.Invoices {
		envelope.Invoices[i].normalize()
	}
	return envelope.Invoices, nil
}

// Invoice fetches a single invoice by id.
func (c *Client) Invoice(ctx context.Context, id int) (Invoice, error) {
	var invoice Invoice
	if err := c.get(ctx, "/invoices/"+strconv.Itoa(id), nil, &invoice); err != nil {
		return Invoice{}, err
	}
	invoice.normalize()
	return invoice, nil
}

type generateRequest struct {
	PhoneNumber   string `json:"phone_number"`
	PaymentPlan   string `json:"payment_plan"`
	PaymentMethod string `json:"payment_method"`
}

// GenerateInvoice asks the server to raise invoices for the chosen plan.
func (c *Client) GenerateInvoice(ctx context.Context, phone, plan, method string) (GenerateResult, error) {
	var result GenerateResult
	req := generateRequest{PhoneNumber: phone, PaymentPlan: plan, PaymentMethod: method}
	if err := c.post(ctx, "/generate-invoice", req, &result); err != nil {
		return GenerateResult{}, err
	}
	for i := range result.Invoices {
		result.Invoices[i].normalize()
	}
	return result, nil
}

// PayInvoice submits a payment. Callers must re-fetch the invoice afterwards
// for its authoritative status.
func (c *Client) PayInvoice(ctx context.Context, req PaymentRequest) (PaymentResult, error) {
	var result PaymentResult
	if err := c.post(ctx, "/pay-invoice", req, &result); err != nil {
		return PaymentResult{}, err
	}
	return result, nil
}

// NextInvoice returns the upcoming invoice banner for the home screen.
func (c *Client) NextInvoice(ctx context.Context, phone string) (NextInvoice, error) {
	var next NextInvoice
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/next-invoice", query, &next); err != nil {
		return NextInvoice{}, err
	}
	return next, nil
}

// IncomingInvoice returns the next unbilled period, if the server has one.
func (c *Client) IncomingInvoice(ctx context.Context, phone string) (Invoice, error) {
	var invoice Invoice
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/incoming-invoice", query, &invoice); err != nil {
		return Invoice{}, err
	}
	invoice.normalize()
	return invoice, nil
}
