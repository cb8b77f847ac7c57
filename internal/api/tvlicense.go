package api

import (
	"context"
	"net/url"
)

// TVLicenseInvoices lists TV-licence invoices for the phone number under the
// given payment plan.
func (c *Client) TVLicenseInvoices(ctx context.Context, phone, plan string) ([]Invoice, error) {
	var envelope struct {
		Invoices []Invoice `json:"invoices"`
	}
	query := url.Values{
		"phone":        {phone},
		"payment_plan": {plan},
	}
	if err := c.get(ctx, "/tv-license-invoices", query, &envelope); err != nil {
		return nil, err
	}
	for i := range envelope.Invoices {
		envelope.Invoices[i].normalize()
	}
	return envelope.Invoices, nil
}

// TVPaymentHistory lists settled TV-licence payments.
func (c *Client) TVPaymentHistory(ctx context.Context) ([]Payment, error) {
	var envelope struct {
		History []Payment `json:"history"`
	}
	if err := c.get(ctx, "/tv-license/payments", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.History, nil
}
