package api

import (
	"context"
	"net/url"
)

// PaymentHistory lists settled district payments for the phone number.
func (c *Client) PaymentHistory(ctx context.Context, phone string) ([]Payment, error) {
	var envelope struct {
		Payments []Payment `json:"payments"`
	}
	query := url.Values{"phone_number": {phone}}
	if err := c.get(ctx, "/payment-history", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Payments, nil
}

// Transactions lists the account-wide transaction feed.
func (c *Client) Transactions(ctx context.Context, phone string) ([]Transaction, error) {
	var envelope struct {
		Transactions []Transaction `json:"transactions"`
	}
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/transactions", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Transactions, nil
}
