package api

import (
	"context"
	"net/url"
)

// CheckArrears returns the platform-wide arrears total. Failures propagate;
// callers that want a zero fallback must choose that themselves.
func (c *Client) CheckArrears(ctx context.Context) (ArrearsSummary, error) {
	var summary ArrearsSummary
	if err := c.get(ctx, "/arrears/check", nil, &summary); err != nil {
		return ArrearsSummary{}, err
	}
	return summary, nil
}

// DistrictArrears returns district-invoice arrears and the overdue months for
// the phone number.
func (c *Client) DistrictArrears(ctx context.Context, phone string) (DistrictArrears, error) {
	var arrears DistrictArrears
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/district-arrears-check", query, &arrears); err != nil {
		return DistrictArrears{}, err
	}
	return arrears, nil
}

// UserArrears returns the outstanding balance for the phone number.
func (c *Client) UserArrears(ctx context.Context, phone string) (float64, error) {
	var envelope struct {
		Arrears float64 `json:"arrears"`
	}
	query := url.Values{"phone_number": {phone}}
	if err := c.get(ctx, "/user-arrears", query, &envelope); err != nil {
		return 0, err
	}
	return envelope.Arrears, nil
}
