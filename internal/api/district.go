package api

import (
	"context"
	"net/url"
)

// Districts lists every municipal assembly on the platform.
func (c *Client) Districts(ctx context.Context) ([]District, error) {
	var envelope struct {
		Districts []District `json:"districts"`
	}
	if err := c.get(ctx, "/districts", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Districts, nil
}

// District fetches one district by its stored identifier.
func (c *Client) District(ctx context.Context, id string) (District, error) {
	var district District
	if err := c.get(ctx, "/districts/"+url.PathEscape(id), nil, &district); err != nil {
		return District{}, err
	}
	return district, nil
}

// DistrictInfo returns the assembly banner shown on portal screens.
func (c *Client) DistrictInfo(ctx context.Context) (District, error) {
	var envelope struct {
		District District `json:"district"`
	}
	if err := c.get(ctx, "/district/info", nil, &envelope); err != nil {
		return District{}, err
	}
	return envelope.District, nil
}

// UserDistrict returns the district the phone number is registered under.
func (c *Client) UserDistrict(ctx context.Context, phone string) (District, error) {
	var district District
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/user-district", query, &district); err != nil {
		return District{}, err
	}
	return district, nil
}

// Regions lists region names for the profile wizard pickers.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	var envelope struct {
		Regions []Region `json:"regions"`
	}
	if err := c.get(ctx, "/regions", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Regions, nil
}
