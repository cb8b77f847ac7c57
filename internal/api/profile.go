package api

import (
	"context"
	"net/url"
)

// UserDetails fetches the account and profile for a phone number.
func (c *Client) UserDetails(ctx context.Context, phone string) (UserDetails, error) {
	var details UserDetails
	query := url.Values{"phone": {phone}}
	if err := c.get(ctx, "/user-details", query, &details); err != nil {
		return UserDetails{}, err
	}
	return details, nil
}

// CompleteProfileRequest is the wizard's final submission: the full draft plus
// the session phone number.
type CompleteProfileRequest struct {
	PhoneNumber           string `json:"phone_number"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	BusinessName          string `json:"business_name"`
	RegistrationNo        string `json:"registration_no"`
	Email                 string `json:"email"`
	DigitalAddress        string `json:"digital_address"`
	GhanaCardID           string `json:"ghana_card_id"`
	Region                string `json:"region"`
	District              string `json:"district"`
	TypeOfPremise         string `json:"type_of_premise"`
	NoOfTV                string `json:"no_of_tv"`
	ECGMeterNumber        string `json:"ecg_meter_number"`
	PropertyUserType      string `json:"property_user_type"`
	BusinessType          string `json:"business_type"`
	IndividualType        string `json:"individual_type"`
	Exemption             string `json:"exemption"`
	MeterImage            string `json:"meter_image"`
	Location              string `json:"location"`
	PropertyAccountNumber string `json:"property_account_number"`
}

// CompleteProfile submits the accumulated wizard draft.
func (c *Client) CompleteProfile(ctx context.Context, req CompleteProfileRequest) error {
	return c.post(ctx, "/complete-profile", req, nil)
}

// UpdateProfile overwrites editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, phone string, profile Profile) error {
	payload := struct {
		PhoneNumber string `json:"phone_number"`
		Profile
	}{PhoneNumber: phone, Profile: profile}
	return c.post(ctx, "/user/update-profile", payload, nil)
}
