package api

import "context"

type otpRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// SendOTP requests a one-time code for the phone number. The number is sent
// exactly as given.
func (c *Client) SendOTP(ctx context.Context, phone string) error {
	return c.post(ctx, "/send-otp", otpRequest{PhoneNumber: phone}, nil)
}

// VerifyOTP submits a code for verification and returns the profile summary
// the server attaches on success.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (VerifyResult, error) {
	var result VerifyResult
	if err := c.post(ctx, "/verify-otp", verifyRequest{PhoneNumber: phone, OTP: otp}, &result); err != nil {
		return VerifyResult{}, err
	}
	return result, nil
}

// Logout tells the server the session is finished. The server keeps no token
// state, so this is advisory.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", nil, nil)
}
