package api

import "context"

type complaintRequest struct {
	PhoneNumber string `json:"phone_number"`
	Type        string `json:"type"`
	Message     string `json:"message"`
}

// SubmitComplaint files a help-centre request.
func (c *Client) SubmitComplaint(ctx context.Context, phone, requestType, message string) error {
	req := complaintRequest{PhoneNumber: phone, Type: requestType, Message: message}
	return c.post(ctx, "/submit-complaint", req, nil)
}
