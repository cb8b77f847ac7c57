package flow

import (
	"context"
	"strings"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
)

// ComplaintAPI is the slice of the API client the help centre needs.
type ComplaintAPI interface {
	SubmitComplaint(ctx context.Context, phone, requestType, message string) error
}

// HelpCenter files complaints and enquiries.
type HelpCenter struct {
	session *session.Manager
	client  ComplaintAPI
}

// NewHelpCenter constructs the help centre flow.
func NewHelpCenter(sess *session.Manager, client ComplaintAPI) *HelpCenter {
	return &HelpCenter{session: sess, client: client}
}

// Submit validates and files a request.
func (f *HelpCenter) Submit(ctx context.Context, requestType, message string) error {
	if strings.TrimSpace(requestType) == "" || strings.TrimSpace(message) == "" {
		return api.ValidationError("please fill in all fields")
	}

	phone, err := f.session.Phone(ctx)
	if err != nil {
		return err
	}
	return f.client.SubmitComplaint(ctx, phone, requestType, message)
}
