package flow

import (
	"context"
	"strings"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
)

// OTPSender is the slice of the API client the login flow needs.
type OTPSender interface {
	SendOTP(ctx context.Context, phone string) error
}

// Login collects a phone number and requests an OTP for it.
type Login struct {
	session *session.Manager
	client  OTPSender
}

// NewLogin constructs the login flow.
func NewLogin(sess *session.Manager, client OTPSender) *Login {
	return &Login{session: sess, client: client}
}

// Submit validates the phone number, caches it, and requests an OTP. The
// number is sent to the server exactly as cleaned, with no reformatting.
func (f *Login) Submit(ctx context.Context, rawPhone string) (nav.Route, nav.Params, error) {
	phone := strings.Join(strings.Fields(rawPhone), "")
	if !validPhone(phone) {
		return "", nav.Params{}, api.ValidationError("enter a valid 10-digit phone number")
	}

	if err := f.session.SetPhone(ctx, phone); err != nil {
		return "", nav.Params{}, err
	}

	if err := f.client.SendOTP(ctx, phone); err != nil {
		return "", nav.Params{}, err
	}

	return nav.RouteOTP, nav.Params{Phone: phone}, nil
}

// validPhone accepts exactly ten ASCII digits, matching the numeric keypad.
func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}
