package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
)

// OTPState tracks where the verification flow is.
type OTPState int

const (
	StateEnteringPhone OTPState = iota
	StateAwaitingOtp
	StateVerifying
	StateVerified
	StateFailed
)

const resendCooldown = 60 * time.Second

// Verifier is the slice of the API client the OTP flow needs.
type Verifier interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (api.VerifyResult, error)
}

// OTP drives code entry for a phone number that already received a code.
type OTP struct {
	session *session.Manager
	client  Verifier
	phone   string
	state   OTPState

	now         func() time.Time
	resendAfter time.Time
}

// NewOTP constructs the flow for a phone number whose OTP was just sent; the
// resend countdown starts immediately.
func NewOTP(sess *session.Manager, client Verifier, phone string) *OTP {
	f := &OTP{
		session: sess,
		client:  client,
		phone:   phone,
		state:   StateAwaitingOtp,
		now:     time.Now,
	}
	f.resendAfter = f.now().Add(resendCooldown)
	return f
}

// State reports the current flow state.
func (f *OTP) State() OTPState {
	return f.state
}

// Submit verifies a 4-digit code. Anything that is not exactly four digits is
// rejected locally without a network call. On success the phone number and
// completion flag are committed together, and the returned route follows the
// server's is_updated flag.
func (f *OTP) Submit(ctx context.Context, code string) (nav.Route, nav.Params, error) {
	if f.state != StateAwaitingOtp && f.state != StateFailed {
		return "", nav.Params{}, api.ValidationError("no code is pending verification")
	}
	if !validOTP(code) {
		return "", nav.Params{}, api.ValidationError("enter a valid 4-digit code")
	}
	if f.phone == "" {
		return "", nav.Params{}, api.MissingIdentity()
	}

	f.state = StateVerifying
	result, err := f.client.VerifyOTP(ctx, f.phone, code)
	if err != nil {
		// Failed drops back to code entry; Submit accepts a retry from there.
		f.state = StateFailed
		return "", nav.Params{}, err
	}

	completed := result.Profile.IsUpdated == 1
	if err := f.session.SetVerified(ctx, f.phone, completed); err != nil {
		f.state = StateFailed
		return "", nav.Params{}, err
	}
	f.state = StateVerified

	if completed {
		return nav.RouteMainTabs, nav.Params{Tab: nav.TabHome}, nil
	}
	return nav.RouteProfileCompletion, nav.Params{}, nil
}

// Resend re-requests a code once the countdown has elapsed and restarts it.
func (f *OTP) Resend(ctx context.Context) error {
	if remaining := f.ResendRemaining(); remaining > 0 {
		return api.ValidationError(fmt.Sprintf("wait %d seconds before resending", int(remaining.Seconds())+1))
	}
	if err := f.client.SendOTP(ctx, f.phone); err != nil {
		return err
	}
	f.resendAfter = f.now().Add(resendCooldown)
	return nil
}

// ResendRemaining reports how long until resend is allowed again.
func (f *OTP) ResendRemaining() time.Duration {
	remaining := f.resendAfter.Sub(f.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// validOTP accepts exactly four ASCII digits, matching the numeric keypad.
func validOTP(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
