package flow

import (
	"context"
	"testing"
	"time"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/store"
)

type fakeVerifier struct {
	sendCalls   int
	verifyCalls int
	lastPhone   string
	lastOTP     string
	result      api.VerifyResult
	verifyErr   error
}

func (f *fakeVerifier) SendOTP(ctx context.Context, phone string) error {
	f.sendCalls++
	f.lastPhone = phone
	return nil
}

func (f *fakeVerifier) VerifyOTP(ctx context.Context, phone, otp string) (api.VerifyResult, error) {
	f.verifyCalls++
	f.lastPhone = phone
	f.lastOTP = otp
	if f.verifyErr != nil {
		return api.VerifyResult{}, f.verifyErr
	}
	return f.result, nil
}

func TestSubmitRejectsMalformedCodesWithoutNetworkCall(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"too short", "123"},
		{"too long", "12345"},
		{"letters", "12a4"},
		{"empty", ""},
		{"spaces", "1 34"},
		{"arabic-indic digits", "١١"},
		{"fullwidth digit", "12３"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _ := newTestSession(t)
			verifier := &fakeVerifier{}
			f := NewOTP(sess, verifier, "0241234567")

			_, _, err := f.Submit(context.Background(), tt.code)
			if api.KindOf(err) != api.KindValidation {
				t.Errorf("Submit(%q) error kind = %v, want validation", tt.code, api.KindOf(err))
			}
			if verifier.verifyCalls != 0 {
				t.Errorf("verify-otp called %d times for malformed code", verifier.verifyCalls)
			}
			if f.State() != StateAwaitingOtp {
				t.Errorf("state = %v, want AwaitingOtp", f.State())
			}
		})
	}
}

func TestSubmitCompletedProfileRoutesHome(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)
	verifier := &fakeVerifier{result: api.VerifyResult{Profile: api.Profile{IsUpdated: 1}}}
	f := NewOTP(sess, verifier, "0241234567")

	route, params, err := f.Submit(ctx, "1234")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if route != nav.RouteMainTabs || params.Tab != nav.TabHome {
		t.Errorf("Submit() = %v %+v, want MainTabs/Home", route, params)
	}
	if f.State() != StateVerified {
		t.Errorf("state = %v, want Verified", f.State())
	}
	if verifier.lastPhone != "0241234567" || verifier.lastOTP != "1234" {
		t.Errorf("verify-otp called with %q %q", verifier.lastPhone, verifier.lastOTP)
	}

	// Phone and flag are committed together.
	phone, ok, _ := st.Get(ctx, store.KeyPhoneNumber)
	if !ok || phone != "0241234567" {
		t.Errorf("stored phone = %q, present %v", phone, ok)
	}
	flag, ok, _ := st.Get(ctx, store.KeyIsUpdated)
	if !ok || flag != "1" {
		t.Errorf("stored flag = %q, present %v; want \"1\"", flag, ok)
	}
}

func TestSubmitIncompleteProfileRoutesToWizard(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)
	verifier := &fakeVerifier{result: api.VerifyResult{NewUser: true}}
	f := NewOTP(sess, verifier, "0241234567")

	route, _, err := f.Submit(ctx, "1234")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if route != nav.RouteProfileCompletion {
		t.Errorf("Submit() = %v, want ProfileCompletion", route)
	}
	if flag, _, _ := st.Get(ctx, store.KeyIsUpdated); flag != "0" {
		t.Errorf("stored flag = %q, want \"0\"", flag)
	}
}

func TestSubmitRejectionAllowsRetry(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	verifier := &fakeVerifier{verifyErr: api.ServerError(401, "Invalid OTP")}
	f := NewOTP(sess, verifier, "0241234567")

	if _, _, err := f.Submit(ctx, "9999"); api.KindOf(err) != api.KindServer {
		t.Fatalf("Submit() error kind = %v, want server rejection", api.KindOf(err))
	}
	if f.State() != StateFailed {
		t.Errorf("state = %v, want Failed", f.State())
	}

	verifier.verifyErr = nil
	verifier.result = api.VerifyResult{Profile: api.Profile{IsUpdated: 1}}
	if _, _, err := f.Submit(ctx, "1234"); err != nil {
		t.Errorf("retry Submit() error: %v", err)
	}
	if verifier.verifyCalls != 2 {
		t.Errorf("verify-otp called %d times, want 2", verifier.verifyCalls)
	}
}

func TestResendHonoursCountdown(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	verifier := &fakeVerifier{}
	f := NewOTP(sess, verifier, "0241234567")

	base := time.Now()
	f.now = func() time.Time { return base }
	f.resendAfter = base.Add(resendCooldown)

	if err := f.Resend(ctx); api.KindOf(err) != api.KindValidation {
		t.Errorf("Resend() during countdown error kind = %v, want validation", api.KindOf(err))
	}
	if verifier.sendCalls != 0 {
		t.Errorf("send-otp called %d times during countdown", verifier.sendCalls)
	}

	base = base.Add(61 * time.Second)
	if err := f.Resend(ctx); err != nil {
		t.Fatalf("Resend() after countdown error: %v", err)
	}
	if verifier.sendCalls != 1 {
		t.Errorf("send-otp called %d times, want 1", verifier.sendCalls)
	}
	if f.ResendRemaining() == 0 {
		t.Error("countdown not restarted after resend")
	}
}
