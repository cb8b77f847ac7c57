package flow

import (
	"context"
	"testing"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
	"github.com/example/pup/internal/store"
)

type fakeSender struct {
	phones []string
	err    error
}

func (f *fakeSender) SendOTP(ctx context.Context, phone string) error {
	f.phones = append(f.phones, phone)
	return f.err
}

func newTestSession(t *testing.T) (*session.Manager, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir(), "test-secret")
	if err != nil {
		t.Fatalf("store.Open() error: %v", err)
	}
	return session.NewManager(st, nil), st
}

func TestLoginRejectsInvalidPhones(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{"too short", "024123456"},
		{"too long", "02412345678"},
		{"letters", "024abc4567"},
		{"empty", ""},
		{"symbols", "024-123-45"},
		{"arabic-indic digits", "١٢٣٤٥"},
		{"fullwidth digits", "024123456７"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _ := newTestSession(t)
			sender := &fakeSender{}
			f := NewLogin(sess, sender)

			_, _, err := f.Submit(context.Background(), tt.phone)
			if api.KindOf(err) != api.KindValidation {
				t.Errorf("Submit(%q) error kind = %v, want validation", tt.phone, api.KindOf(err))
			}
			if len(sender.phones) != 0 {
				t.Errorf("send-otp called %d times for invalid input", len(sender.phones))
			}
		})
	}
}

func TestLoginSendsPhoneExactly(t *testing.T) {
	sess, _ := newTestSession(t)
	sender := &fakeSender{}
	f := NewLogin(sess, sender)

	route, params, err := f.Submit(context.Background(), "0241234567")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if route != nav.RouteOTP || params.Phone != "0241234567" {
		t.Errorf("Submit() = %v %+v", route, params)
	}
	if len(sender.phones) != 1 || sender.phones[0] != "0241234567" {
		t.Errorf("send-otp called with %v, want exactly the input", sender.phones)
	}
}

func TestLoginStripsWhitespaceAndCachesPhone(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	sender := &fakeSender{}
	f := NewLogin(sess, sender)

	if _, _, err := f.Submit(ctx, " 024 123 4567 "); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if sender.phones[0] != "0241234567" {
		t.Errorf("send-otp called with %q", sender.phones[0])
	}

	phone, err := sess.Phone(ctx)
	if err != nil || phone != "0241234567" {
		t.Errorf("cached phone = %q, %v", phone, err)
	}
}

func TestLoginPropagatesSendFailure(t *testing.T) {
	sess, _ := newTestSession(t)
	sender := &fakeSender{err: api.ServerError(503, "try again later")}
	f := NewLogin(sess, sender)

	_, _, err := f.Submit(context.Background(), "0241234567")
	if api.KindOf(err) != api.KindServer {
		t.Errorf("Submit() error kind = %v, want server rejection", api.KindOf(err))
	}
}
