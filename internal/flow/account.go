package flow

import (
	"context"
	"log"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
)

// AccountAPI is the slice of the API client the profile screen needs.
type AccountAPI interface {
	UserDetails(ctx context.Context, phone string) (api.UserDetails, error)
	UpdateProfile(ctx context.Context, phone string, profile api.Profile) error
	Logout(ctx context.Context) error
}

// Account covers the profile tab: viewing, editing, and logging out.
type Account struct {
	session *session.Manager
	client  AccountAPI
}

// NewAccount constructs the account flow.
func NewAccount(sess *session.Manager, client AccountAPI) *Account {
	return &Account{session: sess, client: client}
}

// Get loads the account and profile for display.
func (f *Account) Get(ctx context.Context) (api.UserDetails, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.UserDetails{}, err
	}
	return f.client.UserDetails(ctx, phone)
}

// Update submits edited profile fields.
func (f *Account) Update(ctx context.Context, profile api.Profile) error {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return err
	}
	return f.client.UpdateProfile(ctx, phone, profile)
}

// Logout notifies the server, clears the local session, and routes to login.
// The server call is advisory; a failure there never blocks the local wipe.
func (f *Account) Logout(ctx context.Context) (nav.Route, error) {
	if err := f.client.Logout(ctx); err != nil {
		log.Printf("[Account] server logout failed: %v", err)
	}
	if err := f.session.Clear(ctx); err != nil {
		return "", err
	}
	return nav.RouteLogin, nil
}
