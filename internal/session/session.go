package session

import (
	"context"
	"log"
	"strings"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/store"
)

// ProfileFetcher is the slice of the API client the session layer needs.
type ProfileFetcher interface {
	UserDetails(ctx context.Context, phone string) (api.UserDetails, error)
}

// Manager owns the client-held identity: the verified phone number and the
// cached profile-completion flag. Related writes go through one atomic store
// commit so a crash cannot leave the pair inconsistent.
type Manager struct {
	store   *store.Store
	profile ProfileFetcher
}

// NewManager constructs a Manager over the secure store.
func NewManager(st *store.Store, profile ProfileFetcher) *Manager {
	return &Manager{store: st, profile: profile}
}

// Phone returns the cached phone number, or MissingIdentity when absent.
func (m *Manager) Phone(ctx context.Context) (string, error) {
	phone, ok, err := m.store.Get(ctx, store.KeyPhoneNumber)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(phone) == "" {
		return "", api.MissingIdentity()
	}
	return strings.TrimSpace(phone), nil
}

// SetPhone caches the phone number the user is logging in with, ahead of OTP
// verification.
func (m *Manager) SetPhone(ctx context.Context, phone string) error {
	return m.store.Set(ctx, store.KeyPhoneNumber, phone)
}

// SetVerified records a successful OTP verification: phone number and
// completion flag land in the same commit.
func (m *Manager) SetVerified(ctx context.Context, phone string, completed bool) error {
	return m.store.Commit(ctx, func(b *store.Batch) {
		b.Set(store.KeyPhoneNumber, phone)
		b.Set(store.KeyIsUpdated, flagValue(completed))
	})
}

// SetCompleted updates only the cached completion flag.
func (m *Manager) SetCompleted(ctx context.Context, completed bool) error {
	return m.store.Set(ctx, store.KeyIsUpdated, flagValue(completed))
}

// Clear wipes the session on logout, including per-session caches.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Commit(ctx, func(b *store.Batch) {
		b.Delete(store.KeyPhoneNumber)
		b.Delete(store.KeyIsUpdated)
		b.Delete(store.KeyCachedDistrict)
		b.Delete(store.KeyDistrictID)
		b.Delete(store.KeyPaymentPlan)
		b.Delete(store.KeyPaymentMethod)
	})
}

// Bootstrap decides the launch route. No cached phone routes to login; a
// cached "1" flag goes straight to the main tabs without a fetch; otherwise
// the live profile decides and the flag is re-cached. A failed fetch falls
// back to login, keeping the stored phone so the next launch can retry.
func (m *Manager) Bootstrap(ctx context.Context) nav.Route {
	phone, err := m.Phone(ctx)
	if err != nil {
		return nav.RouteLogin
	}

	cached, ok, err := m.store.Get(ctx, store.KeyIsUpdated)
	if err == nil && ok && strings.TrimSpace(cached) == "1" {
		return nav.RouteMainTabs
	}

	details, err := m.profile.UserDetails(ctx, phone)
	if err != nil {
		log.Printf("[Session] profile check failed: %v", err)
		return nav.RouteLogin
	}

	completed := details.Profile.IsUpdated == 1
	if err := m.SetCompleted(ctx, completed); err != nil {
		log.Printf("[Session] caching completion flag failed: %v", err)
	}

	if completed {
		return nav.RouteMainTabs
	}
	return nav.RouteProfileCompletion
}

func flagValue(completed bool) string {
	if completed {
		return "1"
	}
	return "0"
}
