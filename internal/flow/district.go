package flow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
	"github.com/example/pup/internal/store"
)

// DistrictAPI is the slice of the API client the district portal needs.
type DistrictAPI interface {
	UserDistrict(ctx context.Context, phone string) (api.District, error)
	Districts(ctx context.Context) ([]api.District, error)
	DistrictInfo(ctx context.Context) (api.District, error)
}

// Districts serves the district portal: the session's assembly details with a
// local read-through cache, plus reference lists.
type Districts struct {
	session *session.Manager
	client  DistrictAPI
	store   *store.Store
}

// NewDistricts constructs the district flow.
func NewDistricts(sess *session.Manager, client DistrictAPI, st *store.Store) *Districts {
	return &Districts{session: sess, client: client, store: st}
}

// Details returns the session's district, serving the cached copy when one is
// present and falling back to a fetch (which refreshes the cache) otherwise.
func (f *Districts) Details(ctx context.Context) (api.District, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.District{}, err
	}

	if raw, ok, err := f.store.Get(ctx, store.KeyCachedDistrict); err == nil && ok {
		var cached api.District
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		// Corrupt cache entries fall through to a fresh fetch.
	}

	district, err := f.client.UserDistrict(ctx, phone)
	if err != nil {
		return api.District{}, err
	}

	if raw, err := json.Marshal(district); err == nil {
		if err := f.store.Set(ctx, store.KeyCachedDistrict, string(raw)); err != nil {
			log.Printf("[Districts] caching district failed: %v", err)
		}
	}
	return district, nil
}

// List returns every district for pickers.
func (f *Districts) List(ctx context.Context) ([]api.District, error) {
	return f.client.Districts(ctx)
}

// Info returns the assembly banner for portal headers.
func (f *Districts) Info(ctx context.Context) (api.District, error) {
	return f.client.DistrictInfo(ctx)
}

// Select persists the chosen district id for later lookups.
func (f *Districts) Select(ctx context.Context, id string) error {
	if id == "" {
		return api.ValidationError("select a district")
	}
	return f.store.Set(ctx, store.KeyDistrictID, id)
}
