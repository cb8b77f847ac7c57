package flow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/store"
)

type fakeDistrictAPI struct {
	district api.District
	err      error
	calls    int
}

func (f *fakeDistrictAPI) UserDistrict(ctx context.Context, phone string) (api.District, error) {
	f.calls++
	return f.district, f.err
}

func (f *fakeDistrictAPI) Districts(ctx context.Context) ([]api.District, error) {
	return []api.District{f.district}, nil
}

func (f *fakeDistrictAPI) DistrictInfo(ctx context.Context) (api.District, error) {
	return f.district, f.err
}

func TestDetailsCachesAfterFirstFetch(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)
	if err := sess.SetPhone(ctx, "0241234567"); err != nil {
		t.Fatalf("SetPhone() error: %v", err)
	}

	client := &fakeDistrictAPI{district: api.District{ID: 1, DistrictName: "Ayawaso West"}}
	flow := NewDistricts(sess, client, st)

	first, err := flow.Details(ctx)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if first.DistrictName != "Ayawaso West" {
		t.Errorf("Details() = %+v", first)
	}
	if client.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", client.calls)
	}

	// The second read is served from the cache.
	second, err := flow.Details(ctx)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("fetch calls after cached read = %d, want 1", client.calls)
	}
	if second != first {
		t.Errorf("cached district = %+v, want %+v", second, first)
	}
}

func TestDetailsCorruptCacheRefetches(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)
	if err := sess.SetPhone(ctx, "0241234567"); err != nil {
		t.Fatalf("SetPhone() error: %v", err)
	}
	if err := st.Set(ctx, store.KeyCachedDistrict, "{not json"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	client := &fakeDistrictAPI{district: api.District{ID: 2, DistrictName: "Tema West"}}
	flow := NewDistricts(sess, client, st)

	got, err := flow.Details(ctx)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if got.DistrictName != "Tema West" || client.calls != 1 {
		t.Errorf("Details() = %+v after %d calls", got, client.calls)
	}

	// The bad entry was replaced by the fetched copy.
	raw, ok, _ := st.Get(ctx, store.KeyCachedDistrict)
	var cached api.District
	if !ok || json.Unmarshal([]byte(raw), &cached) != nil || cached.ID != 2 {
		t.Errorf("cache after refetch = %q", raw)
	}
}

func TestDetailsWithoutPhone(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)

	flow := NewDistricts(sess, &fakeDistrictAPI{}, st)
	if _, err := flow.Details(ctx); api.KindOf(err) != api.KindMissingIdentity {
		t.Errorf("Details() error kind = %v, want MissingIdentity", api.KindOf(err))
	}
}

func TestSelectPersistsDistrictID(t *testing.T) {
	ctx := context.Background()
	sess, st := newTestSession(t)

	flow := NewDistricts(sess, &fakeDistrictAPI{}, st)
	if err := flow.Select(ctx, ""); api.KindOf(err) != api.KindValidation {
		t.Errorf("Select(\"\") error kind = %v, want validation", api.KindOf(err))
	}
	if err := flow.Select(ctx, "7"); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if id, _, _ := st.Get(ctx, store.KeyDistrictID); id != "7" {
		t.Errorf("persisted district id = %q, want \"7\"", id)
	}
}
