package store

import (
	"context"
	"encoding/json"
	"testing"
)

func TestRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, KeyPhoneNumber, "0241234567"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	reopened, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	value, ok, err := reopened.Get(ctx, KeyPhoneNumber)
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v; want value present", value, ok, err)
	}
	if value != "0241234567" {
		t.Errorf("Get() = %q, want %q", value, "0241234567")
	}
}

func TestGetAbsentKey(t *testing.T) {
	s, err := Open(t.TempDir(), "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, ok, err := s.Get(context.Background(), "missing"); ok || err != nil {
		t.Errorf("Get(missing) = ok %v, err %v; want absent, nil", ok, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir(), "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if err := s.Set(ctx, KeyIsUpdated, "1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := s.Delete(ctx, KeyIsUpdated); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyIsUpdated); ok {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestCommitWritesRelatedKeysTogether(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	err = s.Commit(ctx, func(b *Batch) {
		b.Set(KeyPhoneNumber, "0241234567")
		b.Set(KeyIsUpdated, "1")
	})
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	reopened, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	for key, want := range map[string]string{KeyPhoneNumber: "0241234567", KeyIsUpdated: "1"} {
		got, ok, _ := reopened.Get(ctx, key)
		if !ok || got != want {
			t.Errorf("Get(%s) = %q, present %v; want %q", key, got, ok, want)
		}
	}
}

func TestLegacyPhoneKeyMigration(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, "userPhone", "0209876543"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	reopened, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	phone, ok, _ := reopened.Get(ctx, KeyPhoneNumber)
	if !ok || phone != "0209876543" {
		t.Errorf("canonical key = %q, present %v; want migrated value", phone, ok)
	}
	if _, ok, _ := reopened.Get(ctx, "userPhone"); ok {
		t.Error("legacy key still present after migration")
	}
}

func TestDraftSurvivesReopenExactly(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	draft := map[string]string{
		"first_name":    "Kofi",
		"last_name":     "Asante",
		"ghana_card_id": "GHA-000123456-7",
		"region":        "Greater Accra",
	}
	raw, _ := json.Marshal(draft)

	s, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, KeyProfileDraft, string(raw)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	reopened, err := Open(dir, "test-secret")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, ok, _ := reopened.Get(ctx, KeyProfileDraft)
	if !ok || got != string(raw) {
		t.Errorf("draft after reopen = %q, want %q", got, string(raw))
	}
}

func TestWrongDeviceSecretCannotRead(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "secret-a")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, KeyPhoneNumber, "0241234567"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if _, err := Open(dir, "secret-b"); err == nil {
		t.Error("Open() with a different secret succeeded, want error")
	}
}

func TestDeviceSecretProvisionedOnce(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Set(ctx, KeyDistrictID, "12"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Second open with no explicit secret must reuse the provisioned one.
	reopened, err := Open(dir, "")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if got, ok, _ := reopened.Get(ctx, KeyDistrictID); !ok || got != "12" {
		t.Errorf("Get() = %q, present %v; want reused device secret to decrypt", got, ok)
	}
}
