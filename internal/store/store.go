package store

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// ErrUnavailable wraps any I/O or crypto failure of the underlying storage.
var ErrUnavailable = errors.New("secure store unavailable")

const (
	storeFile  = "store.bin"
	deviceFile = "device_id"
)

// Store is an encrypted string key-value file keyed by a per-device secret.
// Values survive process restarts; related keys can be written together with
// Commit so a crash cannot leave them half-updated.
type Store struct {
	mu     sync.Mutex
	path   string
	aead   cipher.AEAD
	values map[string]string
}

// Open loads (or creates) the store under dir. deviceSecret may be empty, in
// which case a device identifier is provisioned on first run and reused.
func Open(dir, deviceSecret string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrUnavailable, err)
	}

	if deviceSecret == "" {
		secret, err := loadOrCreateDeviceSecret(filepath.Join(dir, deviceFile))
		if err != nil {
			return nil, err
		}
		deviceSecret = secret
	}

	aead, err := deriveAEAD(deviceSecret)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   filepath.Join(dir, storeFile),
		aead:   aead,
		values: map[string]string{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	// Fold the legacy phone key into the canonical one.
	if legacy, ok := s.values[legacyPhoneKey]; ok {
		if _, exists := s.values[KeyPhoneNumber]; !exists {
			s.values[KeyPhoneNumber] = legacy
		}
		delete(s.values, legacyPhoneKey)
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set writes a single key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.Commit(ctx, func(b *Batch) {
		b.Set(key, value)
	})
}

// Delete removes a single key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.Commit(ctx, func(b *Batch) {
		b.Delete(key)
	})
}

// Batch collects writes applied atomically by Commit.
type Batch struct {
	set map[string]string
	del []string
}

// Set stages a write.
func (b *Batch) Set(key, value string) {
	b.set[key] = value
}

// Delete stages a removal.
func (b *Batch) Delete(key string) {
	b.del = append(b.del, key)
}

// Commit applies every staged write in one persist. Either the whole batch
// reaches disk or none of it does.
func (s *Store) Commit(ctx context.Context, fn func(*Batch)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := &Batch{set: map[string]string{}}
	fn(batch)

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := make(map[string]string, len(s.values))
	for k, v := range s.values {
		previous[k] = v
	}

	for k, v := range batch.set {
		s.values[k] = v
	}
	for _, k := range batch.del {
		delete(s.values, k)
	}

	if err := s.persistLocked(); err != nil {
		s.values = previous
		return err
	}
	return nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read store: %v", ErrUnavailable, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return fmt.Errorf("%w: store file truncated", ErrUnavailable)
	}

	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return fmt.Errorf("%w: decrypt store: %v", ErrUnavailable, err)
	}

	if err := json.Unmarshal(plain, &s.values); err != nil {
		return fmt.Errorf("%w: decode store: %v", ErrUnavailable, err)
	}
	return nil
}

// persistLocked writes the whole value map via temp file + rename so readers
// never observe a partial write.
func (s *Store) persistLocked() error {
	plain, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("%w: encode store: %v", ErrUnavailable, err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("%w: nonce: %v", ErrUnavailable, err)
	}
	sealed := append(nonce, s.aead.Seal(nil, nonce, plain, nil)...)

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("%w: write store: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace store: %v", ErrUnavailable, err)
	}
	return nil
}

func deriveAEAD(secret string) (cipher.AEAD, error) {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("pup-store-key"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("%w: derive key: %v", ErrUnavailable, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher: %v", ErrUnavailable, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: gcm: %v", ErrUnavailable, err)
	}
	return aead, nil
}

func loadOrCreateDeviceSecret(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(raw)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: read device id: %v", ErrUnavailable, err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("%w: write device id: %v", ErrUnavailable, err)
	}
	return id, nil
}
