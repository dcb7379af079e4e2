package vault

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/zalando/go-keyring"
)

// KeyEnv holds a hex-encoded 32-byte key that replaces the keyring.
const KeyEnv = "LOTBUMP_VAULT_KEY"

// KeySource provides the vault key.
type KeySource interface {
	// Key returns the current key. When create is true and no key exists,
	// a new one is generated and stored.
	Key(create bool) ([]byte, error)
	// Delete forgets the key.
	Delete() error
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

// Keyring stores the key hex-encoded in the OS keyring.
type Keyring struct {
	Service string
	User    string
}

func NewKeyring() *Keyring {
	return &Keyring{Service: "lotbump", User: "vault"}
}

func (k *Keyring) Key(create bool) ([]byte, error) {
	stored, err := keyringGet(k.Service, k.User)
	switch {
	case err == nil:
		return decodeKey(stored)
	case errors.Is(err, keyring.ErrNotFound) && create:
		return k.generate()
	case errors.Is(err, keyring.ErrNotFound):
		return nil, ErrNoKey
	default:
		return nil, fmt.Errorf("keyring: %w", err)
	}
}

func (k *Keyring) Delete() error {
	err := keyringDelete(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (k *Keyring) generate() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(randReader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := keyringSet(k.Service, k.User, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("keyring: %w", err)
	}
	return key, nil
}

// StaticKey is a key supplied by the operator, usually through KeyEnv.
type StaticKey string

func (s StaticKey) Key(bool) ([]byte, error) {
	return decodeKey(string(s))
}

// Delete is a no-op; the operator owns the key.
func (s StaticKey) Delete() error { return nil }

// KeySourceFromEnv returns a StaticKey when KeyEnv is set and the keyring
// otherwise.
func KeySourceFromEnv(getenv func(string) string) KeySource {
	if v := getenv(KeyEnv); v != "" {
		return StaticKey(v)
	}
	return NewKeyring()
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, keySize, len(key))
	}
	return key, nil
}
