package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lotbump/lotbump/internal/cookies"
	"github.com/spf13/afero"
)

const (
	// FileName is the vault file inside the config directory.
	FileName = "cookies.vault"
	fileMode = 0600
)

var (
	ErrNoVault    = errors.New("vault: no stored cookies")
	ErrNoKey      = errors.New("vault: no key in keyring")
	ErrInvalidKey = errors.New("vault: invalid key")
	ErrWrongKey   = errors.New("vault: key does not match stored cookies")
	ErrCorrupt    = errors.New("vault: file is corrupt")
)

// DefaultPath returns <user config dir>/lotbump/cookies.vault.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lotbump", FileName), nil
}

// Vault is an encrypted cookie export at a fixed path.
type Vault struct {
	fs   afero.Fs
	path string
	keys KeySource
}

func New(fs afero.Fs, path string, keys KeySource) *Vault {
	return &Vault{fs: fs, path: path, keys: keys}
}

func (v *Vault) Path() string { return v.path }

// Store validates export as a cookie export, encrypts it and replaces the
// vault file. It returns the number of cookies stored.
func (v *Vault) Store(export []byte) (int, error) {
	records, err := cookies.ParseExport(export)
	if err != nil {
		return 0, err
	}
	key, err := v.keys.Key(true)
	if err != nil {
		return 0, err
	}
	sealed, err := seal(export, key)
	if err != nil {
		return 0, err
	}
	if err := v.fs.MkdirAll(filepath.Dir(v.path), 0700); err != nil {
		return 0, fmt.Errorf("vault: create dir: %w", err)
	}
	tmp := v.path + ".tmp"
	if err := afero.WriteFile(v.fs, tmp, sealed, fileMode); err != nil {
		return 0, fmt.Errorf("vault: write: %w", err)
	}
	if err := v.fs.Rename(tmp, v.path); err != nil {
		_ = v.fs.Remove(tmp)
		return 0, fmt.Errorf("vault: write: %w", err)
	}
	return len(records), nil
}

// Load decrypts the vault and returns its cookies.
func (v *Vault) Load() ([]cookies.Record, error) {
	sealed, err := afero.ReadFile(v.fs, v.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoVault
	}
	if err != nil {
		return nil, fmt.Errorf("vault: read: %w", err)
	}
	key, err := v.keys.Key(false)
	if err != nil {
		return nil, err
	}
	export, err := open(sealed, key)
	if err != nil {
		return nil, err
	}
	return cookies.ParseExport(export)
}

// Clear removes the vault file and its key. A missing vault is not an error.
func (v *Vault) Clear() error {
	if err := v.fs.Remove(v.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("vault: remove: %w", err)
	}
	return v.keys.Delete()
}
