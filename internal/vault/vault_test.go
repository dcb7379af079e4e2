package vault

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lotbump/lotbump/internal/cookies"
	"github.com/spf13/afero"
)

const export = `[{"name":"PHPSESSID","value":"sess"},{"name":"golden_key","value":"gk"}]`

func testKey() StaticKey {
	return StaticKey(strings.Repeat("ab", keySize))
}

func TestVault_StoreLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := New(fs, "/cfg/lotbump/cookies.vault", testKey())

	n, err := v.Store([]byte(export))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if n != 2 {
		t.Fatalf("stored %d cookies, want 2", n)
	}

	raw, err := afero.ReadFile(fs, v.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(raw, []byte("sess")) {
		t.Fatal("vault file holds a plaintext cookie value")
	}
	if ok, _ := afero.Exists(fs, v.Path()+".tmp"); ok {
		t.Error("temp file left behind")
	}

	records, err := v.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cookies.BuildHeader(records); got != "PHPSESSID=sess; golden_key=gk; " {
		t.Errorf("header = %q", got)
	}
}

func TestVault_StoreRejectsEmptyExport(t *testing.T) {
	v := New(afero.NewMemMapFs(), "/v", testKey())
	if _, err := v.Store([]byte("  ")); !errors.Is(err, cookies.ErrEmptyExport) {
		t.Fatalf("Store() = %v, want ErrEmptyExport", err)
	}
}

func TestVault_LoadMissing(t *testing.T) {
	v := New(afero.NewMemMapFs(), "/v", testKey())
	if _, err := v.Load(); !errors.Is(err, ErrNoVault) {
		t.Fatalf("Load() = %v, want ErrNoVault", err)
	}
}

func TestVault_LoadWrongKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := New(fs, "/v", testKey()).Store([]byte(export)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	other := StaticKey(strings.Repeat("cd", keySize))
	if _, err := New(fs, "/v", other).Load(); !errors.Is(err, ErrWrongKey) {
		t.Fatalf("Load() = %v, want ErrWrongKey", err)
	}
}

func TestVault_LoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, data := range []string{"garbage", "gcm1"} {
		if err := afero.WriteFile(fs, "/v", []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := New(fs, "/v", testKey()).Load(); !errors.Is(err, ErrCorrupt) {
			t.Errorf("Load(%q) = %v, want ErrCorrupt", data, err)
		}
	}
}

func TestVault_Clear(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := New(fs, "/v", testKey())
	if err := v.Clear(); err != nil {
		t.Fatalf("Clear on empty vault: %v", err)
	}
	if _, err := v.Store([]byte(export)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := v.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := v.Load(); !errors.Is(err, ErrNoVault) {
		t.Errorf("Load after Clear = %v, want ErrNoVault", err)
	}
}

func TestSealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, keySize)
	sealed, err := seal([]byte("hello"), key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !bytes.HasPrefix(sealed, []byte(gcmPrefix)) {
		t.Fatalf("missing %q prefix", gcmPrefix)
	}
	got, err := open(sealed, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("open = %q", got)
	}
	if _, err := seal([]byte("x"), []byte{1}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("seal with short key = %v, want ErrInvalidKey", err)
	}
}
