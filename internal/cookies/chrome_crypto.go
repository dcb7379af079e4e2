package cookies

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"
)

// SafeStoragePasswordEnv overrides the "Chrome Safe Storage" keyring entry
// used to decrypt Chrome cookie values.
const SafeStoragePasswordEnv = "LOTBUMP_CHROME_SAFE_STORAGE"

const (
	chromeSalt           = "saltysalt"
	chromeIV             = "                "
	chromeKeyLen         = 16
	chromeSafeStorage    = "Chrome Safe Storage"
	chromeSafeStorageAcc = "Chrome"
	// Chrome prefixes values with a SHA-256 of the host from this meta
	// version on.
	chromeHashedMetaVersion = 24
)

var safeStorageGet = keyring.Get

// chromeDecryptor holds the candidate AES-CBC keys for v10/v11 values.
type chromeDecryptor struct {
	keys [][]byte
}

func newChromeDecryptor() *chromeDecryptor {
	iterations := 1
	if runtime.GOOS == "darwin" {
		iterations = 1003
	}
	var passwords []string
	if pw := strings.TrimSpace(os.Getenv(SafeStoragePasswordEnv)); pw != "" {
		passwords = append(passwords, pw)
	} else if pw, err := safeStorageGet(chromeSafeStorage, chromeSafeStorageAcc); err == nil && strings.TrimSpace(pw) != "" {
		passwords = append(passwords, strings.TrimSpace(pw))
	}
	if runtime.GOOS == "linux" {
		// basic backend (no keyring) and the empty-password fallback
		passwords = append(passwords, "peanuts", "")
	}
	d := &chromeDecryptor{}
	for _, pw := range passwords {
		d.keys = append(d.keys, chromeKey(pw, iterations))
	}
	return d
}

func chromeKey(password string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(chromeSalt), iterations, chromeKeyLen, sha1.New)
}

// decrypt returns the plaintext of a "v10"/"v11" encrypted value.
func (d *chromeDecryptor) decrypt(encrypted []byte, metaVersion int64) (string, bool) {
	if !hasVersionPrefix(encrypted) {
		return "", false
	}
	for _, key := range d.keys {
		plain, err := decryptCBC(encrypted[3:], key)
		if err != nil {
			continue
		}
		if metaVersion >= chromeHashedMetaVersion && len(plain) >= 32 {
			plain = plain[32:]
		}
		plain = bytes.TrimLeftFunc(plain, func(r rune) bool { return r < 0x20 })
		if utf8.Valid(plain) {
			return string(plain), true
		}
	}
	return "", false
}

func decryptCBC(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("cipher input not full blocks")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(chromeIV)).CryptBlocks(out, ciphertext)
	return unpad(out)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("invalid padding length: %d", n)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("invalid padding bytes")
		}
	}
	return b[:len(b)-n], nil
}

func hasVersionPrefix(b []byte) bool {
	return len(b) > 3 && b[0] == 'v' && isDigit(b[1]) && isDigit(b[2])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
