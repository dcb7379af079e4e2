package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	gcmPrefix = "gcm1"
	keySize   = 32
)

var randReader io.Reader = rand.Reader

func seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	out := make([]byte, 0, len(gcmPrefix)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, gcmPrefix...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

func open(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) < len(gcmPrefix) || string(ciphertext[:len(gcmPrefix)]) != gcmPrefix {
		return nil, ErrCorrupt
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	rest := ciphertext[len(gcmPrefix):]
	if len(rest) < gcm.NonceSize() {
		return nil, ErrCorrupt
	}
	plaintext, err := gcm.Open(nil, rest[:gcm.NonceSize()], rest[gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrWrongKey
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, keySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
