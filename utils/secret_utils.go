package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

// Encrypted secret env values are stored inline in the descriptor in the
// form EV[1:base64]. The "1" is the sealing scheme version.
const (
	encryptedValuePrefix = "EV[1:"
	encryptedValueSuffix = "]"
)

var ErrNotEncrypted = errors.New("value is not an encrypted secret")

// IsEncryptedEnvValue reports whether a value is a sealed secret
func IsEncryptedEnvValue(value string) bool {
	return strings.HasPrefix(value, encryptedValuePrefix) && strings.HasSuffix(value, encryptedValueSuffix)
}

// EncryptEnvValue seals a secret env value with the platform encryption key.
// Already-sealed values pass through unchanged so descriptor updates can
// echo stored ciphertext back without double encryption.
func EncryptEnvValue(key, plaintext string) (string, error) {
	if IsEncryptedEnvValue(plaintext) {
		return plaintext, nil
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	secretKey := deriveKey(key)
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &secretKey)

	return encryptedValuePrefix + base64.StdEncoding.EncodeToString(sealed) + encryptedValueSuffix, nil
}

// DecryptEnvValue opens a sealed secret env value
func DecryptEnvValue(key, value string) (string, error) {
	if !IsEncryptedEnvValue(value) {
		return "", ErrNotEncrypted
	}

	encoded := strings.TrimSuffix(strings.TrimPrefix(value, encryptedValuePrefix), encryptedValueSuffix)
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret value: %w", err)
	}

	if len(sealed) < 24 {
		return "", errors.New("sealed value too short")
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	secretKey := deriveKey(key)
	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, &secretKey)
	if !ok {
		return "", errors.New("failed to open sealed value: wrong key or corrupted data")
	}

	return string(plaintext), nil
}

// deriveKey stretches the configured platform key into a secretbox key
func deriveKey(key string) [32]byte {
	return sha256.Sum256([]byte(key))
}
