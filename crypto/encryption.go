package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// KeyLength is the required length of the configured encryption key.
const KeyLength = 32

var keySalt = []byte("monad-sniper-bot.wallet-secrets.v1")

// Encryptor seals and opens wallet secrets with AES-256-GCM. The AES key
// is derived once from the configured passphrase using PBKDF2.
type Encryptor struct {
	gcm cipher.AEAD
}

// New validates the configured key and builds the cipher. A missing or
// wrong-length key is fatal: the caller must not start accepting events.
func New(key string) (*Encryptor, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("encryption key must be %d characters, got %d", KeyLength, len(key))
	}

	derived := pbkdf2.Key([]byte(key), keySalt, 100000, 32, sha256.New)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encryptor{gcm: gcm}, nil
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext).
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := e.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.New("ciphertext is not valid base64")
	}

	if len(sealed) < e.gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := sealed[:e.gcm.NonceSize()], sealed[e.gcm.NonceSize():]
	plaintext, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.New("decryption failed: wrong key or corrupted data")
	}

	return string(plaintext), nil
}
