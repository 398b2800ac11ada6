package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Service interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
	RotateKey() error
}

type service struct {
	mu           sync.RWMutex
	gcm          cipher.AEAD
	lastRotation time.Time
}

// NewService builds an AES-256-GCM encryption service. hexKey is the
// 64-hex-character key; when empty a random key is generated, which is
// only suitable for tests and throwaway environments since records
// encrypted with it cannot be read after a restart.
func NewService(hexKey string) (Service, error) {
	key := make([]byte, 32) // AES-256
	if hexKey != "" {
		decodedKey, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("encryption key must be a valid hex string: %v", err)
		}
		if len(decodedKey) != 32 {
			return nil, fmt.Errorf("encryption key must be exactly 32 bytes (64 hex characters) for AES-256")
		}
		key = decodedKey
	} else {
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, err
		}
	}

	gcm, err := buildGCM(key)
	if err != nil {
		return nil, err
	}

	return &service{gcm: gcm, lastRotation: time.Now()}, nil
}

func (s *service) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	s.mu.RLock()
	ciphertext := s.gcm.Seal(nonce, nonce, plaintext, nil)
	s.mu.RUnlock()

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *service) Decrypt(encodedCiphertext string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encodedCiphertext)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < s.gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:s.gcm.NonceSize()]
	ciphertext = ciphertext[s.gcm.NonceSize():]

	s.mu.RLock()
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	s.mu.RUnlock()

	return plaintext, err
}

func (s *service) RotateKey() error {
	newKey := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, newKey); err != nil {
		return err
	}

	gcm, err := buildGCM(newKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.gcm = gcm
	s.lastRotation = time.Now()
	s.mu.Unlock()

	return nil
}

// StartKeyRotation rotates the key on the configured period. Rotation
// invalidates previously written ciphertext, so it is only enabled in
// deployments that re-encrypt on a matching schedule.
func StartKeyRotation(s Service) {
	rotationPeriod := viper.GetDuration("security.encryption.key_rotation_period")
	if rotationPeriod == 0 {
		rotationPeriod = 90 * 24 * time.Hour // 90 days default
	}

	go func() {
		ticker := time.NewTicker(rotationPeriod)
		for range ticker.C {
			_ = s.RotateKey()
		}
	}()
}

func buildGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
