package keysetpager

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	aesVersion = 0x01

	aesSaltSize  = 16
	aesNonceSize = 12
	aesTagSize   = 16
	aesKeySize   = 32

	// ver || salt || nonce || tag; anything shorter cannot be a valid token.
	aesMinSize = 1 + aesSaltSize + aesNonceSize + aesTagSize

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// aesCodec authenticates and encrypts token strings with AES-256-GCM. The key
// is derived per token with scrypt from the configured secret and a random
// salt, and the version byte plus salt are bound into the ciphertext as
// additional authenticated data. Encrypting the same plaintext twice yields
// different tokens.
//
// Wire format: std base64 of ver(1) || salt(16) || nonce(12) || tag(16) || ciphertext.
type aesCodec struct {
	secret []byte
}

// NewAESCodec returns a string <-> string codec encrypting with the given
// secret. Chain it after the structured codec:
//
//	Pipe(NewStructuredCodec(), NewAESCodec(secret))
func NewAESCodec(secret string) Codec[string, string] {
	return &aesCodec{secret: []byte(secret)}
}

func (c *aesCodec) deriveKey(salt []byte) ([]byte, error) {
	key, err := scrypt.Key(c.secret, salt, scryptN, scryptR, scryptP, aesKeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	return key, nil
}

// Encode - implements Codec.
func (c *aesCodec) Encode(ctx context.Context, in string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	salt := make([]byte, aesSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := c.deriveKey(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesNonceSize)
	if _, err = rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	aad := append([]byte{aesVersion}, salt...)
	sealed := gcm.Seal(nil, nonce, []byte(in), aad)

	// gcm.Seal appends the tag after the ciphertext; the wire format carries
	// it up front, right after the nonce.
	ciphertext := sealed[:len(sealed)-aesTagSize]
	tag := sealed[len(sealed)-aesTagSize:]

	packed := make([]byte, 0, aesMinSize+len(ciphertext))
	packed = append(packed, aesVersion)
	packed = append(packed, salt...)
	packed = append(packed, nonce...)
	packed = append(packed, tag...)
	packed = append(packed, ciphertext...)

	return base64.StdEncoding.EncodeToString(packed), nil
}

// Decode - implements Codec.
func (c *aesCodec) Decode(ctx context.Context, out string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	packed, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 encoded token: %w", err)
	}

	if len(packed) < aesMinSize {
		return "", fmt.Errorf("too short")
	}
	if packed[0] != aesVersion {
		return "", fmt.Errorf("Unsupported version %d", packed[0])
	}

	salt := packed[1 : 1+aesSaltSize]
	nonce := packed[1+aesSaltSize : 1+aesSaltSize+aesNonceSize]
	tag := packed[1+aesSaltSize+aesNonceSize : aesMinSize]
	ciphertext := packed[aesMinSize:]

	key, err := c.deriveKey(salt)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+aesTagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	aad := append([]byte{aesVersion}, salt...)
	plaintext, err := gcm.Open(nil, nonce, sealed, aad)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate token: %w", err)
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init GCM: %w", err)
	}

	return gcm, nil
}
