package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	// MaxCookieSize is the maximum size for a cookie (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum secret length accepted by New.
	minSecretLength = 32

	signInfo    = "cookie signing key"
	encryptInfo = "cookie encryption key"
)

// keys is the pair of purpose-bound keys derived from one secret.
type keys struct {
	sign    []byte
	encrypt cipher.AEAD
}

// deriveKeys expands a secret into independent signing and encryption keys with HKDF-SHA256.
func deriveKeys(secret string) (keys, error) {
	signKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(signInfo)), signKey); err != nil {
		return keys{}, err
	}

	encKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(encryptInfo)), encKey); err != nil {
		return keys{}, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return keys{}, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return keys{}, err
	}

	return keys{sign: signKey, encrypt: gcm}, nil
}

// Manager handles HTTP cookie operations with signing and encryption.
// It is safe for concurrent use.
type Manager struct {
	keys     []keys // keys[0] is active, the rest are accepted for rotation
	defaults Options
	maxSize  int
}

// ManagerOption configures the Manager itself (not individual cookies).
type ManagerOption func(*Manager)

// WithMaxSize sets the maximum cookie size.
func WithMaxSize(size int) ManagerOption {
	return func(m *Manager) {
		if size > 0 {
			m.maxSize = size
		}
	}
}

// New creates a new cookie manager with the specified secrets and options.
// The first secret is used for new cookies; every secret is tried when reading.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	m := &Manager{
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
		maxSize: MaxCookieSize,
	}

	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
		k, err := deriveKeys(secret)
		if err != nil {
			return nil, fmt.Errorf("derive keys: %w", err)
		}
		m.keys = append(m.keys, k)
	}

	return m, nil
}

// NewWithOptions creates a new cookie manager with additional manager options.
func NewWithOptions(secrets []string, cookieOpts []Option, managerOpts ...ManagerOption) (*Manager, error) {
	m, err := New(secrets, cookieOpts...)
	if err != nil {
		return nil, err
	}

	for _, opt := range managerOpts {
		opt(m)
	}

	return m, nil
}

// Set stores a plain cookie value.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c, err := m.newCookie(name, value, opts)
	if err != nil {
		return err
	}
	http.SetCookie(w, c)
	return nil
}

// Get retrieves a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.removal(name))
}

// SetSigned stores a value readable by the client but protected against tampering.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned retrieves and verifies a signed cookie value.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, signed)
}

// SetEncrypted stores a value the client can neither read nor modify.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.encrypt(name, value)
	if err != nil {
		return err
	}
	return m.Set(w, name, sealed, opts...)
}

// GetEncrypted retrieves and decrypts a cookie value.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	sealed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(name, sealed)
}

// newCookie builds a cookie with the manager defaults and enforces the size limit.
func (m *Manager) newCookie(name, value string, opts []Option) (*http.Cookie, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n;=,\"") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	options := applyOptions(m.defaults, opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if size := len(c.String()); size > m.maxSize {
		return nil, ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}
	return c, nil
}

// removal builds the cookie that tells the client to drop name.
func (m *Manager) removal(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	}
}

func mac(key []byte, name, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// sign encodes value with an HMAC bound to the cookie name.
func (m *Manager) sign(name, value string) string {
	sig := mac(m.keys[0].sign, name, value)
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

// verify checks a signed value against every known key.
func (m *Manager) verify(name, signed string) (string, error) {
	encodedValue, encodedSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal(sig, mac(k.sign, name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// encrypt seals value with AES-256-GCM using the cookie name as associated data,
// so a sealed value is only accepted under the name it was issued for.
func (m *Manager) encrypt(name, value string) (string, error) {
	gcm := m.keys[0].encrypt

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// decrypt opens a sealed value with every known key.
func (m *Manager) decrypt(name, encoded string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		ns := k.encrypt.NonceSize()
		if len(sealed) < ns+k.encrypt.Overhead() {
			return "", ErrInvalidFormat
		}
		plaintext, err := k.encrypt.Open(nil, sealed[:ns], sealed[ns:], []byte(name))
		if err == nil {
			return string(plaintext), nil
		}
	}
	return "", ErrDecryptionFailed
}
