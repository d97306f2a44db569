// Package qrtoken mints and validates the short-lived tokens embedded
// in shift check-in QR payloads.
package qrtoken

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TTL is the fixed validity window of an issued token. Expiry is always
// computed from the server-recorded issue time, never from the
// client-supplied payload timestamp.
const TTL = 5 * time.Minute

// tokenBytes gives 256 bits of entropy, rendered as 64 hex characters.
const tokenBytes = 32

var (
	ErrTokenMismatch    = errors.New("qr token does not match the shift")
	ErrTokenExpired     = errors.New("qr token has expired")
	ErrMalformedPayload = errors.New("malformed qr payload")
)

// Source produces cryptographically secure random bytes. Production
// code uses crypto/rand; tests may substitute a deterministic source.
type Source interface {
	Read(p []byte) (int, error)
}

type cryptoSource struct{}

func (cryptoSource) Read(p []byte) (int, error) { return rand.Read(p) }

// Payload is the opaque structure transmitted to the client inside the
// QR image. Timestamp is advisory only and kept for audit.
type Payload struct {
	ShiftID   string `json:"shiftId"`
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// Issuer mints shift-bound tokens from a secure random source.
type Issuer struct {
	source Source
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithSource replaces the random source. Intended for tests.
func WithSource(s Source) Option {
	return func(i *Issuer) { i.source = s }
}

// WithClock replaces the wall clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(opts ...Option) *Issuer {
	i := &Issuer{
		source: cryptoSource{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issued is the result of minting a token for a shift.
type Issued struct {
	Token    string
	IssuedAt time.Time
}

// Issue generates a fresh token for the given shift. The caller is
// responsible for persisting it on the Shift, replacing any prior
// token; the prior token becomes invalid at that point.
func (i *Issuer) Issue(shiftID string) (Issued, error) {
	buf := make([]byte, tokenBytes)
	if _, err := i.source.Read(buf); err != nil {
		return Issued{}, fmt.Errorf("read random token bytes: %w", err)
	}

	return Issued{
		Token:    hex.EncodeToString(buf),
		IssuedAt: i.now().UTC(),
	}, nil
}

// EncodePayload serializes the QR payload transmitted to the client.
func EncodePayload(shiftID, token string, issuedAt time.Time) (string, error) {
	raw, err := json.Marshal(Payload{
		ShiftID:   shiftID,
		Token:     token,
		Timestamp: issuedAt.UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(raw), nil
}

// DecodePayload parses a presented QR payload string. Both shiftId and
// token must be present; anything else fails with ErrMalformedPayload.
func DecodePayload(data string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Payload{}, ErrMalformedPayload
	}
	if p.ShiftID == "" || p.Token == "" {
		return Payload{}, ErrMalformedPayload
	}
	return p, nil
}

// Validate checks a presented token against the stored token and issue
// time. The token comparison is constant-time.
func Validate(storedToken string, issuedAt time.Time, presented string, now time.Time) error {
	if subtle.ConstantTimeCompare([]byte(storedToken), []byte(presented)) != 1 {
		return ErrTokenMismatch
	}
	if now.Sub(issuedAt) > TTL {
		return ErrTokenExpired
	}
	return nil
}
