package qrtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct{ next byte }

func (c *countingSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.next
		c.next++
	}
	return len(p), nil
}

func TestIssuer_Issue(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	issuer := NewIssuer(
		WithSource(&countingSource{}),
		WithClock(func() time.Time { return issuedAt }),
	)

	got, err := issuer.Issue("shift-1")
	require.NoError(t, err)

	assert.Len(t, got.Token, 64, "256 bits rendered as hex")
	assert.Equal(t, issuedAt, got.IssuedAt)

	// A reissue produces a different token.
	again, err := issuer.Issue("shift-1")
	require.NoError(t, err)
	assert.NotEqual(t, got.Token, again.Token)
}

func TestEncodeDecodePayload(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	raw, err := EncodePayload("shift-1", "abc123", issuedAt)
	require.NoError(t, err)

	p, err := DecodePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "shift-1", p.ShiftID)
	assert.Equal(t, "abc123", p.Token)
	assert.Equal(t, issuedAt.UnixMilli(), p.Timestamp)
}

func TestDecodePayload_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not json",
		`{}`,
		`{"shiftId":"shift-1"}`,
		`{"token":"abc"}`,
		`{"shiftId":"","token":"abc"}`,
	}

	for _, in := range cases {
		_, err := DecodePayload(in)
		assert.ErrorIs(t, err, ErrMalformedPayload, "input %q", in)
	}
}

func TestValidate_TTLBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	err := Validate("tok", issuedAt, "tok", issuedAt.Add(4*time.Minute+59*time.Second))
	assert.NoError(t, err, "accepted at T+4:59")

	err = Validate("tok", issuedAt, "tok", issuedAt.Add(5*time.Minute))
	assert.NoError(t, err, "accepted exactly at the TTL")

	err = Validate("tok", issuedAt, "tok", issuedAt.Add(5*time.Minute+1*time.Second))
	assert.ErrorIs(t, err, ErrTokenExpired, "rejected at T+5:01")
}

func TestValidate_Mismatch(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	err := Validate("stored", issuedAt, "presented", issuedAt)
	assert.ErrorIs(t, err, ErrTokenMismatch)

	// Mismatch wins over expiry so a stale guess leaks nothing.
	err = Validate("stored", issuedAt, "presented", issuedAt.Add(time.Hour))
	assert.ErrorIs(t, err, ErrTokenMismatch)
}
