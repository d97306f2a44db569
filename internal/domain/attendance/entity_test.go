package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCheckInStatus(t *testing.T) {
	t.Parallel()

	shiftStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusPresent, DeriveCheckInStatus(shiftStart.Add(-10*time.Minute), shiftStart))
	assert.Equal(t, StatusPresent, DeriveCheckInStatus(shiftStart, shiftStart), "exactly on time is present")
	assert.Equal(t, StatusLate, DeriveCheckInStatus(shiftStart.Add(time.Second), shiftStart), "strictly after is late")
}

func TestDateBucket(t *testing.T) {
	t.Parallel()

	douala, err := time.LoadLocation("Africa/Douala")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 23:30 UTC on June 1 is already June 2 in Douala (UTC+1).
	instant := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	bucket := DateBucket(instant, douala)

	assert.Equal(t, 2025, bucket.Year())
	assert.Equal(t, time.June, bucket.Month())
	assert.Equal(t, 2, bucket.Day())
	assert.Equal(t, 0, bucket.Hour())
	assert.Equal(t, douala, bucket.Location())

	// Two instants on the same local day share a bucket.
	later := time.Date(2025, 6, 2, 20, 0, 0, 0, douala)
	assert.True(t, bucket.Equal(DateBucket(later, douala)))
}
