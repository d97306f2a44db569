package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTimeOfDay(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidTimeOfDay("09:00"))
	assert.True(t, IsValidTimeOfDay("23:59"))
	assert.False(t, IsValidTimeOfDay("24:00"))
	assert.False(t, IsValidTimeOfDay("9am"))
	assert.False(t, IsValidTimeOfDay(""))
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "day", Message: "day must be a weekday name"},
	}

	assert.Equal(t, "date: date is required; day: day must be a weekday name", errs.Error())
	assert.Equal(t, map[string]string{
		"date": "date is required",
		"day":  "day must be a weekday name",
	}, errs.ToMap())
}
