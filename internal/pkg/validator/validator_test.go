package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "timezone", Message: "timezone must be a valid IANA timezone name"},
	}

	m := errs.ToMap()
	assert.Equal(t, "name is required", m["name"])
	assert.Equal(t, "timezone must be a valid IANA timezone name", m["timezone"])
	assert.Contains(t, errs.Error(), "name")
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("worker@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0198c2f3-2f37-7d91-a2c5-17b02a01f1cd"))
	assert.True(t, IsValidUUID("d9428888-122b-11e1-b85c-61cd3cbb3210"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-02")
	require.True(t, ok)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 2, date.Day())

	_, ok = IsValidDate("02-03-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	ts, ok := IsValidDateTime("2026-03-02T07:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 7, ts.Hour())

	_, ok = IsValidDateTime("2026-03-02 07:00:00")
	assert.False(t, ok)
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone("Europe/Berlin"))
	assert.True(t, IsValidTimezone("UTC"))
	assert.False(t, IsValidTimezone("Mars/Olympus_Mons"))
	assert.False(t, IsValidTimezone(""))
}

func TestIsMinuteOfDay(t *testing.T) {
	assert.True(t, IsMinuteOfDay(0))
	assert.True(t, IsMinuteOfDay(1439))
	assert.False(t, IsMinuteOfDay(1440))
	assert.False(t, IsMinuteOfDay(-1))
}

func TestIsInSlice(t *testing.T) {
	values := []string{"weekly", "rotating"}
	assert.True(t, IsInSlice("weekly", values))
	assert.False(t, IsInSlice("monthly", values))
}
