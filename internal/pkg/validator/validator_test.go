package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("guru@sekolah.sch.id"))
	assert.True(t, IsValidEmail("nama.belakang+tag@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidNIP(t *testing.T) {
	assert.True(t, IsValidNIP("198709152011011005"))
	assert.False(t, IsValidNIP("12345"))
	assert.False(t, IsValidNIP("19870915201101100X"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-01-31")
	assert.True(t, ok)
	_, ok = IsValidDate("31-01-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsValidLatitude(-6.2088))
	assert.True(t, IsValidLatitude(90))
	assert.False(t, IsValidLatitude(90.0001))
	assert.True(t, IsValidLongitude(106.8456))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(180.5))
}
