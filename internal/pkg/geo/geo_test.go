package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Zero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(0, 0, 0, 0))
	assert.Equal(t, 0.0, Distance(-6.2088, 106.8456, -6.2088, 106.8456))
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(-6.2088, 106.8456, -6.1751, 106.8650)
	d2 := Distance(-6.1751, 106.8650, -6.2088, 106.8456)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_EquatorLongitudeOffsets(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km with R = 6371 km.
	assert.InDelta(t, 111194.9, Distance(0, 0, 0, 1), 1.0)

	// Small offsets used by the geofence: 0.0004 deg ~ 44.5 m, 0.0005 deg ~ 55.6 m.
	assert.InDelta(t, 44.5, Distance(0, 0, 0, 0.0004), 0.1)
	assert.InDelta(t, 55.6, Distance(0, 0, 0, 0.0005), 0.1)
}

func TestDistance_KnownCity(t *testing.T) {
	// Jakarta (Monas) to Bandung (Gedung Sate), roughly 117 km.
	d := Distance(-6.1754, 106.8272, -6.9025, 107.6186)
	assert.InDelta(t, 117000, d, 2000)
}
