package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("Same point", func(t *testing.T) {
		assert.InDelta(t, 0, Distance(-6.2, 106.8, -6.2, 106.8), 1e-9)
	})

	t.Run("One degree of latitude", func(t *testing.T) {
		// 2*pi*6371/360
		assert.InDelta(t, 111.195, Distance(0, 0, 1, 0), 0.01)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := Distance(51.5074, -0.1278, 48.8566, 2.3522)
		b := Distance(48.8566, 2.3522, 51.5074, -0.1278)
		assert.InDelta(t, a, b, 1e-9)
		assert.InDelta(t, 343.5, a, 1.0)
	})
}

func TestBox(t *testing.T) {
	lat, lng := 40.0, -74.0

	box := Box(lat, lng, 10)

	for _, p := range [][2]float64{
		{lat + 0.08, lng},
		{lat - 0.08, lng},
		{lat, lng + 0.1},
		{lat, lng - 0.1},
	} {
		if Distance(lat, lng, p[0], p[1]) < 10 {
			assert.True(t, p[0] >= box.MinLat && p[0] <= box.MaxLat, "lat %v outside box", p[0])
			assert.True(t, p[1] >= box.MinLng && p[1] <= box.MaxLng, "lng %v outside box", p[1])
		}
	}

	t.Run("Pole widens to all longitudes", func(t *testing.T) {
		polar := Box(89.99, 10, 50)
		assert.Equal(t, -180.0, polar.MinLng)
		assert.Equal(t, 180.0, polar.MaxLng)
	})
}
