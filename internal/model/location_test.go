package model

import (
	"testing"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		x       int32
		y       int32
		z       int32
		heading uint16
		want    Location
	}{
		{
			name: "zero values",
			want: Location{},
		},
		{
			name:    "negative coordinates",
			x:       -100,
			y:       -200,
			z:       -300,
			heading: 32768,
			want:    Location{X: -100, Y: -200, Z: -300, Heading: 32768},
		},
		{
			name:    "max heading",
			heading: 65535,
			want:    Location{Heading: 65535},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLocation(tt.x, tt.y, tt.z, tt.heading)
			if got != tt.want {
				t.Errorf("NewLocation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocation_WithHeading(t *testing.T) {
	loc := NewLocation(1, 2, 3, 0)
	turned := loc.WithHeading(16384)

	if turned.Heading != 16384 {
		t.Errorf("WithHeading() heading = %d, want 16384", turned.Heading)
	}
	if loc.Heading != 0 {
		t.Errorf("original Location mutated: heading = %d", loc.Heading)
	}
}

func TestLocation_DistanceSquared(t *testing.T) {
	a := NewLocation(0, 0, 0, 0)
	b := NewLocation(3, 4, 0, 0)

	if got := a.DistanceSquared(b); got != 25 {
		t.Errorf("DistanceSquared() = %d, want 25", got)
	}

	// No int32 overflow on far points
	far := NewLocation(1_000_000_000, 0, 0, 0)
	near := NewLocation(-1_000_000_000, 0, 0, 0)
	if got := far.DistanceSquared(near); got != 4_000_000_000_000_000_000 {
		t.Errorf("DistanceSquared() = %d, want 4e18", got)
	}
}
