package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewParticleValidation(t *testing.T) {
	tests := []struct {
		name    string
		mass    float32
		radius  float32
		wantErr bool
	}{
		{"valid", 10, 2, false},
		{"zero mass", 0, 2, true},
		{"negative mass", -5, 2, true},
		{"zero radius", 10, 0, true},
		{"negative radius", 10, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParticle(mgl32.Vec2{100, 100}, tt.mass, tt.radius)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewParticle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.ID == 0 {
				t.Error("NewParticle() assigned the reserved id 0")
			}
		})
	}
}

func TestNewParticleAssignsFreshIDs(t *testing.T) {
	a, _ := NewParticle(mgl32.Vec2{1, 1}, 1, 1)
	b, _ := NewParticle(mgl32.Vec2{2, 2}, 1, 1)
	if a.ID == b.ID {
		t.Errorf("two particles share id %d", a.ID)
	}
}

func TestParticleOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b *Particle
		want bool
	}{
		{
			"distance 8 within summed radii 9",
			&Particle{Position: mgl32.Vec2{100, 100}, Radius: 5},
			&Particle{Position: mgl32.Vec2{108, 100}, Radius: 4},
			true,
		},
		{
			"distance 20 beyond summed radii 9",
			&Particle{Position: mgl32.Vec2{100, 100}, Radius: 5},
			&Particle{Position: mgl32.Vec2{120, 100}, Radius: 4},
			false,
		},
		{
			"touching exactly",
			&Particle{Position: mgl32.Vec2{100, 100}, Radius: 5},
			&Particle{Position: mgl32.Vec2{109, 100}, Radius: 4},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() is not symmetric: %v, want %v", got, tt.want)
			}
		})
	}
}
