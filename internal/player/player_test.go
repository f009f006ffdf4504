package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	p := New("TestPlayer", 100, 60, 70)

	assert.Equal(t, "TestPlayer", p.Name)
	assert.Equal(t, uint32(100), p.Vitality)
	assert.Equal(t, uint32(60), p.Speed)
	assert.Equal(t, uint32(70), p.Strength)
	assert.Equal(t, 60*time.Millisecond, p.TickInterval())
	assert.True(t, p.Alive())
}

func TestDecrease(t *testing.T) {
	tests := []struct {
		name     string
		decrease func(*Player, uint32)
		field    func(*Player) uint32
		first    uint32
		expected uint32
	}{
		{"vitality", (*Player).DecreaseVitality, func(p *Player) uint32 { return p.Vitality }, 30, 70},
		{"speed", (*Player).DecreaseSpeed, func(p *Player) uint32 { return p.Speed }, 20, 80},
		{"strength", (*Player).DecreaseStrength, func(p *Player) uint32 { return p.Strength }, 10, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("TestPlayer", 100, 100, 100)

			tt.decrease(p, tt.first)
			assert.Equal(t, tt.expected, tt.field(p))

			// never goes below zero
			tt.decrease(p, 500)
			assert.Equal(t, uint32(0), tt.field(p))
		})
	}
}

func TestAlive(t *testing.T) {
	p := New("TestPlayer", 10, 50, 50)
	p.DecreaseVitality(10)
	assert.False(t, p.Alive())
}
