package player

import "time"

// Player holds one contestant's attributes. Speed is the counter tick
// interval in milliseconds, so a lower speed makes the counter faster.
type Player struct {
	Name     string
	Vitality uint32
	Speed    uint32
	Strength uint32
}

func New(name string, vitality, speed, strength uint32) *Player {
	return &Player{
		Name:     name,
		Vitality: vitality,
		Speed:    speed,
		Strength: strength,
	}
}

// TickInterval converts Speed into the counter interval.
func (p *Player) TickInterval() time.Duration {
	return time.Duration(p.Speed) * time.Millisecond
}

func (p *Player) Alive() bool {
	return p.Vitality > 0
}

// DecreaseVitality lowers vitality, stopping at zero.
func (p *Player) DecreaseVitality(amount uint32) {
	p.Vitality = saturatingSub(p.Vitality, amount)
}

// DecreaseSpeed lowers speed, stopping at zero.
func (p *Player) DecreaseSpeed(amount uint32) {
	p.Speed = saturatingSub(p.Speed, amount)
}

// DecreaseStrength lowers strength, stopping at zero.
func (p *Player) DecreaseStrength(amount uint32) {
	p.Strength = saturatingSub(p.Strength, amount)
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
