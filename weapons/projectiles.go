package weapons

import "github.com/gridfire/client/gamemath"

// Projectile is one visual projectile advanced locally between ticks.
type Projectile struct {
	Pos gamemath.Vec2
	Vel gamemath.Vec2
	TTL float64 // seconds remaining
}

// ProjectilePool advances projectile visuals. Purely cosmetic: hits and
// damage are the server's business.
type ProjectilePool struct {
	active []Projectile
}

func NewProjectilePool() *ProjectilePool {
	return &ProjectilePool{}
}

// Spawn adds a projectile.
func (p *ProjectilePool) Spawn(pos, vel gamemath.Vec2, ttl float64) {
	p.active = append(p.active, Projectile{Pos: pos, Vel: vel, TTL: ttl})
}

// Update advances every projectile and expires the spent ones.
func (p *ProjectilePool) Update(deltaSeconds float64) {
	alive := p.active[:0]
	for _, pr := range p.active {
		pr.TTL -= deltaSeconds
		if pr.TTL <= 0 {
			continue
		}
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(deltaSeconds))
		alive = append(alive, pr)
	}
	p.active = alive
}

// Active returns the live projectiles for rendering.
func (p *ProjectilePool) Active() []Projectile { return p.active }
