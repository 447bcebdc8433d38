package match

// HitResult describes what a hit did
type HitResult struct {
	Applied    bool
	Eliminated bool
	Attacker   *PlayerState
	Target     *PlayerState
}

// Combat applies hits between players
type Combat struct {
	registry *Registry
}

// NewCombat creates a resolver over the given registry
func NewCombat(registry *Registry) *Combat {
	return &Combat{registry: registry}
}

// ApplyHit removes one health point from the target. A hit involving an
// unknown or dead player on either side changes nothing; this covers
// snowballs that land after the thrower or the target was eliminated.
func (c *Combat) ApplyHit(attackerID, targetID string) HitResult {
	attacker, ok := c.registry.Lookup(attackerID)
	if !ok {
		return HitResult{}
	}
	target, ok := c.registry.Lookup(targetID)
	if !ok {
		return HitResult{}
	}
	if !attacker.Alive || !target.Alive {
		return HitResult{}
	}

	target.Health--
	result := HitResult{Applied: true, Attacker: attacker, Target: target}

	if target.Health <= 0 {
		target.Health = 0
		target.Alive = false
		target.Deaths++
		attacker.Kills++
		result.Eliminated = true
	}

	return result
}
