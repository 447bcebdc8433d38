package match

// Registry owns the combat state of every player seen during the match.
// Entries are created on first reference and never deleted.
type Registry struct {
	rules    Rules
	players  map[string]*PlayerState
	order    []string // join order, used for enumeration
	nextTeam Team
}

// NewRegistry creates an empty registry. The first new player joins Red.
func NewRegistry(rules Rules) *Registry {
	return &Registry{
		rules:    rules,
		players:  make(map[string]*PlayerState),
		nextTeam: Red,
	}
}

// NextTeam returns the team the next new player will be assigned to
func (r *Registry) NextTeam() Team {
	return r.nextTeam
}

// GetOrCreate returns the player's entry, creating it with full health and
// ammo and the next alternating team if it does not exist yet.
func (r *Registry) GetOrCreate(id string) *PlayerState {
	if p, ok := r.players[id]; ok {
		return p
	}

	p := &PlayerState{
		ID:      id,
		Health:  r.rules.MaxHealth,
		Ammo:    r.rules.MaxAmmo,
		Team:    r.takeTeam(),
		Alive:   true,
		Present: true,
	}
	r.players[id] = p
	r.order = append(r.order, id)
	return p
}

// ResetForRound restores health, ammo and liveness while keeping team, kills
// and deaths. The team toggle flips for every reset, known player or not.
func (r *Registry) ResetForRound(id string) *PlayerState {
	p, ok := r.players[id]
	if !ok {
		return r.GetOrCreate(id)
	}

	p.Health = r.rules.MaxHealth
	p.Ammo = r.rules.MaxAmmo
	p.Alive = true
	r.nextTeam = r.nextTeam.Other()
	return p
}

// Join marks a player as present, creating the entry if needed
func (r *Registry) Join(id string) *PlayerState {
	p := r.GetOrCreate(id)
	p.Present = true
	return p
}

// Leave marks a player as gone. The entry is kept so a rejoin restores team
// and counters.
func (r *Registry) Leave(id string) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.Present = false
	return true
}

// Lookup returns the entry for id without creating it
func (r *Registry) Lookup(id string) (*PlayerState, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Players returns the present players in join order
func (r *Registry) Players() []*PlayerState {
	players := make([]*PlayerState, 0, len(r.order))
	for _, id := range r.order {
		if p := r.players[id]; p.Present {
			players = append(players, p)
		}
	}
	return players
}

// Len returns the number of known players, present or not
func (r *Registry) Len() int {
	return len(r.players)
}

// CountAliveByTeam counts alive present players on each team
func (r *Registry) CountAliveByTeam() AliveCount {
	var count AliveCount
	for _, p := range r.Players() {
		if !p.Alive {
			continue
		}
		if p.Team == Red {
			count.Red++
		} else {
			count.Blue++
		}
	}
	return count
}

// ResetStats zeroes kills and deaths for every known player
func (r *Registry) ResetStats() {
	for _, p := range r.players {
		p.Kills = 0
		p.Deaths = 0
	}
}

func (r *Registry) takeTeam() Team {
	team := r.nextTeam
	r.nextTeam = r.nextTeam.Other()
	return team
}
