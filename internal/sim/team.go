package sim

import "fmt"

// FormSwing bounds the day-to-day form added to a player's rating each round.
const FormSwing = 5.0

// RosterEntry is the engine's input record for one player.
type RosterEntry struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Roster is an ordered team line-up. Rosters are values: the engine builds
// fresh Players from them and never writes back.
type Roster struct {
	Name    string        `json:"name"`
	Players []RosterEntry `json:"players"`
}

func (r Roster) Validate() error {
	if len(r.Players) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRoster, r.Name)
	}
	for _, p := range r.Players {
		if p.Rating < 0 {
			return fmt.Errorf("%w: %s of %q has %d", ErrInvalidRating, p.Name, r.Name, p.Rating)
		}
	}
	return nil
}

// Player carries live counters for the duration of one simulation call.
type Player struct {
	Name              string
	Rating            int
	Kills             int
	Deaths            int
	Assists           int
	PerformanceRating float64
}

// Impact is the player's effective skill for a single round.
func (p *Player) Impact(src Source) float64 {
	return float64(p.Rating) + uniform(src, -FormSwing, FormSwing)
}

func (p *Player) reset() {
	p.Kills = 0
	p.Deaths = 0
	p.Assists = 0
	p.PerformanceRating = 0
}

// Team is a roster with live players, owned by a single simulation call.
type Team struct {
	Name    string
	Players []*Player

	// kill and assist credit, weighted by base rating
	credit *WeightedChooser
}

// NewTeam validates the roster and builds zeroed players from it.
func NewTeam(r Roster) (*Team, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	t := &Team{Name: r.Name, Players: make([]*Player, len(r.Players))}
	weights := make([]float64, len(r.Players))
	for i, e := range r.Players {
		t.Players[i] = &Player{Name: e.Name, Rating: e.Rating}
		weights[i] = float64(e.Rating)
	}
	t.credit = NewWeightedChooser(weights)
	return t, nil
}

// Power is the mean impact of the team's players. It is drawn fresh on
// every call.
func (t *Team) Power(src Source) float64 {
	var sum float64
	for _, p := range t.Players {
		sum += p.Impact(src)
	}
	return sum / float64(len(t.Players))
}

// Player returns the first player with the given name, or nil.
func (t *Team) Player(name string) *Player {
	for _, p := range t.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (t *Team) ResetStats() {
	for _, p := range t.Players {
		p.reset()
	}
}

func (t *Team) StatLines() []PlayerStatLine {
	lines := make([]PlayerStatLine, len(t.Players))
	for i, p := range t.Players {
		lines[i] = PlayerStatLine{
			Name:    p.Name,
			Kills:   p.Kills,
			Deaths:  p.Deaths,
			Assists: p.Assists,
			Rating:  p.PerformanceRating,
		}
	}
	return lines
}

func (t *Team) creditPlayer(src Source) *Player {
	return t.Players[t.credit.Pick(src)]
}

func (t *Team) anyPlayer(src Source) *Player {
	return t.Players[src.IntN(len(t.Players))]
}
