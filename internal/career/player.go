// Package career tracks a persistent player's progression across simulated
// matches: experience, levels, rating growth and achievements.
package career

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	DefaultRating            = 50
	DefaultRole              = "Rifler"
	StartingLevel            = 1
	StartingExperienceToNext = 100
	MaxRating                = 100

	baseExperience    = 50
	killExperience    = 10
	assistExperience  = 5
	winExperience     = 100
	deathPenalty      = 2
	minimumExperience = 10

	// experience threshold growth per level
	thresholdGrowth = 1.2
	maxRatingStep   = 5
)

// ErrNegativeStat indicates a stat line with a negative count.
var ErrNegativeStat = errors.New("stat line counts must be non-negative")

// StatLine is a player's personal tally for one match.
type StatLine struct {
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
}

func (s StatLine) Validate() error {
	if s.Kills < 0 || s.Deaths < 0 || s.Assists < 0 {
		return fmt.Errorf("%w: %d/%d/%d", ErrNegativeStat, s.Kills, s.Deaths, s.Assists)
	}
	return nil
}

// ExperienceFor is the experience a match awards, never below 10.
func ExperienceFor(line StatLine, won bool) int {
	exp := baseExperience + killExperience*line.Kills + assistExperience*line.Assists - deathPenalty*line.Deaths
	if won {
		exp += winExperience
	}
	return max(minimumExperience, exp)
}

// Player is the progression-bearing half of a career.
type Player struct {
	Name             string    `json:"name"`
	BaseRating       int       `json:"base_rating"`
	CurrentRating    int       `json:"current_rating"`
	Level            int       `json:"level"`
	Experience       int       `json:"experience"`
	ExperienceToNext int       `json:"experience_to_next"`
	MatchesPlayed    int       `json:"matches_played"`
	Wins             int       `json:"wins"`
	TotalKills       int       `json:"total_kills"`
	TotalDeaths      int       `json:"total_deaths"`
	TotalAssists     int       `json:"total_assists"`
	Achievements     []string  `json:"achievements"`
	Role             string    `json:"role"`
	TeamID           *int64    `json:"team_id,omitempty"`
	CountryID        *int64    `json:"country_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewPlayer(name, role string, teamID *int64, now time.Time) *Player {
	if role == "" {
		role = DefaultRole
	}
	return &Player{
		Name:             name,
		BaseRating:       DefaultRating,
		CurrentRating:    DefaultRating,
		Level:            StartingLevel,
		ExperienceToNext: StartingExperienceToNext,
		Achievements:     []string{},
		Role:             role,
		TeamID:           teamID,
		CreatedAt:        now,
	}
}

// Progress is what one match changed on a Player.
type Progress struct {
	ExperienceGained int      `json:"experience_gained"`
	LevelsGained     int      `json:"levels_gained"`
	RatingGained     int      `json:"rating_gained"`
	NewAchievements  []string `json:"new_achievements"`
}

// ApplyMatchResult folds one match into the player's lifetime totals,
// levels up as many times as the experience allows and unlocks any
// achievement whose condition now holds. A rejected stat line leaves the
// player untouched.
func (p *Player) ApplyMatchResult(won bool, line StatLine) (*Progress, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	p.MatchesPlayed++
	if won {
		p.Wins++
	}
	p.TotalKills += line.Kills
	p.TotalDeaths += line.Deaths
	p.TotalAssists += line.Assists

	startLevel, startRating := p.Level, p.CurrentRating
	exp := ExperienceFor(line, won)
	p.addExperience(exp)

	return &Progress{
		ExperienceGained: exp,
		LevelsGained:     p.Level - startLevel,
		RatingGained:     p.CurrentRating - startRating,
		NewAchievements:  p.checkAchievements(),
	}, nil
}

func (p *Player) addExperience(amount int) {
	p.Experience += amount
	for p.ExperienceToNext > 0 && p.Experience >= p.ExperienceToNext {
		p.levelUp()
	}
}

func (p *Player) levelUp() {
	p.Experience -= p.ExperienceToNext
	p.Level++
	p.ExperienceToNext = int(float64(p.ExperienceToNext) * thresholdGrowth)

	step := min(maxRatingStep, p.Level/5+1)
	p.CurrentRating = min(MaxRating, p.CurrentRating+step)
}

// KDR is lifetime kills over deaths; with no deaths it is the kill count.
func (p *Player) KDR() float64 {
	if p.TotalDeaths == 0 {
		return float64(p.TotalKills)
	}
	return float64(p.TotalKills) / float64(p.TotalDeaths)
}

// WinRate is the percentage of matches won.
func (p *Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.MatchesPlayed) * 100
}

func (p *Player) HasAchievement(name string) bool {
	return slices.Contains(p.Achievements, name)
}

func (p *Player) unlock(name string) bool {
	if p.HasAchievement(name) {
		return false
	}
	p.Achievements = append(p.Achievements, name)
	return true
}
