package career

import "time"

// Career is a named save: the progressing player plus series-level records.
type Career struct {
	PlayerName     string    `json:"player_name"`
	Player         *Player   `json:"player"`
	CreatedAt      time.Time `json:"created_at"`
	LastPlayed     time.Time `json:"last_played"`
	TotalMatches   int       `json:"total_matches"`
	TournamentsWon int       `json:"tournaments_won"`
	CurrentStreak  int       `json:"current_streak"`
	BestStreak     int       `json:"best_streak"`
}

func New(name, role string, teamID *int64, now time.Time) *Career {
	return &Career{
		PlayerName: name,
		Player:     NewPlayer(name, role, teamID, now),
		CreatedAt:  now,
		LastPlayed: now,
	}
}

// MatchOutcome reports what recording a match did to a career.
type MatchOutcome struct {
	Won bool `json:"won"`
	Progress
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
}

// RecordMatch applies a match result to the career: streaks first, then the
// player's progression, then career-level achievements. Invalid stat lines
// are rejected before anything changes.
func (c *Career) RecordMatch(won bool, line StatLine, now time.Time) (*MatchOutcome, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	c.TotalMatches++
	c.LastPlayed = now
	if won {
		c.CurrentStreak++
		c.BestStreak = max(c.BestStreak, c.CurrentStreak)
	} else {
		c.CurrentStreak = 0
	}

	progress, err := c.Player.ApplyMatchResult(won, line)
	if err != nil {
		return nil, err
	}
	if c.CurrentStreak >= UnstoppableStreak && c.Player.unlock(AchievementUnstoppable) {
		progress.NewAchievements = append(progress.NewAchievements, AchievementUnstoppable)
	}

	return &MatchOutcome{
		Won:           won,
		Progress:      *progress,
		CurrentStreak: c.CurrentStreak,
		BestStreak:    c.BestStreak,
	}, nil
}

// Summary is a flattened view of the career for reports.
type Summary struct {
	PlayerName       string    `json:"player_name"`
	CreatedAt        time.Time `json:"created_at"`
	LastPlayed       time.Time `json:"last_played"`
	TotalMatches     int       `json:"total_matches"`
	CurrentStreak    int       `json:"current_streak"`
	BestStreak       int       `json:"best_streak"`
	TournamentsWon   int       `json:"tournaments_won"`
	Level            int       `json:"level"`
	Rating           int       `json:"rating"`
	Experience       int       `json:"experience"`
	ExperienceToNext int       `json:"experience_to_next"`
	Wins             int       `json:"wins"`
	WinRate          float64   `json:"win_rate"`
	TotalKills       int       `json:"total_kills"`
	TotalDeaths      int       `json:"total_deaths"`
	TotalAssists     int       `json:"total_assists"`
	KDR              float64   `json:"kdr"`
	Achievements     []string  `json:"achievements"`
	Role             string    `json:"role"`
}

func (c *Career) Summary() Summary {
	p := c.Player
	return Summary{
		PlayerName:       c.PlayerName,
		CreatedAt:        c.CreatedAt,
		LastPlayed:       c.LastPlayed,
		TotalMatches:     c.TotalMatches,
		CurrentStreak:    c.CurrentStreak,
		BestStreak:       c.BestStreak,
		TournamentsWon:   c.TournamentsWon,
		Level:            p.Level,
		Rating:           p.CurrentRating,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
		Wins:             p.Wins,
		WinRate:          p.WinRate(),
		TotalKills:       p.TotalKills,
		TotalDeaths:      p.TotalDeaths,
		TotalAssists:     p.TotalAssists,
		KDR:              p.KDR(),
		Achievements:     append([]string{}, p.Achievements...),
		Role:             p.Role,
	}
}
