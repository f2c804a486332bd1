package domain

import (
	"time"
)

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RosterPlayer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Rating         int    `json:"rating"`
	TeamID         int64  `json:"team_id"`
	Role           string `json:"role,omitempty"`
	RoleIcon       string `json:"role_icon,omitempty"`
	IsCareerPlayer bool   `json:"is_career_player"`
}

type TeamWithPlayers struct {
	Team    Team           `json:"team"`
	Players []RosterPlayer `json:"players"`
}

// TeamImport is one team ready to be written by a roster import.
type TeamImport struct {
	Name    string
	Players []PlayerImport
}

type PlayerImport struct {
	Name   string
	Rating int
	Role   string
}

type CareerMatch struct {
	ID           int64     `json:"id"`
	PlayerName   string    `json:"player_name"`
	OpponentTeam string    `json:"opponent_team"`
	Won          bool      `json:"won"`
	Kills        int       `json:"kills"`
	Deaths       int       `json:"deaths"`
	Assists      int       `json:"assists"`
	SeriesID     string    `json:"series_id,omitempty"` // empty for matches recorded outside a stored series
	PlayedAt     time.Time `json:"played_at"`
}

type SeriesRecord struct {
	ID          string             `json:"id"` // nanoid
	TeamA       string             `json:"team_a"`
	TeamB       string             `json:"team_b"`
	Format      string             `json:"format"`
	Winner      string             `json:"winner"`
	Loser       string             `json:"loser"`
	TeamAMaps   int                `json:"team_a_maps"`
	TeamBMaps   int                `json:"team_b_maps"`
	TotalRounds int                `json:"total_rounds"`
	Seed        uint64             `json:"seed,string"`
	PlayedAt    time.Time          `json:"played_at"`
	Maps        []SeriesMap        `json:"maps,omitempty"`
	PlayerStats []SeriesPlayerStat `json:"player_stats,omitempty"`
}

type SeriesMap struct {
	Number        int    `json:"number"`
	Winner        string `json:"winner"`
	Loser         string `json:"loser"`
	WinnerScore   int    `json:"winner_score"`
	LoserScore    int    `json:"loser_score"`
	OvertimeLevel int    `json:"overtime_level"`
}

type SeriesPlayerStat struct {
	Team    string  `json:"team"`
	Name    string  `json:"name"`
	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	Rating  float64 `json:"rating"`
}

type DatabaseStats struct {
	Teams         int `json:"teams"`
	Players       int `json:"players"`
	Roles         int `json:"roles"`
	CareerPlayers int `json:"career_players"`
	Careers       int `json:"careers"`
	CareerMatches int `json:"career_matches"`
	Achievements  int `json:"achievements"`
	Series        int `json:"series"`
}
