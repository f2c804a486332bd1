package db

import (
	"database/sql"
	"time"
)

type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Role struct {
	ID          int64
	Name        string
	Description string
	Icon        string
}

type Achievement struct {
	ID          int64
	Name        string
	Description string
	Icon        string
}

type Player struct {
	ID             int64
	Name           string
	Rating         int64
	TeamID         int64
	RoleID         sql.NullInt64
	IsCareerPlayer bool
}

type RosterRow struct {
	TeamID         int64
	TeamName       string
	PlayerID       int64
	PlayerName     string
	Rating         int64
	RoleName       sql.NullString
	RoleIcon       sql.NullString
	IsCareerPlayer bool
}

type CareerPlayer struct {
	ID               int64
	Name             string
	BaseRating       int64
	CurrentRating    int64
	Level            int64
	Experience       int64
	ExperienceToNext int64
	MatchesPlayed    int64
	Wins             int64
	TotalKills       int64
	TotalDeaths      int64
	TotalAssists     int64
	Role             string
	TeamID           sql.NullInt64
	CountryID        sql.NullInt64
	CreatedAt        time.Time
}

type Career struct {
	ID             int64
	PlayerName     string
	CareerPlayerID int64
	CreatedAt      time.Time
	LastPlayed     time.Time
	TotalMatches   int64
	TournamentsWon int64
	CurrentStreak  int64
	BestStreak     int64
}

type CareerMatch struct {
	ID            int64
	CareerID      int64
	OpponentTeam  string
	Won           bool
	PlayerKills   int64
	PlayerDeaths  int64
	PlayerAssists int64
	SeriesID      sql.NullString
	PlayedAt      time.Time
}

type Series struct {
	ID          string
	TeamA       string
	TeamB       string
	Format      string
	Winner      string
	Loser       string
	TeamAMaps   int64
	TeamBMaps   int64
	TotalRounds int64
	Seed        int64
	PlayedAt    time.Time
}

type SeriesMap struct {
	SeriesID      string
	MapNumber     int64
	Winner        string
	Loser         string
	WinnerScore   int64
	LoserScore    int64
	OvertimeLevel int64
}

type SeriesPlayerStat struct {
	SeriesID   string
	Team       string
	PlayerName string
	Kills      int64
	Deaths     int64
	Assists    int64
	Rating     float64
}
