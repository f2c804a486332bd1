package server

import (
	"cs2-simulator/internal/career"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/sim"
)

type SimulateSeriesRequest struct {
	TeamA  string `json:"team_a"`
	TeamB  string `json:"team_b"`
	Format string `json:"format"`
	Seed   uint64 `json:"seed,string,omitempty"`
	// Rosters come as a pair and are simulated as given instead of being
	// loaded by team name.
	RosterA *sim.Roster `json:"roster_a,omitempty"`
	RosterB *sim.Roster `json:"roster_b,omitempty"`
}

type SimulateSeriesResponse struct {
	SeriesID string            `json:"series_id"`
	Seed     uint64            `json:"seed,string"`
	Result   *sim.SeriesResult `json:"result"`
}

type GetSeriesRequest struct {
	SeriesID string `json:"series_id"`
}

type GetSeriesResponse struct {
	Series *domain.SeriesRecord `json:"series"`
}

type ListRecentSeriesRequest struct {
	Limit int `json:"limit"`
}

type ListRecentSeriesResponse struct {
	Series []domain.SeriesRecord `json:"series"`
}

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []domain.TeamWithPlayers `json:"teams"`
}

type CreateCareerRequest struct {
	PlayerName string `json:"player_name"`
	Role       string `json:"role"`
	Team       string `json:"team"`
}

type GetCareerRequest struct {
	PlayerName string `json:"player_name"`
}

type CareerResponse struct {
	Career career.Summary `json:"career"`
}

type ListCareersRequest struct{}

type ListCareersResponse struct {
	Careers []career.Summary `json:"careers"`
}

type DeleteCareerRequest struct {
	PlayerName string `json:"player_name"`
}

type DeleteCareerResponse struct{}

type PlayCareerMatchRequest struct {
	PlayerName string `json:"player_name"`
	Opponent   string `json:"opponent"`
	Seed       uint64 `json:"seed,string,omitempty"`
}

type PlayCareerMatchResponse struct {
	Team     string               `json:"team"`
	Opponent string               `json:"opponent"`
	SeriesID string               `json:"series_id"`
	Seed     uint64               `json:"seed,string"`
	Line     sim.PlayerStatLine   `json:"line"`
	Outcome  *career.MatchOutcome `json:"outcome"`
	Series   *sim.SeriesResult    `json:"series"`
	Career   career.Summary       `json:"career"`
}

type GetCareerHistoryRequest struct {
	PlayerName string `json:"player_name"`
	Limit      int    `json:"limit"`
}

type GetCareerHistoryResponse struct {
	Matches []domain.CareerMatch `json:"matches"`
}

type ListAchievementsRequest struct{}

type ListAchievementsResponse struct {
	Achievements []career.CatalogEntry `json:"achievements"`
}

type ListRolesRequest struct{}

type ListRolesResponse struct {
	Roles []career.CatalogEntry `json:"roles"`
}

type GetDatabaseStatsRequest struct{}

type GetDatabaseStatsResponse struct {
	Stats *domain.DatabaseStats `json:"stats"`
}
