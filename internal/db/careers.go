package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertCareerPlayer = `
INSERT INTO career_players (
    name, base_rating, current_rating, level, experience, experience_to_next,
    matches_played, wins, total_kills, total_deaths, total_assists,
    role, team_id, country_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    base_rating = excluded.base_rating,
    current_rating = excluded.current_rating,
    level = excluded.level,
    experience = excluded.experience,
    experience_to_next = excluded.experience_to_next,
    matches_played = excluded.matches_played,
    wins = excluded.wins,
    total_kills = excluded.total_kills,
    total_deaths = excluded.total_deaths,
    total_assists = excluded.total_assists,
    role = excluded.role,
    team_id = excluded.team_id,
    country_id = excluded.country_id
RETURNING id
`

type UpsertCareerPlayerParams struct {
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

func (q *Queries) UpsertCareerPlayer(ctx context.Context, arg UpsertCareerPlayerParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertCareerPlayer,
		arg.Name,
		arg.BaseRating,
		arg.CurrentRating,
		arg.Level,
		arg.Experience,
		arg.ExperienceToNext,
		arg.MatchesPlayed,
		arg.Wins,
		arg.TotalKills,
		arg.TotalDeaths,
		arg.TotalAssists,
		arg.Role,
		arg.TeamID,
		arg.CountryID,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getCareerPlayerByID = `
SELECT id, name, base_rating, current_rating, level, experience, experience_to_next,
       matches_played, wins, total_kills, total_deaths, total_assists,
       role, team_id, country_id, created_at
FROM career_players WHERE id = ?
`

func (q *Queries) GetCareerPlayerByID(ctx context.Context, id int64) (CareerPlayer, error) {
	row := q.db.QueryRowContext(ctx, getCareerPlayerByID, id)
	var i CareerPlayer
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.BaseRating,
		&i.CurrentRating,
		&i.Level,
		&i.Experience,
		&i.ExperienceToNext,
		&i.MatchesPlayed,
		&i.Wins,
		&i.TotalKills,
		&i.TotalDeaths,
		&i.TotalAssists,
		&i.Role,
		&i.TeamID,
		&i.CountryID,
		&i.CreatedAt,
	)
	return i, err
}

const insertCareerPlayerAchievement = `
INSERT OR IGNORE INTO career_player_achievements (career_player_id, achievement_id, unlocked_at)
SELECT ?, id, ? FROM achievements WHERE name = ?
`

type InsertCareerPlayerAchievementParams struct {
	CareerPlayerID int64
	UnlockedAt     time.Time
	Name           string
}

func (q *Queries) InsertCareerPlayerAchievement(ctx context.Context, arg InsertCareerPlayerAchievementParams) error {
	_, err := q.db.ExecContext(ctx, insertCareerPlayerAchievement, arg.CareerPlayerID, arg.UnlockedAt, arg.Name)
	return err
}

const listCareerPlayerAchievements = `
SELECT a.name
FROM career_player_achievements cpa
JOIN achievements a ON a.id = cpa.achievement_id
WHERE cpa.career_player_id = ?
ORDER BY cpa.unlocked_at, cpa.rowid
`

func (q *Queries) ListCareerPlayerAchievements(ctx context.Context, careerPlayerID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listCareerPlayerAchievements, careerPlayerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertCareer = `
INSERT INTO careers (
    player_name, career_player_id, created_at, last_played,
    total_matches, tournaments_won, current_streak, best_streak
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_name) DO UPDATE SET
    career_player_id = excluded.career_player_id,
    last_played = excluded.last_played,
    total_matches = excluded.total_matches,
    tournaments_won = excluded.tournaments_won,
    current_streak = excluded.current_streak,
    best_streak = excluded.best_streak
RETURNING id
`

type UpsertCareerParams struct {
	PlayerName     string
	CareerPlayerID int64
	CreatedAt      time.Time
	LastPlayed     time.Time
	TotalMatches   int64
	TournamentsWon int64
	CurrentStreak  int64
	BestStreak     int64
}

func (q *Queries) UpsertCareer(ctx context.Context, arg UpsertCareerParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertCareer,
		arg.PlayerName,
		arg.CareerPlayerID,
		arg.CreatedAt,
		arg.LastPlayed,
		arg.TotalMatches,
		arg.TournamentsWon,
		arg.CurrentStreak,
		arg.BestStreak,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const careerColumns = `
SELECT id, player_name, career_player_id, created_at, last_played,
       total_matches, tournaments_won, current_streak, best_streak
FROM careers
`

func scanCareer(s interface{ Scan(...any) error }) (Career, error) {
	var i Career
	err := s.Scan(
		&i.ID,
		&i.PlayerName,
		&i.CareerPlayerID,
		&i.CreatedAt,
		&i.LastPlayed,
		&i.TotalMatches,
		&i.TournamentsWon,
		&i.CurrentStreak,
		&i.BestStreak,
	)
	return i, err
}

func (q *Queries) GetCareerByPlayerName(ctx context.Context, playerName string) (Career, error) {
	return scanCareer(q.db.QueryRowContext(ctx, careerColumns+` WHERE player_name = ?`, playerName))
}

func (q *Queries) ListCareers(ctx context.Context) ([]Career, error) {
	rows, err := q.db.QueryContext(ctx, careerColumns+` ORDER BY last_played DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Career
	for rows.Next() {
		i, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCareerMatches = `
DELETE FROM career_matches WHERE career_id = ?
`

func (q *Queries) DeleteCareerMatches(ctx context.Context, careerID int64) error {
	_, err := q.db.ExecContext(ctx, deleteCareerMatches, careerID)
	return err
}

const deleteCareer = `
DELETE FROM careers WHERE id = ?
`

func (q *Queries) DeleteCareer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCareer, id)
	return err
}

const deleteCareerPlayerAchievements = `
DELETE FROM career_player_achievements WHERE career_player_id = ?
`

func (q *Queries) DeleteCareerPlayerAchievements(ctx context.Context, careerPlayerID int64) error {
	_, err := q.db.ExecContext(ctx, deleteCareerPlayerAchievements, careerPlayerID)
	return err
}

const deleteCareerPlayer = `
DELETE FROM career_players WHERE id = ?
`

func (q *Queries) DeleteCareerPlayer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCareerPlayer, id)
	return err
}

const insertCareerMatch = `
INSERT INTO career_matches (
    career_id, opponent_team, won, player_kills, player_deaths, player_assists, series_id, played_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

type InsertCareerMatchParams struct {
	CareerID      int64
	OpponentTeam  string
	Won           bool
	PlayerKills   int64
	PlayerDeaths  int64
	PlayerAssists int64
	SeriesID      sql.NullString
	PlayedAt      time.Time
}

func (q *Queries) InsertCareerMatch(ctx context.Context, arg InsertCareerMatchParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, insertCareerMatch,
		arg.CareerID,
		arg.OpponentTeam,
		arg.Won,
		arg.PlayerKills,
		arg.PlayerDeaths,
		arg.PlayerAssists,
		arg.SeriesID,
		arg.PlayedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listCareerMatches = `
SELECT id, career_id, opponent_team, won, player_kills, player_deaths, player_assists, series_id, played_at
FROM career_matches
WHERE career_id = ?
ORDER BY played_at DESC, id DESC
LIMIT ?
`

type ListCareerMatchesParams struct {
	CareerID int64
	Limit    int64
}

func (q *Queries) ListCareerMatches(ctx context.Context, arg ListCareerMatchesParams) ([]CareerMatch, error) {
	rows, err := q.db.QueryContext(ctx, listCareerMatches, arg.CareerID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CareerMatch
	for rows.Next() {
		var i CareerMatch
		if err := rows.Scan(
			&i.ID,
			&i.CareerID,
			&i.OpponentTeam,
			&i.Won,
			&i.PlayerKills,
			&i.PlayerDeaths,
			&i.PlayerAssists,
			&i.SeriesID,
			&i.PlayedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
