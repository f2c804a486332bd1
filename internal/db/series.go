package db

import (
	"context"
	"time"
)

const insertSeries = `
INSERT INTO series (
    id, team_a, team_b, format, winner, loser, team_a_maps, team_b_maps, total_rounds, seed, played_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertSeriesParams struct {
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

func (q *Queries) InsertSeries(ctx context.Context, arg InsertSeriesParams) error {
	_, err := q.db.ExecContext(ctx, insertSeries,
		arg.ID,
		arg.TeamA,
		arg.TeamB,
		arg.Format,
		arg.Winner,
		arg.Loser,
		arg.TeamAMaps,
		arg.TeamBMaps,
		arg.TotalRounds,
		arg.Seed,
		arg.PlayedAt,
	)
	return err
}

const insertSeriesMap = `
INSERT INTO series_maps (series_id, map_number, winner, loser, winner_score, loser_score, overtime_level)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertSeriesMap(ctx context.Context, arg SeriesMap) error {
	_, err := q.db.ExecContext(ctx, insertSeriesMap,
		arg.SeriesID,
		arg.MapNumber,
		arg.Winner,
		arg.Loser,
		arg.WinnerScore,
		arg.LoserScore,
		arg.OvertimeLevel,
	)
	return err
}

const insertSeriesPlayerStat = `
INSERT INTO series_player_stats (series_id, team, player_name, kills, deaths, assists, rating)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertSeriesPlayerStat(ctx context.Context, arg SeriesPlayerStat) error {
	_, err := q.db.ExecContext(ctx, insertSeriesPlayerStat,
		arg.SeriesID,
		arg.Team,
		arg.PlayerName,
		arg.Kills,
		arg.Deaths,
		arg.Assists,
		arg.Rating,
	)
	return err
}

const seriesColumns = `
SELECT id, team_a, team_b, format, winner, loser, team_a_maps, team_b_maps, total_rounds, seed, played_at
FROM series
`

func scanSeries(s interface{ Scan(...any) error }) (Series, error) {
	var i Series
	err := s.Scan(
		&i.ID,
		&i.TeamA,
		&i.TeamB,
		&i.Format,
		&i.Winner,
		&i.Loser,
		&i.TeamAMaps,
		&i.TeamBMaps,
		&i.TotalRounds,
		&i.Seed,
		&i.PlayedAt,
	)
	return i, err
}

func (q *Queries) GetSeries(ctx context.Context, id string) (Series, error) {
	return scanSeries(q.db.QueryRowContext(ctx, seriesColumns+` WHERE id = ?`, id))
}

func (q *Queries) ListRecentSeries(ctx context.Context, limit int64) ([]Series, error) {
	rows, err := q.db.QueryContext(ctx, seriesColumns+` ORDER BY played_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Series
	for rows.Next() {
		i, err := scanSeries(rows)
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

const listSeriesMaps = `
SELECT series_id, map_number, winner, loser, winner_score, loser_score, overtime_level
FROM series_maps WHERE series_id = ? ORDER BY map_number
`

func (q *Queries) ListSeriesMaps(ctx context.Context, seriesID string) ([]SeriesMap, error) {
	rows, err := q.db.QueryContext(ctx, listSeriesMaps, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SeriesMap
	for rows.Next() {
		var i SeriesMap
		if err := rows.Scan(
			&i.SeriesID,
			&i.MapNumber,
			&i.Winner,
			&i.Loser,
			&i.WinnerScore,
			&i.LoserScore,
			&i.OvertimeLevel,
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

const listSeriesPlayerStats = `
SELECT series_id, team, player_name, kills, deaths, assists, rating
FROM series_player_stats WHERE series_id = ? ORDER BY rowid
`

func (q *Queries) ListSeriesPlayerStats(ctx context.Context, seriesID string) ([]SeriesPlayerStat, error) {
	rows, err := q.db.QueryContext(ctx, listSeriesPlayerStats, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SeriesPlayerStat
	for rows.Next() {
		var i SeriesPlayerStat
		if err := rows.Scan(
			&i.SeriesID,
			&i.Team,
			&i.PlayerName,
			&i.Kills,
			&i.Deaths,
			&i.Assists,
			&i.Rating,
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
