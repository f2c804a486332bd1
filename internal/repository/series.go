package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"cs2-simulator/internal/db"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/sim"
)

const seriesIDLength = 12

type SeriesRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSeriesRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SeriesRepository {
	return &SeriesRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// NewSeriesRecord flattens an engine result into its stored form. Player
// stats keep team A's lines before team B's.
func NewSeriesRecord(res *sim.SeriesResult, seed uint64, playedAt time.Time) *domain.SeriesRecord {
	rec := &domain.SeriesRecord{
		TeamA:       res.TeamA,
		TeamB:       res.TeamB,
		Format:      res.Format.String(),
		Winner:      res.Winner,
		Loser:       res.Loser,
		TeamAMaps:   res.TeamAMaps,
		TeamBMaps:   res.TeamBMaps,
		TotalRounds: res.TotalRounds(),
		Seed:        seed,
		PlayedAt:    playedAt,
	}
	for i, m := range res.Maps {
		rec.Maps = append(rec.Maps, domain.SeriesMap{
			Number:        i + 1,
			Winner:        m.Winner,
			Loser:         m.Loser,
			WinnerScore:   m.WinnerScore,
			LoserScore:    m.LoserScore,
			OvertimeLevel: m.OvertimeLevel,
		})
	}
	for _, team := range []string{res.TeamA, res.TeamB} {
		for _, l := range res.PlayerStats[team] {
			rec.PlayerStats = append(rec.PlayerStats, domain.SeriesPlayerStat{
				Team:    team,
				Name:    l.Name,
				Kills:   l.Kills,
				Deaths:  l.Deaths,
				Assists: l.Assists,
				Rating:  l.Rating,
			})
		}
	}
	return rec
}

// Save stores rec under a fresh id and sets rec.ID.
func (r *SeriesRepository) Save(ctx context.Context, rec *domain.SeriesRecord) (string, error) {
	id, err := gonanoid.New(seriesIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate series id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.InsertSeries(ctx, db.InsertSeriesParams{
		ID:          id,
		TeamA:       rec.TeamA,
		TeamB:       rec.TeamB,
		Format:      rec.Format,
		Winner:      rec.Winner,
		Loser:       rec.Loser,
		TeamAMaps:   int64(rec.TeamAMaps),
		TeamBMaps:   int64(rec.TeamBMaps),
		TotalRounds: int64(rec.TotalRounds),
		Seed:        int64(rec.Seed),
		PlayedAt:    rec.PlayedAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert series: %w", err)
	}

	for _, m := range rec.Maps {
		err := qtx.InsertSeriesMap(ctx, db.SeriesMap{
			SeriesID:      id,
			MapNumber:     int64(m.Number),
			Winner:        m.Winner,
			Loser:         m.Loser,
			WinnerScore:   int64(m.WinnerScore),
			LoserScore:    int64(m.LoserScore),
			OvertimeLevel: int64(m.OvertimeLevel),
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert map %d: %w", m.Number, err)
		}
	}

	for _, s := range rec.PlayerStats {
		err := qtx.InsertSeriesPlayerStat(ctx, db.SeriesPlayerStat{
			SeriesID:   id,
			Team:       s.Team,
			PlayerName: s.Name,
			Kills:      int64(s.Kills),
			Deaths:     int64(s.Deaths),
			Assists:    int64(s.Assists),
			Rating:     s.Rating,
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert stats for %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit series: %w", err)
	}

	rec.ID = id
	r.logger.Debug().
		Str("series_id", id).
		Str("winner", rec.Winner).
		Int("maps", len(rec.Maps)).
		Msg("series stored")
	return id, nil
}

func (r *SeriesRepository) Get(ctx context.Context, id string) (*domain.SeriesRecord, error) {
	s, err := r.queries.GetSeries(ctx, id)
	if err != nil {
		return nil, notFound(err, "series "+id)
	}
	rec := seriesRecord(s)

	maps, err := r.queries.ListSeriesMaps(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps of series %s: %w", id, err)
	}
	for _, m := range maps {
		rec.Maps = append(rec.Maps, domain.SeriesMap{
			Number:        int(m.MapNumber),
			Winner:        m.Winner,
			Loser:         m.Loser,
			WinnerScore:   int(m.WinnerScore),
			LoserScore:    int(m.LoserScore),
			OvertimeLevel: int(m.OvertimeLevel),
		})
	}

	stats, err := r.queries.ListSeriesPlayerStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats of series %s: %w", id, err)
	}
	for _, ps := range stats {
		rec.PlayerStats = append(rec.PlayerStats, domain.SeriesPlayerStat{
			Team:    ps.Team,
			Name:    ps.PlayerName,
			Kills:   int(ps.Kills),
			Deaths:  int(ps.Deaths),
			Assists: int(ps.Assists),
			Rating:  ps.Rating,
		})
	}
	return rec, nil
}

// Recent lists the latest series without their maps or player stats.
func (r *SeriesRepository) Recent(ctx context.Context, limit int) ([]domain.SeriesRecord, error) {
	rows, err := r.queries.ListRecentSeries(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	result := make([]domain.SeriesRecord, len(rows))
	for i, s := range rows {
		result[i] = *seriesRecord(s)
	}
	return result, nil
}

func seriesRecord(s db.Series) *domain.SeriesRecord {
	return &domain.SeriesRecord{
		ID:          s.ID,
		TeamA:       s.TeamA,
		TeamB:       s.TeamB,
		Format:      s.Format,
		Winner:      s.Winner,
		Loser:       s.Loser,
		TeamAMaps:   int(s.TeamAMaps),
		TeamBMaps:   int(s.TeamBMaps),
		TotalRounds: int(s.TotalRounds),
		Seed:        uint64(s.Seed),
		PlayedAt:    s.PlayedAt,
	}
}
