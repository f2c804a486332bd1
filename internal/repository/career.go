package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"cs2-simulator/internal/career"
	"cs2-simulator/internal/db"
	"cs2-simulator/internal/domain"
)

type CareerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCareerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CareerRepository {
	return &CareerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *CareerRepository) Get(ctx context.Context, name string) (*career.Career, error) {
	c, err := r.queries.GetCareerByPlayerName(ctx, name)
	if err != nil {
		return nil, notFound(err, "career "+name)
	}
	return r.load(ctx, r.queries, c)
}

func (r *CareerRepository) load(ctx context.Context, q *db.Queries, c db.Career) (*career.Career, error) {
	p, err := q.GetCareerPlayerByID(ctx, c.CareerPlayerID)
	if err != nil {
		return nil, notFound(err, "career player "+c.PlayerName)
	}
	achievements, err := q.ListCareerPlayerAchievements(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements of %s: %w", p.Name, err)
	}
	if achievements == nil {
		achievements = []string{}
	}

	return &career.Career{
		PlayerName: c.PlayerName,
		Player: &career.Player{
			Name:             p.Name,
			BaseRating:       int(p.BaseRating),
			CurrentRating:    int(p.CurrentRating),
			Level:            int(p.Level),
			Experience:       int(p.Experience),
			ExperienceToNext: int(p.ExperienceToNext),
			MatchesPlayed:    int(p.MatchesPlayed),
			Wins:             int(p.Wins),
			TotalKills:       int(p.TotalKills),
			TotalDeaths:      int(p.TotalDeaths),
			TotalAssists:     int(p.TotalAssists),
			Achievements:     achievements,
			Role:             p.Role,
			TeamID:           nullInt64Ptr(p.TeamID),
			CountryID:        nullInt64Ptr(p.CountryID),
			CreatedAt:        p.CreatedAt,
		},
		CreatedAt:      c.CreatedAt,
		LastPlayed:     c.LastPlayed,
		TotalMatches:   int(c.TotalMatches),
		TournamentsWon: int(c.TournamentsWon),
		CurrentStreak:  int(c.CurrentStreak),
		BestStreak:     int(c.BestStreak),
	}, nil
}

// List returns every career, most recently played first.
func (r *CareerRepository) List(ctx context.Context) ([]*career.Career, error) {
	rows, err := r.queries.ListCareers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	result := make([]*career.Career, 0, len(rows))
	for _, row := range rows {
		c, err := r.load(ctx, r.queries, row)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// Save writes the career, its player and any newly unlocked achievements.
func (r *CareerRepository) Save(ctx context.Context, c *career.Career) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := r.save(ctx, r.queries.WithTx(tx), c); err != nil {
		return err
	}
	return tx.Commit()
}

// Create stores a new career. When the player has a team, the roster swap
// happens in the same transaction, so a failed save leaves the team as it was.
func (r *CareerRepository) Create(ctx context.Context, c *career.Career) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	p := c.Player
	if p.TeamID != nil {
		if _, err := placeCareerPlayer(ctx, qtx, *p.TeamID, p.Role, p.Name, p.CurrentRating); err != nil {
			return err
		}
	}
	if _, err := r.save(ctx, qtx, c); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit career %s: %w", c.PlayerName, err)
	}
	return nil
}

// SaveMatch persists the career state after a match together with the
// match's history entry, in one transaction.
func (r *CareerRepository) SaveMatch(ctx context.Context, c *career.Career, m domain.CareerMatch) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	careerID, err := r.save(ctx, qtx, c)
	if err != nil {
		return 0, err
	}

	matchID, err := qtx.InsertCareerMatch(ctx, db.InsertCareerMatchParams{
		CareerID:      careerID,
		OpponentTeam:  m.OpponentTeam,
		Won:           m.Won,
		PlayerKills:   int64(m.Kills),
		PlayerDeaths:  int64(m.Deaths),
		PlayerAssists: int64(m.Assists),
		SeriesID:      sql.NullString{String: m.SeriesID, Valid: m.SeriesID != ""},
		PlayedAt:      m.PlayedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert career match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit career match: %w", err)
	}
	return matchID, nil
}

func (r *CareerRepository) save(ctx context.Context, q *db.Queries, c *career.Career) (int64, error) {
	p := c.Player
	playerID, err := q.UpsertCareerPlayer(ctx, db.UpsertCareerPlayerParams{
		Name:             p.Name,
		BaseRating:       int64(p.BaseRating),
		CurrentRating:    int64(p.CurrentRating),
		Level:            int64(p.Level),
		Experience:       int64(p.Experience),
		ExperienceToNext: int64(p.ExperienceToNext),
		MatchesPlayed:    int64(p.MatchesPlayed),
		Wins:             int64(p.Wins),
		TotalKills:       int64(p.TotalKills),
		TotalDeaths:      int64(p.TotalDeaths),
		TotalAssists:     int64(p.TotalAssists),
		Role:             p.Role,
		TeamID:           ptrNullInt64(p.TeamID),
		CountryID:        ptrNullInt64(p.CountryID),
		CreatedAt:        p.CreatedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert career player %s: %w", p.Name, err)
	}

	// achievements are never revoked, so inserting the current set is enough
	for _, name := range p.Achievements {
		err := q.InsertCareerPlayerAchievement(ctx, db.InsertCareerPlayerAchievementParams{
			CareerPlayerID: playerID,
			UnlockedAt:     c.LastPlayed,
			Name:           name,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to record achievement %s: %w", name, err)
		}
	}

	careerID, err := q.UpsertCareer(ctx, db.UpsertCareerParams{
		PlayerName:     c.PlayerName,
		CareerPlayerID: playerID,
		CreatedAt:      c.CreatedAt,
		LastPlayed:     c.LastPlayed,
		TotalMatches:   int64(c.TotalMatches),
		TournamentsWon: int64(c.TournamentsWon),
		CurrentStreak:  int64(c.CurrentStreak),
		BestStreak:     int64(c.BestStreak),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert career %s: %w", c.PlayerName, err)
	}

	r.logger.Debug().
		Str("player", c.PlayerName).
		Int64("career_id", careerID).
		Int("level", p.Level).
		Int("rating", p.CurrentRating).
		Msg("career saved")
	return careerID, nil
}

// Delete removes a career with its player, achievements, match history and
// roster slot.
func (r *CareerRepository) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	c, err := qtx.GetCareerByPlayerName(ctx, name)
	if err != nil {
		return notFound(err, "career "+name)
	}

	steps := []struct {
		what string
		run  func() error
	}{
		{"match history", func() error { return qtx.DeleteCareerMatches(ctx, c.ID) }},
		{"career", func() error { return qtx.DeleteCareer(ctx, c.ID) }},
		{"achievements", func() error { return qtx.DeleteCareerPlayerAchievements(ctx, c.CareerPlayerID) }},
		{"career player", func() error { return qtx.DeleteCareerPlayer(ctx, c.CareerPlayerID) }},
		{"roster slot", func() error { return qtx.DeleteCareerRosterPlayer(ctx, name) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("failed to delete %s of %s: %w", step.what, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit career deletion: %w", err)
	}

	r.logger.Info().Str("player", name).Msg("career deleted")
	return nil
}

// History returns up to limit matches, newest first.
func (r *CareerRepository) History(ctx context.Context, name string, limit int) ([]domain.CareerMatch, error) {
	c, err := r.queries.GetCareerByPlayerName(ctx, name)
	if err != nil {
		return nil, notFound(err, "career "+name)
	}

	rows, err := r.queries.ListCareerMatches(ctx, db.ListCareerMatchesParams{
		CareerID: c.ID,
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of %s: %w", name, err)
	}

	result := make([]domain.CareerMatch, len(rows))
	for i, m := range rows {
		result[i] = domain.CareerMatch{
			ID:           m.ID,
			PlayerName:   c.PlayerName,
			OpponentTeam: m.OpponentTeam,
			Won:          m.Won,
			Kills:        int(m.PlayerKills),
			Deaths:       int(m.PlayerDeaths),
			Assists:      int(m.PlayerAssists),
			SeriesID:     m.SeriesID.String,
			PlayedAt:     m.PlayedAt,
		}
	}
	return result, nil
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func ptrNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
