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

type CatalogRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCatalogRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CatalogRepository {
	return &CatalogRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *CatalogRepository) Roles(ctx context.Context) ([]career.CatalogEntry, error) {
	roles, err := r.queries.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	result := make([]career.CatalogEntry, len(roles))
	for i, role := range roles {
		result[i] = career.CatalogEntry{Name: role.Name, Description: role.Description, Icon: role.Icon}
	}
	return result, nil
}

func (r *CatalogRepository) Role(ctx context.Context, name string) (*career.CatalogEntry, error) {
	role, err := r.queries.GetRoleByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "role "+name)
	}
	return &career.CatalogEntry{Name: role.Name, Description: role.Description, Icon: role.Icon}, nil
}

func (r *CatalogRepository) Achievements(ctx context.Context) ([]career.CatalogEntry, error) {
	achievements, err := r.queries.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	result := make([]career.CatalogEntry, len(achievements))
	for i, a := range achievements {
		result[i] = career.CatalogEntry{Name: a.Name, Description: a.Description, Icon: a.Icon}
	}
	return result, nil
}

// Stats counts the rows of every table.
func (r *CatalogRepository) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	s, err := r.queries.GetDatabaseStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return &domain.DatabaseStats{
		Teams:         int(s.Teams),
		Players:       int(s.Players),
		Roles:         int(s.Roles),
		CareerPlayers: int(s.CareerPlayers),
		Careers:       int(s.Careers),
		CareerMatches: int(s.CareerMatches),
		Achievements:  int(s.Achievements),
		Series:        int(s.Series),
	}, nil
}
