package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cs2-simulator/internal/db"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/sim"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ListTeams returns every team with its current players, teams without
// players included.
func (r *TeamRepository) ListTeams(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	teams, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	rows, err := r.queries.ListRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}

	players := make(map[int64][]domain.RosterPlayer, len(teams))
	for _, row := range rows {
		players[row.TeamID] = append(players[row.TeamID], rosterPlayer(row))
	}

	result := make([]domain.TeamWithPlayers, len(teams))
	for i, t := range teams {
		result[i] = domain.TeamWithPlayers{
			Team:    domain.Team{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt},
			Players: players[t.ID],
		}
	}
	return result, nil
}

func (r *TeamRepository) GetTeamByName(ctx context.Context, name string) (*domain.Team, error) {
	t, err := r.queries.GetTeamByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "team "+name)
	}
	return &domain.Team{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}, nil
}

func (r *TeamRepository) GetTeamByID(ctx context.Context, id int64) (*domain.Team, error) {
	t, err := r.queries.GetTeamByID(ctx, id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("team %d", id))
	}
	return &domain.Team{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}, nil
}

// GetLineup lists a team's players in roster order.
func (r *TeamRepository) GetLineup(ctx context.Context, teamID int64) ([]domain.RosterPlayer, error) {
	rows, err := r.queries.ListTeamRoster(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster of team %d: %w", teamID, err)
	}
	result := make([]domain.RosterPlayer, len(rows))
	for i, row := range rows {
		result[i] = rosterPlayer(row)
	}
	return result, nil
}

// GetRoster loads a team as engine input. A team with no players yields an
// empty roster, which the engine rejects.
func (r *TeamRepository) GetRoster(ctx context.Context, name string) (sim.Roster, error) {
	team, err := r.GetTeamByName(ctx, name)
	if err != nil {
		return sim.Roster{}, err
	}
	lineup, err := r.GetLineup(ctx, team.ID)
	if err != nil {
		return sim.Roster{}, err
	}
	return ToRoster(team.Name, lineup), nil
}

func ToRoster(name string, players []domain.RosterPlayer) sim.Roster {
	roster := sim.Roster{Name: name, Players: make([]sim.RosterEntry, len(players))}
	for i, p := range players {
		roster.Players[i] = sim.RosterEntry{Name: p.Name, Rating: p.Rating}
	}
	return roster
}

// ImportTeams replaces every professional player with the imported rosters.
// Teams are created on first sight and career players stay where they are.
func (r *TeamRepository) ImportTeams(ctx context.Context, teams []domain.TeamImport) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	roles, err := roleIDs(ctx, qtx)
	if err != nil {
		return 0, err
	}
	if err := qtx.DeleteProPlayers(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear pro players: %w", err)
	}

	now := time.Now().UTC()
	imported := 0
	for _, team := range teams {
		teamID, err := qtx.UpsertTeam(ctx, db.UpsertTeamParams{Name: team.Name, CreatedAt: now})
		if err != nil {
			return 0, fmt.Errorf("failed to upsert team %s: %w", team.Name, err)
		}
		for _, p := range team.Players {
			err := qtx.InsertPlayer(ctx, db.InsertPlayerParams{
				Name:   p.Name,
				Rating: int64(p.Rating),
				TeamID: teamID,
				RoleID: roles[p.Role],
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert player %s: %w", p.Name, err)
			}
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	r.logger.Info().
		Int("teams", len(teams)).
		Int("players", imported).
		Msg("rosters imported")
	return imported, nil
}

// ReplaceRolePlayer puts a career player into a team, taking the slot of the
// first professional holding the same role.
func (r *TeamRepository) ReplaceRolePlayer(ctx context.Context, teamID int64, role, name string, rating int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	replaced, err := placeCareerPlayer(ctx, r.queries.WithTx(tx), teamID, role, name, rating)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster change: %w", err)
	}

	r.logger.Debug().
		Int64("team_id", teamID).
		Str("role", role).
		Str("player", name).
		Bool("replaced", replaced != 0).
		Msg("career player placed on team")
	return nil
}

// placeCareerPlayer does the roster swap on q, which callers bind to their
// transaction. It returns the id of the removed professional, or 0.
func placeCareerPlayer(ctx context.Context, q *db.Queries, teamID int64, role, name string, rating int) (int64, error) {
	dbRole, err := q.GetRoleByName(ctx, role)
	if err != nil {
		return 0, notFound(err, "role "+role)
	}
	if err := q.DeleteCareerRosterPlayer(ctx, name); err != nil {
		return 0, fmt.Errorf("failed to clear previous roster entry for %s: %w", name, err)
	}

	replaced, err := q.FindTeamPlayerByRole(ctx, db.FindTeamPlayerByRoleParams{TeamID: teamID, RoleID: dbRole.ID})
	switch {
	case err == nil:
		if err := q.DeletePlayer(ctx, replaced); err != nil {
			return 0, fmt.Errorf("failed to remove player %d: %w", replaced, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		replaced = 0
	default:
		return 0, fmt.Errorf("failed to find %s on team %d: %w", role, teamID, err)
	}

	err = q.InsertPlayer(ctx, db.InsertPlayerParams{
		Name:           name,
		Rating:         int64(rating),
		TeamID:         teamID,
		RoleID:         sql.NullInt64{Int64: dbRole.ID, Valid: true},
		IsCareerPlayer: true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert career player %s: %w", name, err)
	}
	return replaced, nil
}

func roleIDs(ctx context.Context, q *db.Queries) (map[string]sql.NullInt64, error) {
	roles, err := q.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	ids := make(map[string]sql.NullInt64, len(roles))
	for _, role := range roles {
		ids[role.Name] = sql.NullInt64{Int64: role.ID, Valid: true}
	}
	return ids, nil
}

func rosterPlayer(row db.RosterRow) domain.RosterPlayer {
	return domain.RosterPlayer{
		ID:             row.PlayerID,
		Name:           row.PlayerName,
		Rating:         int(row.Rating),
		TeamID:         row.TeamID,
		Role:           row.RoleName.String,
		RoleIcon:       row.RoleIcon.String,
		IsCareerPlayer: row.IsCareerPlayer,
	}
}
