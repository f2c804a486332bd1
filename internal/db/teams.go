package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertTeam = `
INSERT INTO teams (name, created_at) VALUES (?, ?)
ON CONFLICT (name) DO UPDATE SET name = excluded.name
RETURNING id
`

type UpsertTeamParams struct {
	Name      string
	CreatedAt time.Time
}

func (q *Queries) UpsertTeam(ctx context.Context, arg UpsertTeamParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertTeam, arg.Name, arg.CreatedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getTeamByName = `
SELECT id, name, created_at FROM teams WHERE name = ?
`

func (q *Queries) GetTeamByName(ctx context.Context, name string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByName, name)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const getTeamByID = `
SELECT id, name, created_at FROM teams WHERE id = ?
`

func (q *Queries) GetTeamByID(ctx context.Context, id int64) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamByID, id)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const listTeams = `
SELECT id, name, created_at FROM teams ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
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

const rosterColumns = `
SELECT t.id, t.name, p.id, p.name, p.rating, r.name, r.icon, p.is_career_player
FROM players p
JOIN teams t ON t.id = p.team_id
LEFT JOIN roles r ON r.id = p.role_id
`

// ListRosters returns every rostered player grouped by team. Within a team,
// rows keep insertion order so lineups are stable.
func (q *Queries) ListRosters(ctx context.Context) ([]RosterRow, error) {
	return q.queryRoster(ctx, rosterColumns+` ORDER BY t.name, p.id`)
}

func (q *Queries) ListTeamRoster(ctx context.Context, teamID int64) ([]RosterRow, error) {
	return q.queryRoster(ctx, rosterColumns+` WHERE t.id = ? ORDER BY p.id`, teamID)
}

func (q *Queries) queryRoster(ctx context.Context, query string, args ...any) ([]RosterRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RosterRow
	for rows.Next() {
		var i RosterRow
		if err := rows.Scan(
			&i.TeamID,
			&i.TeamName,
			&i.PlayerID,
			&i.PlayerName,
			&i.Rating,
			&i.RoleName,
			&i.RoleIcon,
			&i.IsCareerPlayer,
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

const insertPlayer = `
INSERT INTO players (name, rating, team_id, role_id, is_career_player)
VALUES (?, ?, ?, ?, ?)
`

type InsertPlayerParams struct {
	Name           string
	Rating         int64
	TeamID         int64
	RoleID         sql.NullInt64
	IsCareerPlayer bool
}

func (q *Queries) InsertPlayer(ctx context.Context, arg InsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, insertPlayer,
		arg.Name,
		arg.Rating,
		arg.TeamID,
		arg.RoleID,
		arg.IsCareerPlayer,
	)
	return err
}

const deleteProPlayers = `
DELETE FROM players WHERE is_career_player = 0
`

func (q *Queries) DeleteProPlayers(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteProPlayers)
	return err
}

const findTeamPlayerByRole = `
SELECT id FROM players WHERE team_id = ? AND role_id = ? AND is_career_player = 0 ORDER BY id LIMIT 1
`

type FindTeamPlayerByRoleParams struct {
	TeamID int64
	RoleID int64
}

func (q *Queries) FindTeamPlayerByRole(ctx context.Context, arg FindTeamPlayerByRoleParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, findTeamPlayerByRole, arg.TeamID, arg.RoleID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deletePlayer = `
DELETE FROM players WHERE id = ?
`

func (q *Queries) DeletePlayer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePlayer, id)
	return err
}

const deleteCareerRosterPlayer = `
DELETE FROM players WHERE is_career_player = 1 AND name = ?
`

func (q *Queries) DeleteCareerRosterPlayer(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, deleteCareerRosterPlayer, name)
	return err
}
