package db

import "context"

const listRoles = `
SELECT id, name, description, icon FROM roles ORDER BY id
`

func (q *Queries) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := q.db.QueryContext(ctx, listRoles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Role
	for rows.Next() {
		var i Role
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Icon); err != nil {
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

const getRoleByName = `
SELECT id, name, description, icon FROM roles WHERE name = ?
`

func (q *Queries) GetRoleByName(ctx context.Context, name string) (Role, error) {
	row := q.db.QueryRowContext(ctx, getRoleByName, name)
	var i Role
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Icon)
	return i, err
}

const listAchievements = `
SELECT id, name, description, icon FROM achievements ORDER BY id
`

func (q *Queries) ListAchievements(ctx context.Context) ([]Achievement, error) {
	rows, err := q.db.QueryContext(ctx, listAchievements)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Achievement
	for rows.Next() {
		var i Achievement
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Icon); err != nil {
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

const getDatabaseStats = `
SELECT
    (SELECT COUNT(*) FROM teams),
    (SELECT COUNT(*) FROM players),
    (SELECT COUNT(*) FROM roles),
    (SELECT COUNT(*) FROM career_players),
    (SELECT COUNT(*) FROM careers),
    (SELECT COUNT(*) FROM career_matches),
    (SELECT COUNT(*) FROM achievements),
    (SELECT COUNT(*) FROM series)
`

type GetDatabaseStatsRow struct {
	Teams         int64
	Players       int64
	Roles         int64
	CareerPlayers int64
	Careers       int64
	CareerMatches int64
	Achievements  int64
	Series        int64
}

func (q *Queries) GetDatabaseStats(ctx context.Context) (GetDatabaseStatsRow, error) {
	row := q.db.QueryRowContext(ctx, getDatabaseStats)
	var i GetDatabaseStatsRow
	err := row.Scan(
		&i.Teams,
		&i.Players,
		&i.Roles,
		&i.CareerPlayers,
		&i.Careers,
		&i.CareerMatches,
		&i.Achievements,
		&i.Series,
	)
	return i, err
}
