package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2-simulator/internal/api"
	"cs2-simulator/internal/career"
	"cs2-simulator/internal/config"
	"cs2-simulator/internal/database"
	"cs2-simulator/internal/db"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/sim"
)

const teamsJSON = `{"teams": {
	"Vitality": [
		{"name": "apEX", "rating": 82}, {"name": "ZywOo", "rating": 97}, {"name": "flameZ", "rating": 85},
		{"name": "mezii", "rating": 83}, {"name": "ropz", "rating": 90}
	],
	"G2": [
		{"name": "huNter-", "rating": 88}, {"name": "SunPayus", "rating": 84}, {"name": "malbsMd", "rating": 86},
		{"name": "HeavyGod", "rating": 86}, {"name": "MATYS", "rating": 80}
	],
	"Underdogs": [
		{"name": "u1", "rating": 40}, {"name": "u2", "rating": 42}, {"name": "u3", "rating": 38},
		{"name": "u4", "rating": 41}, {"name": "u5", "rating": 39}
	]
}}`

type services struct {
	sim     *SimulationService
	careers *CareerService
	rosters *RosterService
	teams   *repository.TeamRepository
}

func setup(t *testing.T) services {
	t.Helper()
	dir := t.TempDir()
	sqlDB, err := database.Open(filepath.Join(dir, "svc.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{DefaultSeriesFormat: "BO3"}
	q := db.New(sqlDB)
	log := zerolog.Nop()
	teams := repository.NewTeamRepository(sqlDB, q, log)
	series := repository.NewSeriesRepository(sqlDB, q, log)
	careers := repository.NewCareerRepository(sqlDB, q, log)
	catalog := repository.NewCatalogRepository(sqlDB, q, log)

	svc := services{
		sim:     NewSimulationService(cfg, teams, series, log),
		careers: NewCareerService(careers, teams, catalog, series, log),
		rosters: NewRosterService(api.NewRosterClient(cfg), teams, log),
		teams:   teams,
	}

	path := filepath.Join(dir, "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(teamsJSON), 0o600))
	report, err := svc.rosters.Import(context.Background(), path, 1)
	require.NoError(t, err)
	require.Equal(t, 3, report.Teams)
	require.Equal(t, 15, report.Players)
	return svc
}

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	k := newKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("same")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, k.size())
}

func TestAssignRoles_KnownPlayersKeepTheirRole(t *testing.T) {
	roles := AssignRoles([]api.FeedPlayer{{Name: "ZywOo"}, {Name: "apEX"}, {Name: "nobody"}}, sim.NewRand(3))
	assert.Equal(t, "AWPer", roles[0])
	assert.Equal(t, "IGL", roles[1])
	assert.NotContains(t, []string{"AWPer", "IGL"}, roles[2], "filled roles have no open slot")
}

func TestAssignRoles_FillsSlotsThenDefaults(t *testing.T) {
	players := make([]api.FeedPlayer, 10)
	for i := range players {
		players[i] = api.FeedPlayer{Name: string(rune('a' + i))}
	}

	roles := AssignRoles(players, sim.NewRand(99))
	counts := map[string]int{}
	for _, r := range roles {
		counts[r]++
	}
	assert.Equal(t, map[string]int{
		"IGL":           1,
		"AWPer":         1,
		"Entry Fragger": 2,
		"Support":       1,
		"Rifler":        5,
	}, counts)

	assert.Equal(t, roles, AssignRoles(players, sim.NewRand(99)))
}

func TestBuildLineup(t *testing.T) {
	p := career.NewPlayer("rookie", "AWPer", nil, time.Time{})
	p.CurrentRating = 61
	teammates := []domain.RosterPlayer{
		{Name: "a", Rating: 80, Role: "IGL"},
		{Name: "b", Rating: 81, Role: "AWPer"},
		{Name: "c", Rating: 82, Role: "Rifler"},
		{Name: "rookie", Rating: 50, Role: "AWPer"},
		{Name: "d", Rating: 83, Role: "Support"},
		{Name: "e", Rating: 84, Role: "Rifler"},
		{Name: "f", Rating: 85, Role: "Rifler"},
	}

	lineup := buildLineup(p, teammates)
	assert.Equal(t, []sim.RosterEntry{
		{Name: "rookie", Rating: 61},
		{Name: "a", Rating: 80},
		{Name: "c", Rating: 82},
		{Name: "d", Rating: 83},
		{Name: "e", Rating: 84},
	}, lineup)

	assert.Equal(t, []sim.RosterEntry{{Name: "rookie", Rating: 61}}, buildLineup(p, nil))
}

func TestSimulationService_SimulateSeries(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	first, err := svc.sim.SimulateSeries(ctx, "Vitality", "G2", "bo5", 42)
	require.NoError(t, err)
	second, err := svc.sim.SimulateSeries(ctx, "Vitality", "G2", "BO5", 42)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), first.Seed)
	assert.Equal(t, first.Result, second.Result)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 3, max(first.Result.TeamAMaps, first.Result.TeamBMaps))

	stored, err := svc.sim.GetSeries(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Result.Winner, stored.Winner)
	assert.Len(t, stored.PlayerStats, 10)

	recent, err := svc.sim.RecentSeries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestSimulationService_DefaultsAndSeeds(t *testing.T) {
	svc := setup(t)

	out, err := svc.sim.SimulateSeries(context.Background(), "G2", "Underdogs", "", 0)
	require.NoError(t, err)
	assert.Equal(t, sim.BO3, out.Result.Format)
	assert.NotZero(t, out.Seed)
}

func TestSimulationService_Rejects(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.sim.SimulateSeries(ctx, "Vitality", "G2", "BO2", 1)
	assert.ErrorIs(t, err, sim.ErrInvalidFormat)

	_, err = svc.sim.SimulateSeries(ctx, "G2", "G2", "BO1", 1)
	assert.ErrorIs(t, err, sim.ErrSameTeam)

	_, err = svc.sim.SimulateSeries(ctx, "G2", "Cloud9", "BO1", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.sim.SimulateAdhoc(ctx, sim.Roster{Name: "empty"}, sim.Roster{Name: "x", Players: []sim.RosterEntry{{Name: "p", Rating: 1}}}, "BO1", 1)
	assert.ErrorIs(t, err, sim.ErrEmptyRoster)
}

func TestCareerService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	c, err := svc.careers.Create(ctx, "  rookie ", "AWPer", "Vitality")
	require.NoError(t, err)
	assert.Equal(t, "rookie", c.PlayerName)
	require.NotNil(t, c.Player.TeamID)

	lineup, err := svc.teams.GetLineup(ctx, *c.Player.TeamID)
	require.NoError(t, err)
	var names []string
	for _, p := range lineup {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "rookie")
	assert.NotContains(t, names, "ZywOo")

	_, err = svc.careers.Create(ctx, "rookie", "", "")
	assert.ErrorIs(t, err, ErrCareerExists)

	_, err = svc.careers.Create(ctx, "coach", "Coach", "")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.careers.Create(ctx, " ", "", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.careers.Create(ctx, "lost", "", "Cloud9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCareerService_PlayMatch(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.careers.Create(ctx, "rookie", "Rifler", "G2")
	require.NoError(t, err)

	report, err := svc.careers.PlayMatch(ctx, "rookie", "", 7)
	require.NoError(t, err)

	assert.Equal(t, "G2", report.Team)
	assert.NotEqual(t, "G2", report.Opponent)
	assert.Equal(t, sim.BO1, report.Series.Format)
	assert.Equal(t, report.Series.Winner == "G2", report.Outcome.Won)
	assert.Equal(t, 1, report.Career.TotalMatches)
	assert.Equal(t, report.Line.Kills, report.Career.TotalKills)
	assert.Equal(t, career.ExperienceFor(career.StatLine{
		Kills:   report.Line.Kills,
		Deaths:  report.Line.Deaths,
		Assists: report.Line.Assists,
	}, report.Outcome.Won), report.Outcome.ExperienceGained)

	history, err := svc.careers.History(ctx, "rookie", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, report.SeriesID, history[0].SeriesID)
	assert.Equal(t, report.Opponent, history[0].OpponentTeam)

	_, err = svc.careers.PlayMatch(ctx, "rookie", "G2", 7)
	assert.ErrorIs(t, err, sim.ErrSameTeam)

	_, err = svc.careers.PlayMatch(ctx, "ghost", "", 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCareerService_PlayMatchIsReproducible(t *testing.T) {
	a := setup(t)
	b := setup(t)
	ctx := context.Background()

	for _, svc := range []services{a, b} {
		_, err := svc.careers.Create(ctx, "rookie", "IGL", "Vitality")
		require.NoError(t, err)
	}

	ra, err := a.careers.PlayMatch(ctx, "rookie", "", 1234)
	require.NoError(t, err)
	rb, err := b.careers.PlayMatch(ctx, "rookie", "", 1234)
	require.NoError(t, err)

	assert.Equal(t, ra.Opponent, rb.Opponent)
	assert.Equal(t, ra.Series.Rounds, rb.Series.Rounds)
	assert.Equal(t, ra.Line, rb.Line)
}

func TestCareerService_FreeAgentPlaysAlone(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.careers.Create(ctx, "solo", "", "")
	require.NoError(t, err)

	report, err := svc.careers.PlayMatch(ctx, "solo", "Underdogs", 5)
	require.NoError(t, err)
	assert.Equal(t, "Free Agent", report.Team)
	require.Len(t, report.Series.PlayerStats["Free Agent"], 1)
}

func TestCareerService_ConcurrentMatchesSerialize(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.careers.Create(ctx, "busy", "Support", "Vitality")
	require.NoError(t, err)

	const n = 6
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.careers.PlayMatch(ctx, "busy", "Underdogs", uint64(i+1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	c, err := svc.careers.Get(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, n, c.TotalMatches)
	assert.Equal(t, n, c.Player.MatchesPlayed)

	history, err := svc.careers.History(ctx, "busy", 50)
	require.NoError(t, err)
	assert.Len(t, history, n)
}

func TestCareerService_ListAndDelete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two"} {
		_, err := svc.careers.Create(ctx, name, "", "")
		require.NoError(t, err)
	}
	_, err := svc.careers.PlayMatch(ctx, "one", "G2", 3)
	require.NoError(t, err)

	list, err := svc.careers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].PlayerName)

	require.NoError(t, svc.careers.Delete(ctx, "one"))
	_, err = svc.careers.Get(ctx, "one")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
