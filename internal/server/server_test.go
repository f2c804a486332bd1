package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2-simulator/internal/config"
	"cs2-simulator/internal/database"
	"cs2-simulator/internal/db"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/service"
	"cs2-simulator/internal/sim"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "server.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		DefaultSeriesFormat: "BO3",
		RateLimitRPS:        1000,
		RateLimitBurst:      1000,
		CORSAllowedOrigins:  []string{"*"},
	}
	q := db.New(sqlDB)
	log := zerolog.Nop()
	teams := repository.NewTeamRepository(sqlDB, q, log)
	series := repository.NewSeriesRepository(sqlDB, q, log)
	careers := repository.NewCareerRepository(sqlDB, q, log)
	catalog := repository.NewCatalogRepository(sqlDB, q, log)

	_, err = teams.ImportTeams(context.Background(), []domain.TeamImport{
		{Name: "Alpha", Players: importPlayers("a", 80, "Rifler")},
		{Name: "Bravo", Players: importPlayers("b", 60, "Support")},
	})
	require.NoError(t, err)

	srv := NewSimulatorServer(
		service.NewSimulationService(cfg, teams, series, log),
		service.NewCareerService(careers, teams, catalog, series, log),
		catalog,
	)
	ts := httptest.NewServer(NewRouter(cfg, srv, sqlDB, log))
	t.Cleanup(ts.Close)
	return ts
}

func importPlayers(prefix string, rating int, role string) []domain.PlayerImport {
	players := make([]domain.PlayerImport, 5)
	for i := range players {
		players[i] = domain.PlayerImport{Name: fmt.Sprintf("%s%d", prefix, i+1), Rating: rating, Role: role}
	}
	return players
}

type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// call posts a unary connect request and decodes either the response or the
// error body.
func call(t *testing.T, ts *httptest.Server, procedure string, in, out any) (int, rpcError) {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+procedure, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rerr rpcError
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rerr))
		return resp.StatusCode, rerr
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode, rerr
}

func TestSimulateSeries_RoundTrip(t *testing.T) {
	ts := newTestServer(t)

	var first, second SimulateSeriesResponse
	status, _ := call(t, ts, SimulateSeriesProcedure, SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Bravo", Format: "BO3", Seed: 99}, &first)
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, ts, SimulateSeriesProcedure, SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Bravo", Format: "bo3", Seed: 99}, &second)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, uint64(99), first.Seed)
	assert.Equal(t, first.Result.Rounds, second.Result.Rounds)
	assert.Len(t, first.Result.PlayerStats["Alpha"], 5)

	var got GetSeriesResponse
	status, _ = call(t, ts, GetSeriesProcedure, GetSeriesRequest{SeriesID: first.SeriesID}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first.Result.Winner, got.Series.Winner)
	assert.Equal(t, uint64(99), got.Series.Seed)
}

func TestSimulateSeries_AdhocRosters(t *testing.T) {
	ts := newTestServer(t)

	a := sim.Roster{Name: "X", Players: []sim.RosterEntry{{Name: "x", Rating: 70}}}
	b := sim.Roster{Name: "Y", Players: []sim.RosterEntry{{Name: "y", Rating: 70}}}
	var out SimulateSeriesResponse
	status, _ := call(t, ts, SimulateSeriesProcedure, SimulateSeriesRequest{RosterA: &a, RosterB: &b, Format: "BO1", Seed: 5}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, []string{"X", "Y"}, out.Result.Winner)
}

func TestSimulateSeries_RejectsSingleInlineRoster(t *testing.T) {
	ts := newTestServer(t)

	a := sim.Roster{Name: "X", Players: []sim.RosterEntry{{Name: "x", Rating: 70}}}
	status, rerr := call(t, ts, SimulateSeriesProcedure, SimulateSeriesRequest{RosterA: &a, Format: "BO1"}, &SimulateSeriesResponse{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_argument", rerr.Code)
	assert.Equal(t, errOneInlineRoster.Error(), rerr.Message)

	status, rerr = call(t, ts, SimulateSeriesProcedure, SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Bravo", RosterB: &a}, &SimulateSeriesResponse{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_argument", rerr.Code)
}

func TestSimulateSeries_ErrorCodes(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		req  SimulateSeriesRequest
		code string
	}{
		{SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Bravo", Format: "BO4"}, "invalid_argument"},
		{SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Alpha", Format: "BO1"}, "invalid_argument"},
		{SimulateSeriesRequest{TeamA: "Alpha", TeamB: "Nobody", Format: "BO1"}, "not_found"},
	}
	for _, tc := range cases {
		status, rerr := call(t, ts, SimulateSeriesProcedure, tc.req, &SimulateSeriesResponse{})
		assert.NotEqual(t, http.StatusOK, status)
		assert.Equal(t, tc.code, rerr.Code, tc.req)
	}
}

func TestCareerFlow(t *testing.T) {
	ts := newTestServer(t)

	var created CareerResponse
	status, _ := call(t, ts, CreateCareerProcedure, CreateCareerRequest{PlayerName: "rookie", Role: "Support", Team: "Bravo"}, &created)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, created.Career.Level)

	_, rerr := call(t, ts, CreateCareerProcedure, CreateCareerRequest{PlayerName: "rookie"}, &CareerResponse{})
	assert.Equal(t, "already_exists", rerr.Code)

	var played PlayCareerMatchResponse
	status, _ = call(t, ts, PlayCareerMatchProcedure, PlayCareerMatchRequest{PlayerName: "rookie", Seed: 11}, &played)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alpha", played.Opponent)
	assert.Equal(t, 1, played.Career.TotalMatches)

	var history GetCareerHistoryResponse
	status, _ = call(t, ts, GetCareerHistoryProcedure, GetCareerHistoryRequest{PlayerName: "rookie"}, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Matches, 1)
	assert.Equal(t, played.SeriesID, history.Matches[0].SeriesID)

	var list ListCareersResponse
	status, _ = call(t, ts, ListCareersProcedure, ListCareersRequest{}, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Careers, 1)

	status, _ = call(t, ts, DeleteCareerProcedure, DeleteCareerRequest{PlayerName: "rookie"}, &DeleteCareerResponse{})
	require.Equal(t, http.StatusOK, status)

	_, rerr = call(t, ts, GetCareerProcedure, GetCareerRequest{PlayerName: "rookie"}, &CareerResponse{})
	assert.Equal(t, "not_found", rerr.Code)
}

func TestCatalogAndStats(t *testing.T) {
	ts := newTestServer(t)

	var roles ListRolesResponse
	status, _ := call(t, ts, ListRolesProcedure, ListRolesRequest{}, &roles)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, roles.Roles, 6)

	var achievements ListAchievementsResponse
	status, _ = call(t, ts, ListAchievementsProcedure, ListAchievementsRequest{}, &achievements)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, achievements.Achievements, 6)

	var teams ListTeamsResponse
	status, _ = call(t, ts, ListTeamsProcedure, ListTeamsRequest{}, &teams)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, teams.Teams, 2)

	var stats GetDatabaseStatsResponse
	status, _ = call(t, ts, GetDatabaseStatsProcedure, GetDatabaseStatsRequest{}, &stats)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 10, stats.Stats.Players)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, connect.CodeInvalidArgument, errorCode(fmt.Errorf("wrapped: %w", sim.ErrEmptyRoster)))
	assert.Equal(t, connect.CodeNotFound, errorCode(repository.ErrNotFound))
	assert.Equal(t, connect.CodeFailedPrecondition, errorCode(service.ErrNoOpponent))
	assert.Equal(t, connect.CodeDeadlineExceeded, errorCode(context.DeadlineExceeded))
	assert.Equal(t, connect.CodeInternal, errorCode(errors.New("disk on fire")))
}
