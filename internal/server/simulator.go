package server

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"

	"cs2-simulator/internal/career"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/service"
	"cs2-simulator/internal/sim"
)

const SimulatorServiceName = "cs2sim.v1.SimulatorService"

const (
	SimulateSeriesProcedure   = "/" + SimulatorServiceName + "/SimulateSeries"
	GetSeriesProcedure        = "/" + SimulatorServiceName + "/GetSeries"
	ListRecentSeriesProcedure = "/" + SimulatorServiceName + "/ListRecentSeries"
	ListTeamsProcedure        = "/" + SimulatorServiceName + "/ListTeams"
	CreateCareerProcedure     = "/" + SimulatorServiceName + "/CreateCareer"
	GetCareerProcedure        = "/" + SimulatorServiceName + "/GetCareer"
	ListCareersProcedure      = "/" + SimulatorServiceName + "/ListCareers"
	DeleteCareerProcedure     = "/" + SimulatorServiceName + "/DeleteCareer"
	PlayCareerMatchProcedure  = "/" + SimulatorServiceName + "/PlayCareerMatch"
	GetCareerHistoryProcedure = "/" + SimulatorServiceName + "/GetCareerHistory"
	ListAchievementsProcedure = "/" + SimulatorServiceName + "/ListAchievements"
	ListRolesProcedure        = "/" + SimulatorServiceName + "/ListRoles"
	GetDatabaseStatsProcedure = "/" + SimulatorServiceName + "/GetDatabaseStats"
)

var errOneInlineRoster = errors.New("both inline rosters are required")

type SimulatorServer struct {
	simSvc    *service.SimulationService
	careerSvc *service.CareerService
	catalog   *repository.CatalogRepository
}

func NewSimulatorServer(simSvc *service.SimulationService, careerSvc *service.CareerService, catalog *repository.CatalogRepository) *SimulatorServer {
	return &SimulatorServer{simSvc: simSvc, careerSvc: careerSvc, catalog: catalog}
}

// NewSimulatorServiceHandler mounts every procedure under the service path.
func NewSimulatorServiceHandler(s *SimulatorServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithCodec(jsonCharsetCodec{}),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SimulateSeriesProcedure, connect.NewUnaryHandler(SimulateSeriesProcedure, s.SimulateSeries, opts...))
	mux.Handle(GetSeriesProcedure, connect.NewUnaryHandler(GetSeriesProcedure, s.GetSeries, opts...))
	mux.Handle(ListRecentSeriesProcedure, connect.NewUnaryHandler(ListRecentSeriesProcedure, s.ListRecentSeries, opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(CreateCareerProcedure, connect.NewUnaryHandler(CreateCareerProcedure, s.CreateCareer, opts...))
	mux.Handle(GetCareerProcedure, connect.NewUnaryHandler(GetCareerProcedure, s.GetCareer, opts...))
	mux.Handle(ListCareersProcedure, connect.NewUnaryHandler(ListCareersProcedure, s.ListCareers, opts...))
	mux.Handle(DeleteCareerProcedure, connect.NewUnaryHandler(DeleteCareerProcedure, s.DeleteCareer, opts...))
	mux.Handle(PlayCareerMatchProcedure, connect.NewUnaryHandler(PlayCareerMatchProcedure, s.PlayCareerMatch, opts...))
	mux.Handle(GetCareerHistoryProcedure, connect.NewUnaryHandler(GetCareerHistoryProcedure, s.GetCareerHistory, opts...))
	mux.Handle(ListAchievementsProcedure, connect.NewUnaryHandler(ListAchievementsProcedure, s.ListAchievements, opts...))
	mux.Handle(ListRolesProcedure, connect.NewUnaryHandler(ListRolesProcedure, s.ListRoles, opts...))
	mux.Handle(GetDatabaseStatsProcedure, connect.NewUnaryHandler(GetDatabaseStatsProcedure, s.GetDatabaseStats, opts...))

	return "/" + SimulatorServiceName + "/", mux
}

func (s *SimulatorServer) SimulateSeries(ctx context.Context, req *connect.Request[SimulateSeriesRequest]) (*connect.Response[SimulateSeriesResponse], error) {
	msg := req.Msg

	if (msg.RosterA == nil) != (msg.RosterB == nil) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errOneInlineRoster)
	}

	var out *service.SeriesOutcome
	var err error
	if msg.RosterA != nil {
		out, err = s.simSvc.SimulateAdhoc(ctx, *msg.RosterA, *msg.RosterB, msg.Format, msg.Seed)
	} else {
		out, err = s.simSvc.SimulateSeries(ctx, msg.TeamA, msg.TeamB, msg.Format, msg.Seed)
	}
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	return connect.NewResponse(&SimulateSeriesResponse{
		SeriesID: out.ID,
		Seed:     out.Seed,
		Result:   out.Result,
	}), nil
}

func (s *SimulatorServer) GetSeries(ctx context.Context, req *connect.Request[GetSeriesRequest]) (*connect.Response[GetSeriesResponse], error) {
	rec, err := s.simSvc.GetSeries(ctx, req.Msg.SeriesID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetSeriesResponse{Series: rec}), nil
}

func (s *SimulatorServer) ListRecentSeries(ctx context.Context, req *connect.Request[ListRecentSeriesRequest]) (*connect.Response[ListRecentSeriesResponse], error) {
	series, err := s.simSvc.RecentSeries(ctx, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListRecentSeriesResponse{Series: series}), nil
}

func (s *SimulatorServer) ListTeams(ctx context.Context, req *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.simSvc.ListTeams(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListTeamsResponse{Teams: teams}), nil
}

func (s *SimulatorServer) CreateCareer(ctx context.Context, req *connect.Request[CreateCareerRequest]) (*connect.Response[CareerResponse], error) {
	c, err := s.careerSvc.Create(ctx, req.Msg.PlayerName, req.Msg.Role, req.Msg.Team)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&CareerResponse{Career: c.Summary()}), nil
}

func (s *SimulatorServer) GetCareer(ctx context.Context, req *connect.Request[GetCareerRequest]) (*connect.Response[CareerResponse], error) {
	c, err := s.careerSvc.Get(ctx, req.Msg.PlayerName)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&CareerResponse{Career: c.Summary()}), nil
}

func (s *SimulatorServer) ListCareers(ctx context.Context, req *connect.Request[ListCareersRequest]) (*connect.Response[ListCareersResponse], error) {
	careers, err := s.careerSvc.List(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListCareersResponse{Careers: careers}), nil
}

func (s *SimulatorServer) DeleteCareer(ctx context.Context, req *connect.Request[DeleteCareerRequest]) (*connect.Response[DeleteCareerResponse], error) {
	if err := s.careerSvc.Delete(ctx, req.Msg.PlayerName); err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&DeleteCareerResponse{}), nil
}

func (s *SimulatorServer) PlayCareerMatch(ctx context.Context, req *connect.Request[PlayCareerMatchRequest]) (*connect.Response[PlayCareerMatchResponse], error) {
	report, err := s.careerSvc.PlayMatch(ctx, req.Msg.PlayerName, req.Msg.Opponent, req.Msg.Seed)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&PlayCareerMatchResponse{
		Team:     report.Team,
		Opponent: report.Opponent,
		SeriesID: report.SeriesID,
		Seed:     report.Seed,
		Line:     report.Line,
		Outcome:  report.Outcome,
		Series:   report.Series,
		Career:   report.Career,
	}), nil
}

func (s *SimulatorServer) GetCareerHistory(ctx context.Context, req *connect.Request[GetCareerHistoryRequest]) (*connect.Response[GetCareerHistoryResponse], error) {
	matches, err := s.careerSvc.History(ctx, req.Msg.PlayerName, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetCareerHistoryResponse{Matches: matches}), nil
}

func (s *SimulatorServer) ListAchievements(ctx context.Context, req *connect.Request[ListAchievementsRequest]) (*connect.Response[ListAchievementsResponse], error) {
	achievements, err := s.catalog.Achievements(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListAchievementsResponse{Achievements: achievements}), nil
}

func (s *SimulatorServer) ListRoles(ctx context.Context, req *connect.Request[ListRolesRequest]) (*connect.Response[ListRolesResponse], error) {
	roles, err := s.catalog.Roles(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListRolesResponse{Roles: roles}), nil
}

func (s *SimulatorServer) GetDatabaseStats(ctx context.Context, req *connect.Request[GetDatabaseStatsRequest]) (*connect.Response[GetDatabaseStatsResponse], error) {
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetDatabaseStatsResponse{Stats: stats}), nil
}

var invalidArgument = []error{
	sim.ErrInvalidFormat,
	sim.ErrEmptyRoster,
	sim.ErrInvalidRating,
	sim.ErrSameTeam,
	career.ErrNegativeStat,
	service.ErrInvalidName,
	service.ErrUnknownRole,
}

func errorCode(err error) connect.Code {
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return connect.CodeInvalidArgument
		}
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, service.ErrCareerExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, service.ErrNoOpponent):
		return connect.CodeFailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	}
	return connect.CodeInternal
}

func toConnectError(ctx context.Context, err error) error {
	code := errorCode(err)
	if code == connect.CodeInternal {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}
	return connect.NewError(code, err)
}
