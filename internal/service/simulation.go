package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cs2-simulator/internal/config"
	"cs2-simulator/internal/constants"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/sim"
)

type SimulationService struct {
	teams         *repository.TeamRepository
	series        *repository.SeriesRepository
	defaultFormat sim.Format
	now           func() time.Time
	logger        zerolog.Logger
}

func NewSimulationService(
	cfg *config.Config,
	teams *repository.TeamRepository,
	series *repository.SeriesRepository,
	logger zerolog.Logger,
) *SimulationService {
	return &SimulationService{
		teams:         teams,
		series:        series,
		defaultFormat: cfg.SeriesFormat(),
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}
}

// SeriesOutcome is a simulated series together with what is needed to
// replay or look it up later.
type SeriesOutcome struct {
	ID     string
	Seed   uint64
	Result *sim.SeriesResult
}

func (s *SimulationService) parseFormat(format string) (sim.Format, error) {
	if strings.TrimSpace(format) == "" {
		return s.defaultFormat, nil
	}
	return sim.ParseFormat(format)
}

// SimulateSeries plays a series between two stored teams. A zero seed draws
// a random one; the seed used is returned so the series can be replayed.
func (s *SimulationService) SimulateSeries(ctx context.Context, teamA, teamB, format string, seed uint64) (*SeriesOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SimulationTimeout)
	defer cancel()

	f, err := s.parseFormat(format)
	if err != nil {
		return nil, err
	}
	if teamA == teamB {
		return nil, fmt.Errorf("%w: %s", sim.ErrSameTeam, teamA)
	}

	var rosterA, rosterB sim.Roster
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosterA, err = s.teams.GetRoster(gCtx, teamA)
		return err
	})
	g.Go(func() error {
		var err error
		rosterB, err = s.teams.GetRoster(gCtx, teamB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.run(ctx, rosterA, rosterB, f, seed)
}

// SimulateAdhoc plays a series between rosters supplied by the caller.
func (s *SimulationService) SimulateAdhoc(ctx context.Context, a, b sim.Roster, format string, seed uint64) (*SeriesOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SimulationTimeout)
	defer cancel()

	f, err := s.parseFormat(format)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, a, b, f, seed)
}

func (s *SimulationService) run(ctx context.Context, a, b sim.Roster, f sim.Format, seed uint64) (*SeriesOutcome, error) {
	seed, err := resolveSeed(seed)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := sim.NewEngine(sim.NewRand(seed)).SimulateSeries(a, b, f)
	if err != nil {
		return nil, err
	}

	id, err := s.series.Save(ctx, repository.NewSeriesRecord(res, seed, s.now()))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("series_id", id).
		Str("team_a", res.TeamA).
		Str("team_b", res.TeamB).
		Str("format", f.String()).
		Str("winner", res.Winner).
		Int("team_a_maps", res.TeamAMaps).
		Int("team_b_maps", res.TeamBMaps).
		Int("rounds", res.TotalRounds()).
		Uint64("seed", seed).
		Dur("duration", time.Since(start)).
		Msg("series simulated")

	return &SeriesOutcome{ID: id, Seed: seed, Result: res}, nil
}

func (s *SimulationService) GetSeries(ctx context.Context, id string) (*domain.SeriesRecord, error) {
	return s.series.Get(ctx, id)
}

func (s *SimulationService) RecentSeries(ctx context.Context, limit int) ([]domain.SeriesRecord, error) {
	if limit <= 0 || limit > constants.RecentSeriesLimit {
		limit = constants.RecentSeriesLimit
	}
	return s.series.Recent(ctx, limit)
}

func (s *SimulationService) ListTeams(ctx context.Context) ([]domain.TeamWithPlayers, error) {
	return s.teams.ListTeams(ctx)
}
