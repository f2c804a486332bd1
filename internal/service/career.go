package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cs2-simulator/internal/career"
	"cs2-simulator/internal/constants"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/sim"
)

type CareerService struct {
	careers *repository.CareerRepository
	teams   *repository.TeamRepository
	catalog *repository.CatalogRepository
	series  *repository.SeriesRepository
	locks   *keyedMutex
	now     func() time.Time
	logger  zerolog.Logger
}

func NewCareerService(
	careers *repository.CareerRepository,
	teams *repository.TeamRepository,
	catalog *repository.CatalogRepository,
	series *repository.SeriesRepository,
	logger zerolog.Logger,
) *CareerService {
	return &CareerService{
		careers: careers,
		teams:   teams,
		catalog: catalog,
		series:  series,
		locks:   newKeyedMutex(),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// Create starts a career. With a team name the player joins that team in
// place of the professional holding the same role.
func (s *CareerService) Create(ctx context.Context, name, role, teamName string) (*career.Career, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if role == "" {
		role = career.DefaultRole
	}

	unlock := s.locks.Lock(name)
	defer unlock()

	if _, err := s.careers.Get(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCareerExists, name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.catalog.Role(ctx, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
		}
		return nil, err
	}

	var teamID *int64
	if teamName != "" && teamName != constants.FreeAgentTeam {
		team, err := s.teams.GetTeamByName(ctx, teamName)
		if err != nil {
			return nil, err
		}
		teamID = &team.ID
	}

	c := career.New(name, role, teamID, s.now())
	if err := s.careers.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("player", name).
		Str("role", role).
		Str("team", teamName).
		Msg("career created")
	return c, nil
}

func (s *CareerService) Get(ctx context.Context, name string) (*career.Career, error) {
	return s.careers.Get(ctx, name)
}

func (s *CareerService) List(ctx context.Context) ([]career.Summary, error) {
	careers, err := s.careers.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]career.Summary, len(careers))
	for i, c := range careers {
		result[i] = c.Summary()
	}
	return result, nil
}

func (s *CareerService) Delete(ctx context.Context, name string) error {
	unlock := s.locks.Lock(name)
	defer unlock()
	return s.careers.Delete(ctx, name)
}

// History returns the latest matches, newest first. Limits outside
// (0, MaxCareerHistoryLimit] fall back to the defaults.
func (s *CareerService) History(ctx context.Context, name string, limit int) ([]domain.CareerMatch, error) {
	switch {
	case limit <= 0:
		limit = constants.CareerHistoryLimit
	case limit > constants.MaxCareerHistoryLimit:
		limit = constants.MaxCareerHistoryLimit
	}
	return s.careers.History(ctx, name, limit)
}

// MatchReport is everything a career match produced.
type MatchReport struct {
	Team     string
	Opponent string
	SeriesID string
	Seed     uint64
	Line     sim.PlayerStatLine
	Outcome  *career.MatchOutcome
	Series   *sim.SeriesResult
	Career   career.Summary
}

// PlayMatch plays a BO1 for the career's team and folds the career player's
// line into their progression. An empty opponent picks one at random from
// the other teams; the pick is drawn from the same seeded stream as the
// match.
func (s *CareerService) PlayMatch(ctx context.Context, name, opponent string, seed uint64) (*MatchReport, error) {
	unlock := s.locks.Lock(name)
	defer unlock()

	c, err := s.careers.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	teamName := constants.FreeAgentTeam
	var teammates []domain.RosterPlayer
	if id := c.Player.TeamID; id != nil {
		team, err := s.teams.GetTeamByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		teamName = team.Name
		if teammates, err = s.teams.GetLineup(ctx, team.ID); err != nil {
			return nil, err
		}
	}
	own := sim.Roster{Name: teamName, Players: buildLineup(c.Player, teammates)}

	seed, err = resolveSeed(seed)
	if err != nil {
		return nil, err
	}
	src := sim.NewRand(seed)

	if opponent == "" {
		if opponent, err = s.pickOpponent(ctx, teamName, src); err != nil {
			return nil, err
		}
	} else if opponent == teamName {
		return nil, fmt.Errorf("%w: %s", sim.ErrSameTeam, opponent)
	}
	opp, err := s.teams.GetRoster(ctx, opponent)
	if err != nil {
		return nil, err
	}

	res, err := sim.NewEngine(src).SimulateSeries(own, opp, sim.BO1)
	if err != nil {
		return nil, err
	}

	// the career player leads the lineup, so the line always exists
	line, _ := res.StatLine(own.Name, c.PlayerName)
	won := res.Winner == own.Name
	now := s.now()

	outcome, err := c.RecordMatch(won, career.StatLine{Kills: line.Kills, Deaths: line.Deaths, Assists: line.Assists}, now)
	if err != nil {
		return nil, err
	}

	seriesID, err := s.series.Save(ctx, repository.NewSeriesRecord(res, seed, now))
	if err != nil {
		return nil, err
	}
	_, err = s.careers.SaveMatch(ctx, c, domain.CareerMatch{
		PlayerName:   c.PlayerName,
		OpponentTeam: opponent,
		Won:          won,
		Kills:        line.Kills,
		Deaths:       line.Deaths,
		Assists:      line.Assists,
		SeriesID:     seriesID,
		PlayedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("player", c.PlayerName).
		Str("team", own.Name).
		Str("opponent", opponent).
		Bool("won", won).
		Int("kills", line.Kills).
		Int("deaths", line.Deaths).
		Int("assists", line.Assists).
		Int("exp_gained", outcome.ExperienceGained).
		Int("levels_gained", outcome.LevelsGained).
		Strs("new_achievements", outcome.NewAchievements).
		Msg("career match played")

	return &MatchReport{
		Team:     own.Name,
		Opponent: opponent,
		SeriesID: seriesID,
		Seed:     seed,
		Line:     line,
		Outcome:  outcome,
		Series:   res,
		Career:   c.Summary(),
	}, nil
}

func (s *CareerService) pickOpponent(ctx context.Context, own string, src sim.Source) (string, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return "", err
	}
	var candidates []string
	for _, t := range teams {
		if t.Team.Name == own || t.Team.Name == constants.FreeAgentTeam || len(t.Players) == 0 {
			continue
		}
		candidates = append(candidates, t.Team.Name)
	}
	if len(candidates) == 0 {
		return "", ErrNoOpponent
	}
	return candidates[src.IntN(len(candidates))], nil
}

// buildLineup puts the career player first at their current rating, drops
// teammates sharing the career player's role and keeps at most LineupSize
// players.
func buildLineup(p *career.Player, teammates []domain.RosterPlayer) []sim.RosterEntry {
	lineup := []sim.RosterEntry{{Name: p.Name, Rating: p.CurrentRating}}
	for _, tm := range teammates {
		if tm.Name == p.Name || tm.Role == p.Role {
			continue
		}
		lineup = append(lineup, sim.RosterEntry{Name: tm.Name, Rating: tm.Rating})
	}
	if len(lineup) > constants.LineupSize {
		lineup = lineup[:constants.LineupSize]
	}
	return lineup
}
