package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"cs2-simulator/internal/api"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/repository"
	"cs2-simulator/internal/sim"
)

type RosterService struct {
	client *api.RosterClient
	teams  *repository.TeamRepository
	logger zerolog.Logger
}

func NewRosterService(client *api.RosterClient, teams *repository.TeamRepository, logger zerolog.Logger) *RosterService {
	return &RosterService{client: client, teams: teams, logger: logger}
}

type ImportReport struct {
	Source  string
	Teams   int
	Players int
	Seed    uint64
}

// Import loads a teams file from a path or an http(s) URL and replaces the
// stored professional rosters with it. An empty source uses the configured
// feed. The seed drives role assignment for players without a known role.
func (s *RosterService) Import(ctx context.Context, source string, seed uint64) (*ImportReport, error) {
	if source == "" {
		source = s.client.FeedURL()
	}

	file, err := s.load(ctx, source)
	if err != nil {
		return nil, err
	}

	seed, err = resolveSeed(seed)
	if err != nil {
		return nil, err
	}
	teams := BuildImport(file, sim.NewRand(seed))

	n, err := s.teams.ImportTeams(ctx, teams)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("source", source).
		Int("teams", len(teams)).
		Int("players", n).
		Uint64("seed", seed).
		Msg("roster import finished")

	return &ImportReport{Source: source, Teams: len(teams), Players: n, Seed: seed}, nil
}

func (s *RosterService) load(ctx context.Context, source string) (*api.TeamsFile, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") || source == "" {
		return s.client.Fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return api.DecodeTeamsFile(data)
}

// BuildImport turns a feed into import records with roles assigned team by
// team in name order.
func BuildImport(file *api.TeamsFile, src sim.Source) []domain.TeamImport {
	feed := file.SortedTeams()
	teams := make([]domain.TeamImport, len(feed))
	for i, t := range feed {
		roles := AssignRoles(t.Players, src)
		players := make([]domain.PlayerImport, len(t.Players))
		for j, p := range t.Players {
			players[j] = domain.PlayerImport{Name: p.Name, Rating: p.Rating, Role: roles[j]}
		}
		teams[i] = domain.TeamImport{Name: t.Name, Players: players}
	}
	return teams
}
