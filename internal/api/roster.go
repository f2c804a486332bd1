package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"cs2-simulator/internal/config"
	"cs2-simulator/internal/constants"
)

var ErrNoFeedURL = errors.New("no roster feed url configured")

// TeamsFile is the roster feed document: team name to ordered players.
type TeamsFile struct {
	Teams map[string][]FeedPlayer `json:"teams"`
}

type FeedPlayer struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// FeedTeam is one entry of TeamsFile in a stable order.
type FeedTeam struct {
	Name    string
	Players []FeedPlayer
}

// SortedTeams lists the feed's teams by name so imports are reproducible.
func (f *TeamsFile) SortedTeams() []FeedTeam {
	names := make([]string, 0, len(f.Teams))
	for name := range f.Teams {
		names = append(names, name)
	}
	sort.Strings(names)

	teams := make([]FeedTeam, len(names))
	for i, name := range names {
		teams[i] = FeedTeam{Name: name, Players: f.Teams[name]}
	}
	return teams
}

func DecodeTeamsFile(data []byte) (*TeamsFile, error) {
	var f TeamsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode roster feed: %w", err)
	}
	for team, players := range f.Teams {
		if strings.TrimSpace(team) == "" {
			return nil, fmt.Errorf("roster feed has a team without a name")
		}
		for _, p := range players {
			if strings.TrimSpace(p.Name) == "" {
				return nil, fmt.Errorf("roster feed team %s has a player without a name", team)
			}
		}
	}
	return &f, nil
}

type RosterClient struct {
	feedURL string
	client  *fasthttp.Client
}

func NewRosterClient(cfg *config.Config) *RosterClient {
	return &RosterClient{
		feedURL: cfg.RosterFeedURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
			MaxResponseBodySize: constants.MaxRosterFeedBytes,
		},
	}
}

// FeedURL is the configured default feed, possibly empty.
func (c *RosterClient) FeedURL() string {
	return c.feedURL
}

// Fetch downloads and decodes a roster feed. An empty url falls back to the
// configured feed.
func (c *RosterClient) Fetch(ctx context.Context, url string) (*TeamsFile, error) {
	if url == "" {
		url = c.feedURL
	}
	if url == "" {
		return nil, ErrNoFeedURL
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("failed to fetch roster feed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("roster feed error: %d", resp.StatusCode())
	}

	return DecodeTeamsFile(resp.Body())
}
