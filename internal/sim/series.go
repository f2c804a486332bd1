package sim

import (
	"fmt"
	"strings"
)

type Format string

const (
	BO1 Format = "BO1"
	BO3 Format = "BO3"
	BO5 Format = "BO5"
)

// ParseFormat accepts BO1, BO3 and BO5 in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

func (f Format) Validate() error {
	if f.MapsToWin() == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(f))
	}
	return nil
}

// MapsToWin is the number of map wins that ends the series, or 0 for an
// unknown format.
func (f Format) MapsToWin() int {
	switch f {
	case BO1:
		return 1
	case BO3:
		return 2
	case BO5:
		return 3
	}
	return 0
}

func (f Format) String() string {
	return string(f)
}

// PlayerStatLine is one player's tally for a match or series.
type PlayerStatLine struct {
	Name    string  `json:"name"`
	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	Rating  float64 `json:"rating"`
}

// SeriesResult is the immutable outcome of a series.
type SeriesResult struct {
	TeamA          string      `json:"team_a"`
	TeamB          string      `json:"team_b"`
	Format         Format      `json:"format"`
	Winner         string      `json:"winner"`
	Loser          string      `json:"loser"`
	TeamAMaps      int         `json:"team_a_maps"`
	TeamBMaps      int         `json:"team_b_maps"`
	Maps           []MapResult `json:"maps"`
	MapSummaries   []string    `json:"map_summaries"`
	Rounds         []string    `json:"rounds"`
	OvertimeLevels []int       `json:"overtime_levels"`
	// PlayerStats is keyed by team name and captured once the series is over.
	PlayerStats map[string][]PlayerStatLine `json:"player_stats"`
}

func (r *SeriesResult) TotalRounds() int {
	return len(r.Rounds)
}

// StatLine looks up a player's line by team and player name.
func (r *SeriesResult) StatLine(team, player string) (PlayerStatLine, bool) {
	for _, l := range r.PlayerStats[team] {
		if l.Name == player {
			return l, true
		}
	}
	return PlayerStatLine{}, false
}

// SimulateSeries plays maps between a and b until one side reaches the map
// count required by format. Player counters accumulate across maps and are
// turned into performance ratings at the end.
func (e *Engine) SimulateSeries(a, b Roster, format Format) (*SeriesResult, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	teamA, teamB, err := newTeams(a, b)
	if err != nil {
		return nil, err
	}

	need := format.MapsToWin()
	res := &SeriesResult{
		TeamA:  teamA.Name,
		TeamB:  teamB.Name,
		Format: format,
	}

	for res.TeamAMaps < need && res.TeamBMaps < need {
		m := e.SimulateMap(teamA, teamB)
		if m.Winner == teamA.Name {
			res.TeamAMaps++
		} else {
			res.TeamBMaps++
		}

		res.Maps = append(res.Maps, m)
		res.MapSummaries = append(res.MapSummaries, m.Summary(len(res.Maps)))
		res.Rounds = append(res.Rounds, m.Rounds...)
		res.OvertimeLevels = append(res.OvertimeLevels, m.OvertimeLevel)
	}

	if res.TeamAMaps == need {
		res.Winner, res.Loser = teamA.Name, teamB.Name
	} else {
		res.Winner, res.Loser = teamB.Name, teamA.Name
	}

	assignRatings(len(res.Rounds), teamA, teamB)
	res.PlayerStats = map[string][]PlayerStatLine{
		teamA.Name: teamA.StatLines(),
		teamB.Name: teamB.StatLines(),
	}
	return res, nil
}
