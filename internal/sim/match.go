package sim

import "fmt"

const (
	RegulationTarget = 13
	RegulationMargin = 1
	MaxRounds        = 40
)

// overtimeStep escalates a tied map: once both scores reach trigger, the map
// is played to target with the given winning margin.
type overtimeStep struct {
	trigger int
	target  int
	margin  int
}

var overtimeLadder = []overtimeStep{
	{trigger: 12, target: 16, margin: 2},
	{trigger: 15, target: 19, margin: 3},
	{trigger: 18, target: 22, margin: 4},
	{trigger: 21, target: 25, margin: 5},
	{trigger: 24, target: 28, margin: 6},
	{trigger: 27, target: 31, margin: 7},
	{trigger: 30, target: 34, margin: 8},
	{trigger: 33, target: 37, margin: 9},
}

// TargetFor returns the winning score and margin in force at an overtime level.
func TargetFor(level int) (target, margin int) {
	if level <= 0 {
		return RegulationTarget, RegulationMargin
	}
	if level > len(overtimeLadder) {
		level = len(overtimeLadder)
	}
	step := overtimeLadder[level-1]
	return step.target, step.margin
}

// MapResult is the immutable outcome of one map.
type MapResult struct {
	Winner        string   `json:"winner"`
	Loser         string   `json:"loser"`
	WinnerScore   int      `json:"winner_score"`
	LoserScore    int      `json:"loser_score"`
	Rounds        []string `json:"rounds"`
	OvertimeLevel int      `json:"overtime_level"`
	// Capped is set when the map hit MaxRounds before anyone met the margin.
	Capped bool `json:"capped"`
}

func (m MapResult) RoundCount() int {
	return m.WinnerScore + m.LoserScore
}

// Summary formats the map the way series reports list it.
func (m MapResult) Summary(number int) string {
	return fmt.Sprintf("Map %d: %s %d - %d %s", number, m.Winner, m.WinnerScore, m.LoserScore, m.Loser)
}

// SimulateMap plays rounds until one side meets the target and margin of the
// current overtime level, or MaxRounds is reached. Player counters keep
// accumulating on a and b.
func (e *Engine) SimulateMap(a, b *Team) MapResult {
	var scoreA, scoreB int
	target, margin := RegulationTarget, RegulationMargin
	level := 0
	rounds := make([]string, 0, 2*RegulationTarget)

	var aWon, capped bool
	for {
		roundA := e.SimulateRound(a, b)
		name := b.Name
		if roundA {
			scoreA++
			name = a.Name
		} else {
			scoreB++
		}

		played := scoreA + scoreB
		rounds = append(rounds, fmt.Sprintf("Round %d: %s wins", played, name))

		if played >= MaxRounds {
			capped = true
			switch {
			case scoreA > scoreB:
				aWon = true
			case scoreB > scoreA:
				aWon = false
			default:
				aWon = e.src.Float64() < 0.5
			}
			break
		}

		if scoreA >= target && scoreA-scoreB >= margin {
			aWon = true
			break
		}
		if scoreB >= target && scoreB-scoreA >= margin {
			break
		}

		if level < len(overtimeLadder) {
			step := overtimeLadder[level]
			if scoreA >= step.trigger && scoreB >= step.trigger {
				target, margin = step.target, step.margin
				level++
			}
		}
	}

	res := MapResult{
		Rounds:        rounds,
		OvertimeLevel: level,
		Capped:        capped,
	}
	if aWon {
		res.Winner, res.Loser = a.Name, b.Name
		res.WinnerScore, res.LoserScore = scoreA, scoreB
	} else {
		res.Winner, res.Loser = b.Name, a.Name
		res.WinnerScore, res.LoserScore = scoreB, scoreA
	}
	return res
}

// MatchResult is a standalone map played on fresh rosters.
type MatchResult struct {
	MapResult
	PlayerStats map[string][]PlayerStatLine `json:"player_stats"`
}

// SimulateMatch plays a single map between two rosters, outside any series.
func (e *Engine) SimulateMatch(a, b Roster) (*MatchResult, error) {
	teamA, teamB, err := newTeams(a, b)
	if err != nil {
		return nil, err
	}

	m := e.SimulateMap(teamA, teamB)
	assignRatings(m.RoundCount(), teamA, teamB)

	return &MatchResult{
		MapResult: m,
		PlayerStats: map[string][]PlayerStatLine{
			teamA.Name: teamA.StatLines(),
			teamB.Name: teamB.StatLines(),
		},
	}, nil
}

func newTeams(a, b Roster) (*Team, *Team, error) {
	if a.Name == b.Name {
		return nil, nil, fmt.Errorf("%w: %q", ErrSameTeam, a.Name)
	}
	teamA, err := NewTeam(a)
	if err != nil {
		return nil, nil, err
	}
	teamB, err := NewTeam(b)
	if err != nil {
		return nil, nil, err
	}
	return teamA, teamB, nil
}
