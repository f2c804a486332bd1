package career

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func TestExperienceFor(t *testing.T) {
	assert.Equal(t, 261, ExperienceFor(StatLine{Kills: 10, Deaths: 2, Assists: 3}, true))
	assert.Equal(t, 161, ExperienceFor(StatLine{Kills: 10, Deaths: 2, Assists: 3}, false))
	assert.Equal(t, 10, ExperienceFor(StatLine{Deaths: 40}, false), "floored at the minimum")
	assert.Equal(t, 50, ExperienceFor(StatLine{}, false))
}

func TestApplyMatchResult_MultiLevelJump(t *testing.T) {
	p := NewPlayer("rookie", "", nil, day)
	require.Equal(t, DefaultRole, p.Role)

	progress, err := p.ApplyMatchResult(true, StatLine{Kills: 10, Deaths: 2, Assists: 3})
	require.NoError(t, err)

	assert.Equal(t, 261, progress.ExperienceGained)
	assert.Equal(t, 2, progress.LevelsGained)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 41, p.Experience)
	assert.Equal(t, 144, p.ExperienceToNext)
	assert.Equal(t, DefaultRating+2, p.CurrentRating)
	assert.Equal(t, 2, progress.RatingGained)

	assert.Equal(t, 1, p.MatchesPlayed)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, 10, p.TotalKills)
	assert.Equal(t, 2, p.TotalDeaths)
	assert.Equal(t, 3, p.TotalAssists)
}

func TestApplyMatchResult_ExperienceStaysBelowThreshold(t *testing.T) {
	p := NewPlayer("grinder", "AWPer", nil, day)
	lines := []StatLine{
		{Kills: 30, Deaths: 5, Assists: 8},
		{Kills: 0, Deaths: 20},
		{Kills: 80, Deaths: 1, Assists: 40},
		{Kills: 12, Deaths: 12, Assists: 2},
	}
	for i := range 40 {
		before := p.CurrentRating
		level := p.Level
		_, err := p.ApplyMatchResult(i%3 != 0, lines[i%len(lines)])
		require.NoError(t, err)

		assert.Less(t, p.Experience, p.ExperienceToNext)
		assert.GreaterOrEqual(t, p.Experience, 0)
		assert.GreaterOrEqual(t, p.CurrentRating, before)
		assert.LessOrEqual(t, p.CurrentRating, MaxRating)
		assert.GreaterOrEqual(t, p.Level, level)
	}
}

func TestApplyMatchResult_RatingCapped(t *testing.T) {
	p := NewPlayer("veteran", "IGL", nil, day)
	p.CurrentRating = 98
	p.Level = 24

	_, err := p.ApplyMatchResult(true, StatLine{Kills: 200})
	require.NoError(t, err)
	assert.Equal(t, MaxRating, p.CurrentRating)
}

func TestApplyMatchResult_RatingStepGrowsWithLevel(t *testing.T) {
	p := NewPlayer("climber", "", nil, day)
	p.Level = 9
	p.ExperienceToNext = 10

	_, err := p.ApplyMatchResult(false, StatLine{})
	require.NoError(t, err)

	// 50 exp at threshold 10 reaches level 10 (step 3), then 40 vs 12 reaches 11 (step 3),
	// then 28 vs 14 reaches 12 (step 3), then 14 vs 16 stops.
	assert.Equal(t, 12, p.Level)
	assert.Equal(t, DefaultRating+9, p.CurrentRating)
	assert.Equal(t, 14, p.Experience)
	assert.Equal(t, 16, p.ExperienceToNext)
}

func TestApplyMatchResult_RejectsNegativeStats(t *testing.T) {
	p := NewPlayer("cheater", "", nil, day)
	before := *p

	_, err := p.ApplyMatchResult(true, StatLine{Kills: -1})
	assert.ErrorIs(t, err, ErrNegativeStat)
	assert.Equal(t, before, *p)
}

func TestAchievements_UnlockOnceAndNeverRevoke(t *testing.T) {
	p := NewPlayer("ace", "", nil, day)

	progress, err := p.ApplyMatchResult(true, StatLine{Kills: 10, Deaths: 2, Assists: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{AchievementSharpshooter}, progress.NewAchievements)

	// a terrible run drags the ratio below 1.5 without revoking anything
	progress, err = p.ApplyMatchResult(false, StatLine{Deaths: 30})
	require.NoError(t, err)
	assert.Empty(t, progress.NewAchievements)
	assert.True(t, p.HasAchievement(AchievementSharpshooter))
	assert.Less(t, p.KDR(), 1.5)

	seen := append([]string{}, p.Achievements...)
	for range 12 {
		_, err := p.ApplyMatchResult(true, StatLine{Kills: 6, Deaths: 3})
		require.NoError(t, err)
		assert.Subset(t, p.Achievements, seen)
		seen = append([]string{}, p.Achievements...)
	}

	for _, name := range []string{AchievementRisingStar, AchievementVeteran, AchievementWinner, AchievementKiller, AchievementSharpshooter} {
		assert.True(t, p.HasAchievement(name), name)
	}
	assert.Len(t, p.Achievements, 5)
}

func TestKDR(t *testing.T) {
	p := NewPlayer("x", "", nil, day)
	assert.Zero(t, p.KDR())

	p.TotalKills = 7
	assert.Equal(t, 7.0, p.KDR())

	p.TotalDeaths = 2
	assert.Equal(t, 3.5, p.KDR())
}

func TestRecordMatch_Streaks(t *testing.T) {
	c := New("streaky", "Support", nil, day)

	for i, won := range []bool{true, true, false, true} {
		_, err := c.RecordMatch(won, StatLine{Kills: 3, Deaths: 3}, day.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, c.CurrentStreak)
	assert.Equal(t, 2, c.BestStreak)
	assert.Equal(t, 4, c.TotalMatches)
	assert.Equal(t, 4, c.Player.MatchesPlayed)
	assert.Equal(t, day.Add(3*time.Hour), c.LastPlayed)
}

func TestRecordMatch_UnstoppableAfterTenStraightWins(t *testing.T) {
	c := New("unstoppable", "", nil, day)

	var outcome *MatchOutcome
	var err error
	for range UnstoppableStreak {
		require.False(t, c.Player.HasAchievement(AchievementUnstoppable))
		outcome, err = c.RecordMatch(true, StatLine{Kills: 1, Deaths: 1}, day)
		require.NoError(t, err)
	}

	assert.Contains(t, outcome.NewAchievements, AchievementUnstoppable)
	assert.Equal(t, UnstoppableStreak, outcome.BestStreak)

	outcome, err = c.RecordMatch(false, StatLine{}, day)
	require.NoError(t, err)
	assert.Zero(t, outcome.CurrentStreak)
	assert.True(t, c.Player.HasAchievement(AchievementUnstoppable))
}

func TestRecordMatch_RejectsBeforeMutating(t *testing.T) {
	c := New("careful", "", nil, day)
	c.CurrentStreak = 3

	_, err := c.RecordMatch(true, StatLine{Assists: -2}, day.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNegativeStat)
	assert.Equal(t, 3, c.CurrentStreak)
	assert.Zero(t, c.TotalMatches)
	assert.Equal(t, day, c.LastPlayed)
}

func TestSummary(t *testing.T) {
	c := New("summary", "Lurker", nil, day)
	_, err := c.RecordMatch(true, StatLine{Kills: 4, Deaths: 2, Assists: 1}, day)
	require.NoError(t, err)
	_, err = c.RecordMatch(false, StatLine{Kills: 2, Deaths: 2}, day)
	require.NoError(t, err)

	s := c.Summary()
	assert.Equal(t, "summary", s.PlayerName)
	assert.Equal(t, "Lurker", s.Role)
	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 1.5, s.KDR)
	assert.Equal(t, 2, s.TotalMatches)
	assert.Contains(t, s.Achievements, AchievementSharpshooter)
}

func TestDefaultCatalogs(t *testing.T) {
	names := map[string]bool{}
	for _, a := range DefaultAchievements() {
		names[a.Name] = true
	}
	for _, r := range playerRules {
		assert.True(t, names[r.name], r.name)
	}
	assert.True(t, names[AchievementUnstoppable])

	var roles []string
	for _, r := range DefaultRoles() {
		roles = append(roles, r.Name)
	}
	assert.Contains(t, roles, DefaultRole)
}
