package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cs2-simulator/internal/career"
	"cs2-simulator/internal/domain"
	"cs2-simulator/internal/service"
	"cs2-simulator/internal/sim"
)

func printSeries(w io.Writer, r *sim.SeriesResult) {
	fmt.Fprintln(w, "=== SERIES RESULTS ===")
	fmt.Fprintf(w, "%s wins the %s series %d - %d\n", r.Winner, r.Format, r.TeamAMaps, r.TeamBMaps)
	fmt.Fprintln(w, "\nMap results:")
	for i, m := range r.Maps {
		fmt.Fprintln(w, m.Summary(i+1))
		if m.OvertimeLevel > 0 {
			fmt.Fprintf(w, "(After %s)\n", plural(m.OvertimeLevel, "overtime"))
		}
	}
	printPlayerStats(w, r.TeamA, r.PlayerStats[r.TeamA])
	printPlayerStats(w, r.TeamB, r.PlayerStats[r.TeamB])
}

func printPlayerStats(w io.Writer, team string, lines []sim.PlayerStatLine) {
	fmt.Fprintf(w, "\n%s Player Stats:\n", team)
	for _, l := range lines {
		fmt.Fprintf(w, "  %s: %dK / %dA / %dD - Rating: %.2f\n", l.Name, l.Kills, l.Assists, l.Deaths, l.Rating)
	}
}

func printSeriesRecord(w io.Writer, rec *domain.SeriesRecord) {
	fmt.Fprintf(w, "Series %s played %s (seed %d)\n", rec.ID, rec.PlayedAt.Local().Format(time.DateTime), rec.Seed)
	fmt.Fprintf(w, "%s wins the %s series %d - %d against %s\n", rec.Winner, rec.Format, rec.TeamAMaps, rec.TeamBMaps, rec.Loser)
	fmt.Fprintln(w, "\nMap results:")
	for _, m := range rec.Maps {
		fmt.Fprintf(w, "Map %d: %s %d - %d %s\n", m.Number, m.Winner, m.WinnerScore, m.LoserScore, m.Loser)
		if m.OvertimeLevel > 0 {
			fmt.Fprintf(w, "(After %s)\n", plural(m.OvertimeLevel, "overtime"))
		}
	}

	byTeam := map[string][]sim.PlayerStatLine{}
	for _, s := range rec.PlayerStats {
		byTeam[s.Team] = append(byTeam[s.Team], sim.PlayerStatLine{
			Name: s.Name, Kills: s.Kills, Deaths: s.Deaths, Assists: s.Assists, Rating: s.Rating,
		})
	}
	printPlayerStats(w, rec.TeamA, byTeam[rec.TeamA])
	printPlayerStats(w, rec.TeamB, byTeam[rec.TeamB])
}

func printRecentSeries(w io.Writer, records []domain.SeriesRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no series played yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAYED\tFORMAT\tMATCHUP\tSCORE\tWINNER\tROUNDS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s vs %s\t%d - %d\t%s\t%d\n",
			r.ID, r.PlayedAt.Local().Format(time.DateTime), r.Format, r.TeamA, r.TeamB,
			r.TeamAMaps, r.TeamBMaps, r.Winner, r.TotalRounds)
	}
	tw.Flush()
}

func printCareer(w io.Writer, s career.Summary) {
	fmt.Fprintf(w, "%s (%s)\n", s.PlayerName, s.Role)
	fmt.Fprintf(w, "  Level %d  Rating %d  Exp %d/%d\n", s.Level, s.Rating, s.Experience, s.ExperienceToNext)
	fmt.Fprintf(w, "  Matches %d  Wins %d  Win rate %.1f%%\n", s.TotalMatches, s.Wins, s.WinRate)
	fmt.Fprintf(w, "  %dK / %dA / %dD  K/D %.2f\n", s.TotalKills, s.TotalAssists, s.TotalDeaths, s.KDR)
	fmt.Fprintf(w, "  Streak %d  Best %d\n", s.CurrentStreak, s.BestStreak)
	if len(s.Achievements) > 0 {
		fmt.Fprintf(w, "  Achievements: %s\n", strings.Join(s.Achievements, ", "))
	}
}

func printCareers(w io.Writer, careers []career.Summary) {
	if len(careers) == 0 {
		fmt.Fprintln(w, "no careers yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tROLE\tLEVEL\tRATING\tMATCHES\tWIN%\tK/D\tLAST PLAYED")
	for _, c := range careers {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f\t%.2f\t%s\n",
			c.PlayerName, c.Role, c.Level, c.Rating, c.TotalMatches, c.WinRate, c.KDR,
			c.LastPlayed.Local().Format(time.DateTime))
	}
	tw.Flush()
}

func printMatchReport(w io.Writer, r *service.MatchReport) {
	printSeries(w, r.Series)

	o := r.Outcome
	result := "lost"
	if o.Won {
		result = "won"
	}
	fmt.Fprintf(w, "\n%s %s with %s against %s\n", r.Career.PlayerName, result, r.Team, r.Opponent)
	fmt.Fprintf(w, "  %dK / %dA / %dD - Rating: %.2f\n", r.Line.Kills, r.Line.Assists, r.Line.Deaths, r.Line.Rating)
	fmt.Fprintf(w, "  +%d exp", o.ExperienceGained)
	if o.LevelsGained > 0 {
		fmt.Fprintf(w, ", +%s, +%d rating", plural(o.LevelsGained, "level"), o.RatingGained)
	}
	fmt.Fprintln(w)
	for _, a := range o.NewAchievements {
		fmt.Fprintf(w, "  Achievement unlocked: %s\n", a)
	}
	fmt.Fprintf(w, "\nseries %s (seed %d)\n", r.SeriesID, r.Seed)
}

func printHistory(w io.Writer, matches []domain.CareerMatch) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "no matches played yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYED\tOPPONENT\tRESULT\tK\tA\tD\tSERIES")
	for _, m := range matches {
		result := "L"
		if m.Won {
			result = "W"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			m.PlayedAt.Local().Format(time.DateTime), m.OpponentTeam, result, m.Kills, m.Assists, m.Deaths, m.SeriesID)
	}
	tw.Flush()
}

func printTeams(w io.Writer, teams []domain.TeamWithPlayers) {
	for _, t := range teams {
		fmt.Fprintf(w, "%s\n", t.Team.Name)
		for _, p := range t.Players {
			role := p.Role
			if p.RoleIcon != "" {
				role = p.RoleIcon + " " + role
			}
			marker := ""
			if p.IsCareerPlayer {
				marker = " *"
			}
			fmt.Fprintf(w, "  %-20s %3d  %s%s\n", p.Name, p.Rating, role, marker)
		}
	}
}

func printCatalog(w io.Writer, entries []career.CatalogEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s: %s\n", e.Icon, e.Name, e.Description)
	}
}

func printStats(w io.Writer, s *domain.DatabaseStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "teams\t%d\n", s.Teams)
	fmt.Fprintf(tw, "players\t%d\n", s.Players)
	fmt.Fprintf(tw, "roles\t%d\n", s.Roles)
	fmt.Fprintf(tw, "achievements\t%d\n", s.Achievements)
	fmt.Fprintf(tw, "career players\t%d\n", s.CareerPlayers)
	fmt.Fprintf(tw, "careers\t%d\n", s.Careers)
	fmt.Fprintf(tw, "career matches\t%d\n", s.CareerMatches)
	fmt.Fprintf(tw, "series\t%d\n", s.Series)
	tw.Flush()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
