package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"cs2-simulator/internal/career"
	"cs2-simulator/internal/sim"
)

func TestPrintSeries(t *testing.T) {
	r := &sim.SeriesResult{
		TeamA:     "Vitality",
		TeamB:     "G2",
		Format:    sim.BO3,
		Winner:    "Vitality",
		Loser:     "G2",
		TeamAMaps: 2,
		TeamBMaps: 1,
		Maps: []sim.MapResult{
			{Winner: "Vitality", Loser: "G2", WinnerScore: 13, LoserScore: 9},
			{Winner: "G2", Loser: "Vitality", WinnerScore: 19, LoserScore: 17, OvertimeLevel: 2},
			{Winner: "Vitality", Loser: "G2", WinnerScore: 16, LoserScore: 14, OvertimeLevel: 1},
		},
		PlayerStats: map[string][]sim.PlayerStatLine{
			"Vitality": {{Name: "ZywOo", Kills: 70, Assists: 12, Deaths: 50, Rating: 1.34}},
			"G2":       {{Name: "m0NESY", Kills: 61, Assists: 8, Deaths: 58, Rating: 1.05}},
		},
	}

	var buf bytes.Buffer
	printSeries(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Vitality wins the BO3 series 2 - 1")
	assert.Contains(t, out, "Map 1: Vitality 13 - 9 G2\n")
	assert.Contains(t, out, "Map 2: G2 19 - 17 Vitality\n(After 2 overtimes)\n")
	assert.Contains(t, out, "(After 1 overtime)\n")
	assert.Contains(t, out, "\nVitality Player Stats:\n  ZywOo: 70K / 12A / 50D - Rating: 1.34\n")
	assert.Contains(t, out, "\nG2 Player Stats:\n  m0NESY: 61K / 8A / 58D - Rating: 1.05\n")
	assert.NotContains(t, out, "Map 1: Vitality 13 - 9 G2\n(After")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, career.DefaultRoles()[:1])
	assert.Equal(t, "🎯 AWPer: Primary AWP specialist, long-range sniper\n", buf.String())
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 level", plural(1, "level"))
	assert.Equal(t, "3 levels", plural(3, "level"))
}
