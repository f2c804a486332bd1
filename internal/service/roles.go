package service

import (
	"cs2-simulator/internal/api"
	"cs2-simulator/internal/career"
	"cs2-simulator/internal/sim"
)

// knownRoles pins well-known professionals to the role they actually play.
var knownRoles = map[string]string{
	"apEX":       "IGL",
	"ZywOo":      "AWPer",
	"flameZ":     "Rifler",
	"mezii":      "Support",
	"ropz":       "Entry Fragger",
	"huNter-":    "Rifler",
	"SunPayus":   "Entry Fragger",
	"malbsMd":    "Support",
	"HeavyGod":   "AWPer",
	"MATYS":      "IGL",
	"karrigan":   "IGL",
	"rain":       "AWPer",
	"Twistzz":    "Rifler",
	"broky":      "Support",
	"s1mple":     "AWPer",
	"electronic": "Rifler",
	"b1t":        "Entry Fragger",
	"Perfecto":   "IGL",
	"jL":         "Support",
	"HooXi":      "Support",
	"device":     "AWPer",
	"Magisk":     "Rifler",
	"TeSeS":      "Entry Fragger",
	"Staehr":     "IGL",
	"m0NESY":     "AWPer",
	"kyxsan":     "Rifler",
	"NiKo":       "IGL",
	"Jimpphat":   "Entry Fragger",
	"kyousuke":   "Support",
}

// roleSlots is how many players of each role a balanced team fields.
var roleSlots = []struct {
	role  string
	slots int
}{
	{"IGL", 1},
	{"AWPer", 1},
	{"Entry Fragger", 2},
	{"Support", 1},
	{career.DefaultRole, 3},
}

// AssignRoles gives every player of one team a role. Known players keep
// their real role; the rest are drawn weighted by how many open slots each
// role still has, and fall back to the default role once all slots are
// taken.
func AssignRoles(players []api.FeedPlayer, src sim.Source) []string {
	roles := make([]string, len(players))
	filled := map[string]int{}

	for i, p := range players {
		if role, ok := knownRoles[p.Name]; ok {
			roles[i] = role
			filled[role]++
		}
	}

	for i := range players {
		if roles[i] != "" {
			continue
		}
		var open []string
		var need []float64
		for _, s := range roleSlots {
			if left := s.slots - filled[s.role]; left > 0 {
				open = append(open, s.role)
				need = append(need, float64(left))
			}
		}
		if len(open) == 0 {
			roles[i] = career.DefaultRole
			continue
		}
		role := open[sim.NewWeightedChooser(need).Pick(src)]
		roles[i] = role
		filled[role]++
	}
	return roles
}
