package career

const (
	AchievementRisingStar   = "Rising Star"
	AchievementVeteran      = "Veteran"
	AchievementWinner       = "Winner"
	AchievementKiller       = "Killer"
	AchievementSharpshooter = "Sharpshooter"
	AchievementUnstoppable  = "Unstoppable"
)

const UnstoppableStreak = 10

type playerRule struct {
	name string
	met  func(p *Player) bool
}

// evaluated in order after every match
var playerRules = []playerRule{
	{AchievementRisingStar, func(p *Player) bool { return p.Level >= 5 }},
	{AchievementVeteran, func(p *Player) bool { return p.MatchesPlayed >= 10 }},
	{AchievementWinner, func(p *Player) bool { return p.Wins >= 5 }},
	{AchievementKiller, func(p *Player) bool { return p.TotalKills >= 50 }},
	{AchievementSharpshooter, func(p *Player) bool { return p.KDR() >= 1.5 }},
}

func (p *Player) checkAchievements() []string {
	var unlocked []string
	for _, r := range playerRules {
		if r.met(p) && p.unlock(r.name) {
			unlocked = append(unlocked, r.name)
		}
	}
	return unlocked
}

// CatalogEntry describes an achievement or a role.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func DefaultAchievements() []CatalogEntry {
	return []CatalogEntry{
		{AchievementRisingStar, "Reach level 5", "⭐"},
		{AchievementVeteran, "Play 10 matches", "🎖️"},
		{AchievementWinner, "Win 5 matches", "🏆"},
		{AchievementKiller, "Get 50 kills", "🔪"},
		{AchievementSharpshooter, "Maintain 1.5+ K/D ratio", "🎯"},
		{AchievementUnstoppable, "Win 10 matches in a row", "🔥"},
	}
}

func DefaultRoles() []CatalogEntry {
	return []CatalogEntry{
		{"AWPer", "Primary AWP specialist, long-range sniper", "🎯"},
		{"Rifler", "Primary rifle user, consistent fragger", "🔫"},
		{"IGL", "In-game leader, tactical decision maker", "👑"},
		{"Support", "Secondary AWPer, lurker, or support role", "🛡️"},
		{"Entry Fragger", "First to enter sites, high-risk high-reward", "💥"},
		{"Lurker", "Map control and flanking specialist", "👤"},
	}
}
