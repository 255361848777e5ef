package analytics

import (
	"sort"

	"github.com/RossFW/botc/internal/domain"
)

// ScriptStats is the per-script breakdown of games and which side won.
type ScriptStats struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Games    int    `json:"games"`
	GoodWins int    `json:"good_wins"`
	EvilWins int    `json:"evil_wins"`
}

// RoleStats counts games and wins for one role. A role appearing on
// several players in the same game counts that game once; the game is
// a win for the role if any holder's team won.
type RoleStats struct {
	Role  string `json:"role"`
	Games int    `json:"games"`
	Wins  int    `json:"wins"`
}

// CategoryStats aggregates role buckets by character type.
type CategoryStats struct {
	Category RoleCategory `json:"category"`
	Games    int          `json:"games"`
	Wins     int          `json:"wins"`
}

// ScriptBreakdown tallies every script in the log plus totals for the
// Normal and Teensyville categories. Results are sorted by name.
func ScriptBreakdown(games []domain.MatchRecord) (scripts []ScriptStats, totals map[string]ScriptStats) {
	byName := make(map[string]*ScriptStats)
	for _, g := range games {
		entry, ok := byName[g.Script]
		if !ok {
			entry = &ScriptStats{Name: g.Script, Category: CategorizeScript(g.Script)}
			byName[g.Script] = entry
		}
		entry.Games++
		if g.WinningTeam == domain.Good {
			entry.GoodWins++
		} else {
			entry.EvilWins++
		}
	}

	totals = map[string]ScriptStats{
		CategoryNormal:      {Name: CategoryNormal, Category: CategoryNormal},
		CategoryTeensyville: {Name: CategoryTeensyville, Category: CategoryTeensyville},
	}
	for _, entry := range byName {
		scripts = append(scripts, *entry)
		tot := totals[entry.Category]
		tot.Games += entry.Games
		tot.GoodWins += entry.GoodWins
		tot.EvilWins += entry.EvilWins
		totals[entry.Category] = tot
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts, totals
}

// RoleBreakdown tallies final roles across the given games, counting
// each role at most once per game. Empty role tokens are skipped.
func RoleBreakdown(games []domain.MatchRecord) []RoleStats {
	byRole := make(map[string]*RoleStats)
	for _, g := range games {
		for role, won := range rolesInGame(g) {
			entry, ok := byRole[role]
			if !ok {
				entry = &RoleStats{Role: role}
				byRole[role] = entry
			}
			entry.Games++
			if won {
				entry.Wins++
			}
		}
	}

	stats := make([]RoleStats, 0, len(byRole))
	for _, entry := range byRole {
		stats = append(stats, *entry)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Role < stats[j].Role })
	return stats
}

// CategoryBreakdown rolls role buckets up into character types. Each
// (game, role) pair contributes once to its category. A role with no
// category mapping aborts the whole aggregation; no partial result is
// returned.
func CategoryBreakdown(games []domain.MatchRecord) ([]CategoryStats, error) {
	byCat := make(map[RoleCategory]*CategoryStats)
	for _, g := range games {
		for role, won := range rolesInGame(g) {
			cat, err := RoleCategoryOf(role)
			if err != nil {
				return nil, err
			}
			entry, ok := byCat[cat]
			if !ok {
				entry = &CategoryStats{Category: cat}
				byCat[cat] = entry
			}
			entry.Games++
			if won {
				entry.Wins++
			}
		}
	}

	stats := make([]CategoryStats, 0, len(byCat))
	for _, entry := range byCat {
		stats = append(stats, *entry)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

// rolesInGame maps each distinct final role in a game to whether any
// of its holders ended on the winning team.
func rolesInGame(g domain.MatchRecord) map[string]bool {
	roles := make(map[string]bool)
	for _, p := range g.Players {
		if p.Role == "" {
			continue
		}
		if p.Team == g.WinningTeam {
			roles[p.Role] = true
		} else if _, seen := roles[p.Role]; !seen {
			roles[p.Role] = false
		}
	}
	return roles
}

// FilterByStoryteller keeps only the games run by one facilitator.
func FilterByStoryteller(games []domain.MatchRecord, storyteller string) []domain.MatchRecord {
	var filtered []domain.MatchRecord
	for _, g := range games {
		if g.Storyteller == storyteller {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// Storytellers lists every distinct non-empty facilitator, sorted.
func Storytellers(games []domain.MatchRecord) []string {
	seen := make(map[string]struct{})
	for _, g := range games {
		if g.Storyteller != "" {
			seen[g.Storyteller] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PairStats describes how two players fared in games they shared.
// OpposedFirstWins counts, among opposed games, those won by the first
// player's team.
type PairStats struct {
	First            string `json:"first"`
	Second           string `json:"second"`
	TogetherGames    int    `json:"together_games"`
	SameTeamGames    int    `json:"same_team_games"`
	SameTeamWins     int    `json:"same_team_wins"`
	OpposedGames     int    `json:"opposed_games"`
	OpposedFirstWins int    `json:"opposed_first_wins"`
}

// Versus analyzes every game where both named players appeared.
func Versus(games []domain.MatchRecord, first, second string) PairStats {
	stats := PairStats{First: first, Second: second}
	for _, g := range games {
		firstTeam, okA := teamOf(g, first)
		secondTeam, okB := teamOf(g, second)
		if !okA || !okB {
			continue
		}
		stats.TogetherGames++
		if firstTeam == secondTeam {
			stats.SameTeamGames++
			if firstTeam == g.WinningTeam {
				stats.SameTeamWins++
			}
		} else {
			stats.OpposedGames++
			if firstTeam == g.WinningTeam {
				stats.OpposedFirstWins++
			}
		}
	}
	return stats
}

func teamOf(g domain.MatchRecord, name string) (domain.Alignment, bool) {
	for _, p := range g.Players {
		if p.Name == name {
			return p.Team, true
		}
	}
	return "", false
}

// PlayerBreakdown buckets one player's games and wins by script and by
// every role they held. Unlike the role view above, held roles are not
// de-duplicated against other players: this is the player's personal
// record.
type PlayerBreakdown struct {
	Name    string            `json:"name"`
	Scripts map[string]Bucket `json:"scripts"`
	Roles   map[string]Bucket `json:"roles"`
}

// Bucket is a plain games/wins counter.
type Bucket struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

func BreakdownFor(games []domain.MatchRecord, name string) PlayerBreakdown {
	bd := PlayerBreakdown{
		Name:    name,
		Scripts: make(map[string]Bucket),
		Roles:   make(map[string]Bucket),
	}
	for _, g := range games {
		var entry *domain.PlayerEntry
		for i := range g.Players {
			if g.Players[i].Name == name {
				entry = &g.Players[i]
				break
			}
		}
		if entry == nil {
			continue
		}
		won := entry.Team == g.WinningTeam

		script := bd.Scripts[g.Script]
		script.Games++
		if won {
			script.Wins++
		}
		bd.Scripts[g.Script] = script

		roles := entry.Roles
		if len(roles) == 0 {
			roles = []string{entry.Role}
		}
		for _, role := range roles {
			if role == "" {
				continue
			}
			r := bd.Roles[role]
			r.Games++
			if won {
				r.Wins++
			}
			bd.Roles[role] = r
		}
	}
	return bd
}
