// Package roster turns free-text team rosters into canonical player
// entries and assembles two rosters plus outcome selections into one
// game record.
package roster

import (
	"strings"

	"github.com/RossFW/botc/internal/domain"
)

// ParseRoster parses a multi-line team input, one player per line:
//
//	Name Role[+Role...] [InitialAlignment[->Ignored]]
//
// Blank lines are skipped. A missing role becomes the empty string.
// An alignment hint with a "->" arrow keeps only the left-hand side;
// the true final alignment is always stamped later from the team
// selection, so the right-hand side carries no information.
func ParseRoster(text string) []domain.PlayerEntry {
	var entries []domain.PlayerEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)

		entry := domain.PlayerEntry{Name: parts[0]}

		roleStr := ""
		if len(parts) >= 2 {
			roleStr = parts[1]
		}
		rawRoles := []string{""}
		if roleStr != "" {
			rawRoles = strings.Split(roleStr, "+")
		}
		entry.Roles = make([]string, 0, len(rawRoles))
		for _, raw := range rawRoles {
			entry.Roles = append(entry.Roles, StandardizeRole(raw))
		}
		entry.Role = entry.Roles[len(entry.Roles)-1]

		if len(parts) >= 3 {
			entry.InitialTeam = parseAlignmentHint(parts[2])
		}

		entries = append(entries, entry)
	}
	return entries
}

// StandardizeRole normalizes a raw role token so that "fortune_teller",
// "Fortune_teller" and "FORTUNE_TELLER" all compare equal: each
// underscore-separated segment gets its first character upper-cased and
// the rest lower-cased. Punctuation inside a segment is preserved.
func StandardizeRole(raw string) string {
	if raw == "" {
		return ""
	}
	segments := strings.Split(raw, "_")
	for i, seg := range segments {
		segments[i] = capitalize(seg)
	}
	return strings.Join(segments, "_")
}

// parseAlignmentHint reads an optional third token. Only the starting
// alignment is kept: for "Good->Evil" the right-hand side is discarded
// because the final alignment comes from the team-is-Evil selection.
// Hints that name neither team are treated as absent.
func parseAlignmentHint(hint string) domain.Alignment {
	if idx := strings.Index(hint, "->"); idx >= 0 {
		hint = hint[:idx]
	}
	a := domain.Alignment(capitalize(hint))
	if !a.Valid() {
		return ""
	}
	return a
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
