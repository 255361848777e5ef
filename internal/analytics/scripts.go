// Package analytics computes aggregate statistics with a second pass
// over the game log. Nothing here reads engine state: the alignment of
// interest differs per view, and role buckets must de-duplicate
// multiple holders of one role inside a single game.
package analytics

import (
	"strings"
)

// Scripts in the normal rotation. Everything else is a Teensyville
// (small-player) script.
var normalScripts = map[string]struct{}{
	"trouble brewing":                {},
	"bad moon rising":                {},
	"sects & violets":                {},
	"trouble in violets":             {},
	"trouble in legion":              {},
	"hide & seek":                    {},
	"trouble brewing on expert mode": {},
	"trained killer":                 {},
	"irrational behavior":            {},
	"binary supernovae":              {},
	"everybody can play":             {},
}

// CommonScripts is a convenience list for submission forms; custom
// script names are always accepted.
var CommonScripts = []string{
	"Trouble Brewing",
	"Bad Moon Rising",
	"Sects & Violets",
	"Trouble in Violets",
	"No Greater Joy",
	"Over the River",
	"Laissez un Faire",
	"Trouble in Legion",
	"Hide & Seek",
	"Trouble Brewing on Expert Mode",
	"Trained Killer",
	"Irrational Behavior",
	"Binary Supernovae",
	"A Leech of Distrust",
	"Everybody Can Play",
}

const (
	CategoryNormal      = "Normal"
	CategoryTeensyville = "Teensyville"
)

// NormalizeScriptName lower-cases and trims a script name so that
// categorization is insensitive to how the name was typed.
func NormalizeScriptName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func CategorizeScript(name string) string {
	if _, ok := normalScripts[NormalizeScriptName(name)]; ok {
		return CategoryNormal
	}
	return CategoryTeensyville
}
