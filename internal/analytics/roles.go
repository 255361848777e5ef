package analytics

import (
	"fmt"
)

// RoleCategory groups roles by their character type.
type RoleCategory string

const (
	Townsfolk RoleCategory = "Townsfolk"
	Outsider  RoleCategory = "Outsider"
	Minion    RoleCategory = "Minion"
	Demon     RoleCategory = "Demon"
	Traveller RoleCategory = "Traveller"
)

// UnknownRoleError surfaces a role token that has no category mapping.
// It is never absorbed silently: mis-bucketing a role would corrupt
// category statistics invisibly, so aggregation aborts instead.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q: no category mapping", e.Role)
}

// Keys are in the standardized form produced by roster.StandardizeRole.
var roleCategories = map[string]RoleCategory{
	// Trouble Brewing
	"Washerwoman":    Townsfolk,
	"Librarian":      Townsfolk,
	"Investigator":   Townsfolk,
	"Chef":           Townsfolk,
	"Empath":         Townsfolk,
	"Fortune_Teller": Townsfolk,
	"Undertaker":     Townsfolk,
	"Monk":           Townsfolk,
	"Ravenkeeper":    Townsfolk,
	"Virgin":         Townsfolk,
	"Slayer":         Townsfolk,
	"Soldier":        Townsfolk,
	"Mayor":          Townsfolk,
	"Butler":         Outsider,
	"Drunk":          Outsider,
	"Recluse":        Outsider,
	"Saint":          Outsider,
	"Poisoner":       Minion,
	"Spy":            Minion,
	"Scarlet_Woman":  Minion,
	"Baron":          Minion,
	"Imp":            Demon,

	// Bad Moon Rising
	"Grandmother":     Townsfolk,
	"Sailor":          Townsfolk,
	"Chambermaid":     Townsfolk,
	"Exorcist":        Townsfolk,
	"Innkeeper":       Townsfolk,
	"Gambler":         Townsfolk,
	"Gossip":          Townsfolk,
	"Courtier":        Townsfolk,
	"Professor":       Townsfolk,
	"Minstrel":        Townsfolk,
	"Tea_Lady":        Townsfolk,
	"Pacifist":        Townsfolk,
	"Fool":            Townsfolk,
	"Goon":            Outsider,
	"Lunatic":         Outsider,
	"Tinker":          Outsider,
	"Moonchild":       Outsider,
	"Godfather":       Minion,
	"Devils_Advocate": Minion,
	"Assassin":        Minion,
	"Mastermind":      Minion,
	"Zombuul":         Demon,
	"Pukka":           Demon,
	"Shabaloth":       Demon,
	"Po":              Demon,

	// Sects & Violets
	"Clockmaker":    Townsfolk,
	"Dreamer":       Townsfolk,
	"Snake_Charmer": Townsfolk,
	"Mathematician": Townsfolk,
	"Flowergirl":    Townsfolk,
	"Town_Crier":    Townsfolk,
	"Oracle":        Townsfolk,
	"Savant":        Townsfolk,
	"Seamstress":    Townsfolk,
	"Philosopher":   Townsfolk,
	"Artist":        Townsfolk,
	"Juggler":       Townsfolk,
	"Sage":          Townsfolk,
	"Mutant":        Outsider,
	"Sweetheart":    Outsider,
	"Barber":        Outsider,
	"Klutz":         Outsider,
	"Evil_Twin":     Minion,
	"Witch":         Minion,
	"Cerenovus":     Minion,
	"Pit-hag":       Minion,
	"Fang_Gu":       Demon,
	"Vigormortis":   Demon,
	"No_Dashii":     Demon,
	"Vortox":        Demon,

	// Regulars from custom scripts
	"Legion":       Demon,
	"Leviathan":    Demon,
	"Lil'_Monsta":  Demon,
	"Widow":        Minion,
	"Fearmonger":   Minion,
	"Psychopath":   Minion,
	"Marionette":   Minion,
	"Atheist":      Townsfolk,
	"Amnesiac":     Townsfolk,
	"Cannibal":     Townsfolk,
	"Huntsman":     Townsfolk,
	"Damsel":       Outsider,
	"Golem":        Outsider,
	"Politician":   Outsider,
	"Puzzlemaster": Outsider,
	"Scapegoat":    Traveller,
	"Beggar":       Traveller,
	"Gunslinger":   Traveller,
	"Thief":        Traveller,
	"Bureaucrat":   Traveller,
}

// RoleCategoryOf maps a standardized role token to its category, or
// fails naming the token when no mapping exists.
func RoleCategoryOf(role string) (RoleCategory, error) {
	cat, ok := roleCategories[role]
	if !ok {
		return "", &UnknownRoleError{Role: role}
	}
	return cat, nil
}
