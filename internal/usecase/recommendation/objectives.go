package recommendation

// complementaryObjectives maps a stated goal to the goals of other attendees
// that make a meeting worthwhile for it. The table is one-directional: a
// subject objective is looked up here and matched against the candidate's
// objectives.
var complementaryObjectives = map[string][]string{
	"Trouver de nouveaux partenaires": {
		"Développer mon réseau",
		"Présenter mes innovations",
	},
	"Développer mon réseau": {
		"Trouver de nouveaux partenaires",
		"Rencontrer des experts",
	},
	"Présenter mes innovations": {
		"Découvrir des innovations",
		"Trouver des investisseurs",
	},
	"Découvrir des innovations": {
		"Présenter mes innovations",
		"Présenter mes produits",
	},
	"Trouver des clients": {
		"Trouver des fournisseurs",
		"Découvrir des innovations",
	},
	"Trouver des fournisseurs": {
		"Trouver des clients",
		"Présenter mes produits",
	},
	"Présenter mes produits": {
		"Trouver des fournisseurs",
		"Découvrir des innovations",
	},
	"Trouver des investisseurs": {
		"Investir dans des projets",
		"Présenter mes innovations",
	},
	"Investir dans des projets": {
		"Trouver des investisseurs",
		"Présenter mes innovations",
	},
	"Rencontrer des experts": {
		"Partager mon expertise",
		"Développer mon réseau",
	},
	"Partager mon expertise": {
		"Rencontrer des experts",
		"Recruter des talents",
	},
	"Recruter des talents": {
		"Partager mon expertise",
		"Développer mon réseau",
	},
}

var foldedObjectives = foldObjectiveTable(complementaryObjectives)

func foldObjectiveTable(table map[string][]string) map[string][]string {
	folded := make(map[string][]string, len(table))
	for objective, complements := range table {
		key := normalize(objective)
		folded[key] = append(folded[key], complements...)
	}
	return folded
}

// complementsOf returns the complementary objectives of objective, or nil
// when the objective is not in the table.
func complementsOf(objective string) []string {
	return foldedObjectives[normalize(objective)]
}
