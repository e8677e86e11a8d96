package ontology

func defaultCategories() []Category {
	return []Category{
		{
			ID:          Beige,
			Label:       "Beige",
			Theme:       "Survival",
			Hex:         "#E8D0AA",
			Description: "Focused on immediate survival needs and basic physiological requirements. Instinctive and automatic.",
			Lexicon: []string{
				"survival", "food", "water", "shelter", "safety", "basic", "needs",
				"hunger", "warmth", "sleep", "instinct",
			},
		},
		{
			ID:          Purple,
			Label:       "Purple",
			Theme:       "Tribal",
			Hex:         "#9B59B6",
			Description: "Magical thinking, tribal bonds, superstition, and traditions. Strong sense of belonging and mystical beliefs.",
			Lexicon: []string{
				"tradition", "ritual", "ancestors", "tribe", "family", "spirits", "magic",
				"belonging", "elders", "superstition", "customs",
			},
		},
		{
			ID:          Red,
			Label:       "Red",
			Theme:       "Power",
			Hex:         "#E74C3C",
			Description: "Impulsive, egocentric, heroic. Focused on power, dominance, and immediate gratification.",
			Lexicon: []string{
				"power", "control", "strength", "dominance", "respect", "fear", "impulsive",
				"conquer", "fight", "heroic", "glory",
			},
		},
		{
			ID:          Blue,
			Label:       "Blue",
			Theme:       "Order",
			Hex:         "#3498DB",
			Description: "Purpose, order, and meaning. Follows rules, traditions, and moral codes. Seeks righteous living.",
			Lexicon: []string{
				"order", "rules", "discipline", "truth", "right", "wrong", "duty", "loyalty",
				"structure", "procedures", "tradition", "morality", "obedience",
			},
		},
		{
			ID:          Orange,
			Label:       "Orange",
			Theme:       "Achievement",
			Hex:         "#F39C12",
			Description: "Strategic, achievement-oriented, and competitive. Focused on success, progress, and material gain.",
			Lexicon: []string{
				"success", "achievement", "competition", "progress", "goals", "innovation", "status",
				"strategy", "wealth", "results", "ambition",
			},
		},
		{
			ID:          Green,
			Label:       "Green",
			Theme:       "Community",
			Hex:         "#2ECC71",
			Description: "Communitarian, egalitarian, and consensus-seeking. Values harmony, equality, and community well-being.",
			Lexicon: []string{
				"community", "harmony", "equality", "consensus", "feelings", "sharing", "caring",
				"empathy", "inclusion", "cooperation", "diversity",
			},
		},
		{
			ID:          Yellow,
			Label:       "Yellow",
			Theme:       "Systemic",
			Hex:         "#F1C40F",
			Description: "Integrative, flexible, and systemic thinking. Sees complexity and multiple perspectives.",
			Lexicon: []string{
				"systems", "integration", "complexity", "adaptability", "knowledge", "natural", "flexible",
				"perspectives", "paradox", "patterns", "emergence",
			},
		},
		{
			ID:          Turquoise,
			Label:       "Turquoise",
			Theme:       "Holistic",
			Hex:         "#1ABC9C",
			Description: "Holistic, global view. Concerned with the well-being of all living entities and planetary consciousness.",
			Lexicon: []string{
				"holistic", "global", "consciousness", "spiritual", "energy", "interconnected", "wisdom",
				"unity", "oneness", "planetary", "transcendence",
			},
		},
	}
}
