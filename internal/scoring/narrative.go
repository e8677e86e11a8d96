package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/spiral/internal/ontology"
)

type template struct {
	insight  string
	practice string
}

var templates = map[ontology.ID]template{
	ontology.Beige: {
		insight:  "Your words center on security and on meeting essential needs first.",
		practice: "Notice when a sense of scarcity shapes a choice, and name one need that is already met.",
	},
	ontology.Purple: {
		insight:  "Belonging and shared ritual run through your reflection.",
		practice: "Honor a tradition that grounds you, then ask which parts of it still serve you today.",
	},
	ontology.Red: {
		insight:  "Your language carries drive and a will to act now.",
		practice: "Before acting on an impulse, pause and consider who else is affected.",
	},
	ontology.Blue: {
		insight:  "You lean on clear principles and a sense of right conduct to navigate life.",
		practice: "Recall a situation where two of your rules conflicted and notice how you resolved it.",
	},
	ontology.Orange: {
		insight:  "You frame experience in terms of goals and measurable progress.",
		practice: "Set aside time for an activity that has no measurable outcome.",
	},
	ontology.Green: {
		insight:  "Connection and fairness toward others are central for you.",
		practice: "Practice making a clear decision in a situation where consensus is not possible.",
	},
	ontology.Yellow: {
		insight:  "You look for underlying patterns and move easily between perspectives.",
		practice: "Explain one of your systemic insights in plain language to someone who sees things differently.",
	},
	ontology.Turquoise: {
		insight:  "You sense the interconnection of people, nature, and meaning.",
		practice: "Ground one large-scale insight in a concrete daily action.",
	},
}

var resources = []Resource{
	{Title: "Spiral Dynamics: Mastering Values, Leadership and Change", Type: "book"},
	{Title: "Daily reflection on personal values", Type: "practice"},
	{Title: "Mindfulness meditation", Type: "practice"},
}

// Resources returns the generic follow-up resources attached to every result.
func Resources() []Resource {
	return slices.Clone(resources)
}

func (s *Scorer) narrate(c ontology.Category) (string, Feedback) {
	summary := fmt.Sprintf("Your text indicates a %s worldview. %s", c.Name(), c.Description)

	lead, _, _ := strings.Cut(c.Description, ".")
	insights := []string{
		fmt.Sprintf("You appear to have a %s perspective on life.", c.Label),
		fmt.Sprintf("Your communication style reflects %s.", strings.ToLower(lead)),
	}

	recommendations := []string{nextStage(s.ontology, c)}
	recommendations = append(recommendations,
		fmt.Sprintf("Practice awareness of how your %s worldview influences your decisions.", c.ID),
	)

	if t, ok := templates[c.ID]; ok {
		insights = append(insights, t.insight)
		recommendations = append(recommendations, t.practice)
	}

	return summary, Feedback{
		Insights:        insights,
		Recommendations: recommendations,
		Resources:       Resources(),
	}
}

func nextStage(o *ontology.Ontology, c ontology.Category) string {
	next, ok := o.Next(c.ID)
	if !ok {
		return "Consider integrating the strengths of every earlier stage into your holistic view."
	}
	return fmt.Sprintf("Consider exploring perspectives from the next stage in spiral dynamics: %s.", next.Name())
}
