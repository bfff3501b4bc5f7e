package proficiency

import "fmt"

// QuizPrompt describes the quiz content to generate for a learner of the
// given tier studying language.
func QuizPrompt(tier Tier, language string) string {
	switch tier {
	case Beginner:
		return fmt.Sprintf("Create a simple %s vocabulary quiz for a %s learner. "+
			"Use common everyday words and short phrases, and ask for the English meaning of each word.",
			language, tier)
	case Advanced:
		return fmt.Sprintf("Create a challenging %s quiz for an %s learner. "+
			"Include idioms, nuanced vocabulary and complex grammar such as the subjunctive, "+
			"and expect answers written in %s.",
			language, tier, language)
	default:
		return fmt.Sprintf("Create a %s quiz for an %s learner. "+
			"Mix vocabulary in context with basic grammar questions about verb conjugation and agreement.",
			language, Intermediate)
	}
}
