package tutor

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are a language teacher writing short quizzes for adult self-learners.`

const grammarSystemPrompt = `You are a grammar expert. Correct the learner's sentence and explain the errors briefly in English.`

func conversationSystemPrompt(language string) string {
	return fmt.Sprintf("You are a friendly conversational partner in %s. "+
		"Reply only in %s, keep replies to one or two sentences, and ask a follow-up question.",
		language, language)
}

// maxPromptWords caps how much vocabulary goes into a quiz prompt.
const maxPromptWords = 40

func buildQuizUserMessage(in QuizInput, n int) string {
	var b strings.Builder

	b.WriteString(in.Profile.QuizPrompt())
	fmt.Fprintf(&b, " Generate %d questions.\n", n)

	if len(in.Words) > 0 {
		b.WriteString("\nVocabulary the learner has studied:\n")
		for i, w := range in.Words {
			if i == maxPromptWords {
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", w.Term, w.Translation)
		}
	}

	if len(in.Weak) > 0 {
		b.WriteString("\nWords the learner keeps missing; include them first:\n")
		for _, t := range in.Weak {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString(`
Instructions:
1. Each question tests exactly one word or phrase; put it in "term".
2. Each question must have a single short expected answer. List accepted alternatives separated by /.
3. Do not reveal the answer in the question text.`)

	return b.String()
}

func buildGrammarUserMessage(sentence, language string) string {
	return fmt.Sprintf("Correct this %s sentence and explain errors: %s", language, sentence)
}
