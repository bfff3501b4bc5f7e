package tutor

import "github.com/abhisek/lingua/internal/llm"

// QuizSchema defines the JSON schema for vocabulary quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "vocab-quiz",
	Description: "A short language quiz with one expected answer per question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The target-language word or phrase being tested",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The expected answer; alternatives separated by /",
						},
					},
					"required":             []any{"term", "question", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// GrammarSchema defines the JSON schema for sentence correction.
var GrammarSchema = &llm.Schema{
	Name:        "grammar-correction",
	Description: "A corrected sentence with a short explanation of each error",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "True when the sentence needs no changes",
			},
			"corrected": map[string]any{
				"type":        "string",
				"description": "The corrected sentence, or the original if it was correct",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "1-3 sentences explaining the errors in English",
			},
		},
		"required":             []any{"is_correct", "corrected", "explanation"},
		"additionalProperties": false,
	},
}

// ReplySchema defines the JSON schema for one conversation turn.
var ReplySchema = &llm.Schema{
	Name:        "conversation-reply",
	Description: "The conversation partner's next line",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "The reply, written in the target language",
			},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}
