package llm

import "strings"

// ModelCost is a model's price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost is the USD price of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns the price of a model, or nil if it is not listed.
// Friendly names and OpenRouter's "vendor/model" IDs are understood.
func LookupCost(model string) *ModelCost {
	for _, id := range candidates(model) {
		if c, ok := prices[id]; ok {
			return &c
		}
	}
	return nil
}

func candidates(model string) []string {
	ids := []string{model}
	if _, bare, ok := strings.Cut(model, "/"); ok {
		ids = append(ids, bare)
	}
	for _, v := range vendors {
		if id, ok := v.aliases[model]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// prices as published by each vendor, checked 2026-09-30.
var prices = map[string]ModelCost{
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-haiku-4-5":           {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-opus-4-5-20251101":   {5, 25},
	"claude-opus-4-5":            {5, 25},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5-mini":   {0.25, 2},

	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-2.0-flash":      {0.1, 0.4},
}
