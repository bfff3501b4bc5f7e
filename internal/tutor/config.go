package tutor

import "time"

// Config holds tutor generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single tutor call including retries. Zero means
	// no limit beyond the caller's context.
	Timeout time.Duration

	// Questions is the quiz length used when the caller doesn't ask for
	// a specific number.
	Questions int
}

// DefaultConfig returns sensible defaults for tutor calls.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
		Questions:   5,
	}
}
