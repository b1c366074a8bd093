package coach

import "time"

// Config holds review note settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxMisses caps how many wrong answers are sent in one prompt.
	MaxMisses int

	// Timeout bounds one review request. Zero means no limit.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
		MaxMisses:   20,
		Timeout:     30 * time.Second,
	}
}
