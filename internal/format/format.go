package format

import (
	"fmt"
	"time"
)

// Amount renders a cedi amount as "GHS 12.50".
func Amount(amount float64) string {
	return fmt.Sprintf("GHS %.2f", amount)
}

// Date renders a server date string in the short en-GH form, e.g. "Jan 5, 2025".
// The input is passed through unchanged when it cannot be parsed.
func Date(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

// Greeting returns the salutation for the given hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
