package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	if s.SuggestionListSize <= 0 {
		return fmt.Errorf("suggestion_list_size must be > 0 (got %d)", s.SuggestionListSize)
	}
	if s.DailyGoalWords < 0 {
		return fmt.Errorf("daily_goal_words must be >= 0 (got %d)", s.DailyGoalWords)
	}
	if s.DailyGoalMinutes < 0 {
		return fmt.Errorf("daily_goal_minutes must be >= 0 (got %d)", s.DailyGoalMinutes)
	}

	intervals, err := ParseIntervals(s.IntervalsRaw)
	if err != nil {
		return fmt.Errorf("intervals: %w", err)
	}
	s.Intervals = intervals

	return nil
}

// ParseIntervals parses a comma-separated ladder of day counts (e.g.
// "1,2,5,10,21,45,90"). The ladder must be non-empty and strictly increasing.
func ParseIntervals(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("must not be empty")
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid day count %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("day count must be positive (got %d)", d)
		}
		if len(days) > 0 && d <= days[len(days)-1] {
			return nil, fmt.Errorf("ladder must be strictly increasing (%d after %d)", d, days[len(days)-1])
		}
		days = append(days, d)
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("must not be empty")
	}
	return days, nil
}
