package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minLeaderboardLimit = 1
	maxLeaderboardLimit = 50 // one Discord message holds only so many lines

	minVoiceSweep = 30 * time.Second // below this the sweep hammers the store
	maxVoiceSweep = 1 * time.Hour

	minShutdownTimeout = 1 * time.Second
	maxShutdownTimeout = 5 * time.Minute
)

// Validate checks the configuration values against their bounds and
// returns all violations at once via errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateLeaderboardLimit(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateVoiceSweep(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateShutdownTimeout(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateLeaderboardLimit() error {
	if c.LeaderboardLimit < minLeaderboardLimit {
		return fmt.Errorf(
			"LEADERBOARD_LIMIT must be at least %d, got %d",
			minLeaderboardLimit, c.LeaderboardLimit,
		)
	}

	if c.LeaderboardLimit > maxLeaderboardLimit {
		return fmt.Errorf(
			"LEADERBOARD_LIMIT must be at most %d, got %d",
			maxLeaderboardLimit, c.LeaderboardLimit,
		)
	}

	return nil
}

func (c *Config) validateVoiceSweep() error {
	if c.VoiceSweep < minVoiceSweep {
		return fmt.Errorf(
			"VOICE_SWEEP_INTERVAL must be at least %v, got %v (hint: recommended range is 1m-15m)",
			minVoiceSweep, c.VoiceSweep,
		)
	}

	if c.VoiceSweep > maxVoiceSweep {
		return fmt.Errorf(
			"VOICE_SWEEP_INTERVAL must be at most %v, got %v",
			maxVoiceSweep, c.VoiceSweep,
		)
	}

	return nil
}

func (c *Config) validateShutdownTimeout() error {
	if c.ShutdownTimeout < minShutdownTimeout {
		return fmt.Errorf(
			"SHUTDOWN_TIMEOUT must be at least %v, got %v",
			minShutdownTimeout, c.ShutdownTimeout,
		)
	}

	if c.ShutdownTimeout > maxShutdownTimeout {
		return fmt.Errorf(
			"SHUTDOWN_TIMEOUT must be at most %v, got %v",
			maxShutdownTimeout, c.ShutdownTimeout,
		)
	}

	return nil
}
