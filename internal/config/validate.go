package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.SaveCooldownMs < 0 {
		return fmt.Errorf("save_cooldown_ms must not be negative, got %d", c.SaveCooldownMs)
	}
	if c.FFprobeTimeoutSeconds < 1 {
		return fmt.Errorf("ffprobe_timeout_seconds must be positive, got %d", c.FFprobeTimeoutSeconds)
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	return nil
}
