package config

import (
	"errors"
	"fmt"
)

// Validation sentinel errors. Callers can match them with errors.Is().
var (
	ErrInvalidPort      = errors.New("postgres port must be between 1 and 65535")
	ErrInvalidThreshold = errors.New("detection threshold must be in (0, 1]")
	ErrInvalidMinLines  = errors.New("detection min lines must be positive")
	ErrInvalidCapacity  = errors.New("session capacity must be at least 2")
	ErrInvalidRetention = errors.New("retain versions must be positive")
	ErrInvalidLogLevel  = errors.New("log level must be one of debug, info, warn, error")
)

// Validate checks the configuration for values that would misbehave at
// runtime. It returns the first violation found.
func (c *Config) Validate() error {
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.PostgresPort)
	}
	if c.DetectionThreshold <= 0 || c.DetectionThreshold > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, c.DetectionThreshold)
	}
	if c.DetectionMinLines < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinLines, c.DetectionMinLines)
	}
	// A capacity of 1 would make eviction impossible whenever the sole
	// resident artifact is active, so it is rejected here instead of
	// surfacing later as an eviction failure.
	if c.SessionCapacity < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.SessionCapacity)
	}
	if c.RetainVersions < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRetention, c.RetainVersions)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
