package main

import (
	"fmt"
	"time"
)

const (
	defaultWidth     = 50
	defaultFrameRate = 60
)

type playbackConfig struct {
	path      string
	width     int
	frameRate int
	debug     bool
}

// ConfigurationError reports a setting that cannot drive playback.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be a positive integer", e.Field, e.Value)
}

func (cfg playbackConfig) validate() error {
	if cfg.width <= 0 {
		return &ConfigurationError{Field: "width", Value: cfg.width}
	}
	if cfg.frameRate <= 0 {
		return &ConfigurationError{Field: "frame_rate", Value: cfg.frameRate}
	}
	return nil
}

// frameInterval is the fixed pause between frames. Render and write time is
// not subtracted, so playback runs slightly slower than the nominal rate.
func (cfg playbackConfig) frameInterval() time.Duration {
	return time.Duration(float64(time.Second) / float64(cfg.frameRate))
}
