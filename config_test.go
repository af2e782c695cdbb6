package main

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		cfg   playbackConfig
		field string
	}{
		{playbackConfig{width: 50, frameRate: 60}, ""},
		{playbackConfig{width: 0, frameRate: 60}, "width"},
		{playbackConfig{width: -1, frameRate: 60}, "width"},
		{playbackConfig{width: 50, frameRate: 0}, "frame_rate"},
		{playbackConfig{width: 50, frameRate: -2}, "frame_rate"},
	}
	for _, tt := range tests {
		err := tt.cfg.validate()
		if tt.field == "" {
			if err != nil {
				t.Errorf("%+v: unexpected error %v", tt.cfg, err)
			}
			continue
		}
		configErr, ok := err.(*ConfigurationError)
		if !ok {
			t.Errorf("%+v: expected ConfigurationError, got %v", tt.cfg, err)
			continue
		}
		if configErr.Field != tt.field {
			t.Errorf("%+v: field %q, want %q", tt.cfg, configErr.Field, tt.field)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (playbackConfig{frameRate: 60}).frameInterval(); got != time.Second/60 {
		t.Fatalf("got %s", got)
	}
	if got := (playbackConfig{frameRate: 1}).frameInterval(); got != time.Second {
		t.Fatalf("got %s", got)
	}
}
