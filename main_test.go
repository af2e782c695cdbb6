package main

import (
	"io"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestReorderArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{
			[]string{"termascii", "movie.mp4", "-w", "80", "-fps", "24"},
			[]string{"termascii", "-w", "80", "-fps", "24", "--", "movie.mp4"},
		},
		{
			[]string{"termascii", "--width=30", "clip.gif", "--debug"},
			[]string{"termascii", "--width=30", "--debug", "--", "clip.gif"},
		},
		{
			[]string{"termascii", "--frame_rate", "-5", "a.png"},
			[]string{"termascii", "--frame_rate", "-5", "--", "a.png"},
		},
		{
			[]string{"termascii", "--", "-odd-name.mp4"},
			[]string{"termascii", "--", "-odd-name.mp4"},
		},
		{
			[]string{"termascii"},
			[]string{"termascii"},
		},
	}
	for _, tt := range tests {
		if got := reorderArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("reorderArgs(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func runApp(t *testing.T, args ...string) (playbackConfig, bool, error) {
	t.Helper()
	var got playbackConfig
	called := false
	app := newApp(func(cfg playbackConfig) error {
		got = cfg
		called = true
		return nil
	}, io.Discard, io.Discard)
	err := app.Run(reorderArgs(append([]string{"termascii"}, args...)))
	return got, called, err
}

func TestAppDefaults(t *testing.T) {
	cfg, called, err := runApp(t, "movie.mp4")
	if err != nil || !called {
		t.Fatalf("run: called=%v err=%v", called, err)
	}
	if cfg.path != "movie.mp4" || cfg.width != 50 || cfg.frameRate != 60 || cfg.debug {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestAppFlags(t *testing.T) {
	for _, args := range [][]string{
		{"movie.mp4", "-w", "80", "-fps", "24"},
		{"--width", "80", "--frame_rate", "24", "movie.mp4"},
		{"movie.mp4", "--width=80", "-frame_rate=24"},
	} {
		cfg, called, err := runApp(t, args...)
		if err != nil || !called {
			t.Fatalf("%v: called=%v err=%v", args, called, err)
		}
		if cfg.width != 80 || cfg.frameRate != 24 {
			t.Fatalf("%v: unexpected config %+v", args, cfg)
		}
	}
}

func TestAppRejectsBadConfiguration(t *testing.T) {
	for _, args := range [][]string{
		{"movie.mp4", "-fps", "0"},
		{"movie.mp4", "-fps", "-3"},
		{"movie.mp4", "-w", "0"},
	} {
		_, called, err := runApp(t, args...)
		if called {
			t.Fatalf("%v: playback started", args)
		}
		var configErr *ConfigurationError
		if !errors.As(err, &configErr) {
			t.Fatalf("%v: expected ConfigurationError, got %v", args, err)
		}
		if exitCode(err) != exitConfigError {
			t.Fatalf("%v: exit code %d", args, exitCode(err))
		}
	}
}

func TestAppRejectsMalformedFlags(t *testing.T) {
	for _, args := range [][]string{
		{"movie.mp4", "-w", "abc"},
		{"movie.mp4", "-w"},
		{"movie.mp4", "-fps", "1.5"},
		{"movie.mp4", "-x"},
		{"--unknown", "movie.mp4"},
	} {
		_, called, err := runApp(t, args...)
		if called {
			t.Fatalf("%v: playback started", args)
		}
		var usageErr *usageError
		if !errors.As(err, &usageErr) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
		if exitCode(err) != exitConfigError {
			t.Fatalf("%v: exit code %d, want %d", args, exitCode(err), exitConfigError)
		}
	}
}

func TestAppRequiresInput(t *testing.T) {
	_, called, err := runApp(t)
	if called {
		t.Fatalf("playback started without input")
	}
	if exitCode(err) != exitConfigError {
		t.Fatalf("exit code %d for %v", exitCode(err), err)
	}
}

func TestExitCode(t *testing.T) {
	if exitCode(nil) != 0 {
		t.Fatalf("nil error must exit 0")
	}
	openErr := errors.Wrap(&MediaOpenError{Path: "x", Err: errors.New("missing")}, "play")
	if exitCode(openErr) == 0 {
		t.Fatalf("media open error must exit non-zero")
	}
}

func TestMissingFileExitsNonZero(t *testing.T) {
	p := NewPlayer(playbackConfig{path: t.TempDir() + "/nope.mkv", width: 10, frameRate: 30}, io.Discard, nil)
	err := p.Play()
	var openErr *MediaOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected MediaOpenError, got %v", err)
	}
	if exitCode(err) == 0 || p.FramesRendered() != 0 {
		t.Fatalf("exit=%d frames=%d", exitCode(err), p.FramesRendered())
	}
}
