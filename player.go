package main

import (
	"bufio"
	"image"
	"io"
	"time"

	"github.com/pkg/errors"
)

type playerState int

const (
	stateInit playerState = iota
	stateOpening
	stateRendering
	statePacing
	stateDone
	stateAborted
)

func (s playerState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateOpening:
		return "opening"
	case stateRendering:
		return "rendering"
	case statePacing:
		return "pacing"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	}
	return "unknown"
}

type Player struct {
	config         playbackConfig
	open           func(path string) (frameSource, error)
	sleep          func(time.Duration)
	quit           quitSignal
	out            *bufio.Writer
	state          playerState
	source         frameSource
	frame          image.Image
	framesRendered int
	started        time.Time
}

func NewPlayer(config playbackConfig, out io.Writer, quit quitSignal) *Player {
	if quit == nil {
		quit = noQuit{}
	}
	return &Player{
		config: config,
		open:   openMedia,
		sleep:  time.Sleep,
		quit:   quit,
		out:    bufio.NewWriter(out),
		state:  stateInit,
	}
}

func (player *Player) State() playerState {
	return player.state
}

func (player *Player) FramesRendered() int {
	return player.framesRendered
}

// Play runs the player until the media is exhausted, the user quits or an
// error occurs. The media is released on every path once it was opened.
func (player *Player) Play() (err error) {
	player.started = time.Now()
	defer func() {
		if player.source == nil {
			return
		}
		closeErr := player.source.Close()
		player.source = nil
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "release media")
		}
		debugf("event=playback_done state=%s frames=%d elapsed=%s",
			player.state, player.framesRendered, time.Since(player.started))
	}()
	for player.state != stateDone && player.state != stateAborted {
		if err = player.step(); err != nil {
			return err
		}
	}
	return nil
}

func (player *Player) step() error {
	switch player.state {
	case stateInit:
		player.state = stateOpening
	case stateOpening:
		source, err := player.open(player.config.path)
		if err != nil {
			player.state = stateAborted
			return err
		}
		player.source = source
		return player.advance()
	case stateRendering:
		if err := player.render(); err != nil {
			player.state = stateDone
			return err
		}
		player.state = statePacing
	case statePacing:
		player.sleep(player.config.frameInterval())
		if player.quit.quitRequested(quitPollWindow) {
			debugf("event=quit frames=%d", player.framesRendered)
			player.state = stateDone
			return nil
		}
		return player.advance()
	}
	return nil
}

// advance pulls the next frame. A decode failure ends the run with an error
// rather than skipping the frame.
func (player *Player) advance() error {
	frame, ok, err := player.source.Next()
	if err != nil {
		player.state = stateDone
		return errors.Wrapf(err, "frame %d", player.framesRendered)
	}
	if !ok {
		player.frame = nil
		player.state = stateDone
		return nil
	}
	player.frame = frame
	player.state = stateRendering
	return nil
}

func (player *Player) render() error {
	text := renderFrame(player.frame, player.config.width)
	player.frame = nil
	defer trackTime(time.Now(), "write_frame")
	if _, err := player.out.WriteString(text); err != nil {
		return errors.Wrap(err, "write frame")
	}
	if _, err := player.out.WriteString(clearScreen); err != nil {
		return errors.Wrap(err, "clear screen")
	}
	if err := player.out.Flush(); err != nil {
		return errors.Wrap(err, "flush frame")
	}
	player.framesRendered++
	return nil
}
