package main

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	exitMediaError  = 1
	exitConfigError = 2
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// valueFlags take an argument, see reorderArgs.
var valueFlags = map[string]bool{
	"w":          true,
	"width":      true,
	"fps":        true,
	"frame_rate": true,
}

// reorderArgs moves flags ahead of positional arguments so the input path
// may come first on the command line.
func reorderArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	flags := []string{}
	positional := []string{}
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if !strings.Contains(name, "=") && valueFlags[name] && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	reordered := append([]string{args[0]}, flags...)
	if len(positional) > 0 {
		reordered = append(reordered, "--")
		reordered = append(reordered, positional...)
	}
	return reordered
}

func newApp(play func(playbackConfig) error, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "termascii",
		Usage:           "play an image or video as colored ASCII art in the terminal",
		ArgsUsage:       "<input_file>",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		ExitErrHandler:  func(*cli.Context, error) {},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return &usageError{msg: err.Error()}
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Value:   defaultWidth,
				Usage:   "width of ASCII art in characters",
			},
			&cli.IntFlag{
				Name:    "frame_rate",
				Aliases: []string{"fps"},
				Value:   defaultFrameRate,
				Usage:   "frame rate of the media being played",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log timings and palette diagnostics to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return &usageError{msg: "expected exactly one input file"}
			}
			cfg := playbackConfig{
				path:      c.Args().First(),
				width:     c.Int("width"),
				frameRate: c.Int("frame_rate"),
				debug:     c.Bool("debug"),
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			return play(cfg)
		},
	}
}

func exitCode(err error) int {
	var configErr *ConfigurationError
	var usageErr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &configErr), errors.As(err, &usageErr):
		return exitConfigError
	default:
		return exitMediaError
	}
}

func play(cfg playbackConfig) (err error) {
	debug = cfg.debug
	if debug {
		if _, err := checkPalette(); err != nil {
			log.Printf("event=check_palette error=%q", err)
		}
	}
	var out io.Writer = os.Stdout
	var quit quitSignal = noQuit{}
	kb, err := openKeyboard(os.Stdin)
	if err != nil {
		return err
	}
	if kb != nil {
		var restoreLog func()
		out, restoreLog = rawModeOutput(os.Stdout, os.Stderr)
		defer func() {
			restoreLog()
			if restoreErr := kb.Close(); err == nil {
				err = restoreErr
			}
		}()
		quit = kb
	}
	return NewPlayer(cfg, out, quit).Play()
}

func main() {
	app := newApp(play, os.Stdout, os.Stderr)
	if err := app.Run(reorderArgs(os.Args)); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
