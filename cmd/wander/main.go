// wander opens a window and drops a stick figure into a scrollable
// world. Walk with WASD or the arrow keys (or click/tap to move),
// interact with E or Space: flip the light switch, read the signs, or
// pick a fight with the wizard.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stickfig/wander"
	"github.com/stickfig/wander/backend/opengl"
)

var (
	flagConfig  string
	flagWorld   string
	flagWidth   int
	flagHeight  int
	flagFont    string
	flagLog     string
	flagShaders string
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "wander",
	Short:        "A stick-figure world toy",
	Long:         "wander renders a small scrollable world with a stick-figure avatar,\nbatched sprite rendering, and a handful of things to interact with.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "TOML config file")
	rootCmd.Flags().StringVar(&flagWorld, "world", "", "TOML world layout file (default: built-in world)")
	rootCmd.Flags().IntVar(&flagWidth, "width", 0, "window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 0, "window height")
	rootCmd.Flags().StringVar(&flagFont, "font", "", "bitmap font descriptor (.fnt) for signage text")
	rootCmd.Flags().StringVar(&flagLog, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagShaders, "shaders", "", "directory with sprite.vert/sprite.frag to hot-reload")
}

func run() error {
	cfg := wander.DefaultConfig()
	if flagConfig != "" {
		var err error
		if cfg, err = wander.LoadConfig(flagConfig); err != nil {
			return err
		}
	}
	if flagWorld != "" {
		cfg.WorldFile = flagWorld
	}
	if flagWidth > 0 {
		cfg.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Height = flagHeight
	}
	if flagFont != "" {
		cfg.FontFile = flagFont
	}
	if flagLog != "" {
		cfg.LogLevel = flagLog
	}
	wander.SetLogLevel(cfg.LogLevel)

	world := wander.DefaultWorld()
	if cfg.WorldFile != "" {
		var err error
		if world, err = wander.LoadWorld(cfg.WorldFile); err != nil {
			return err
		}
	}

	input := wander.NewInputState()
	window, err := opengl.NewWindow(cfg.Title, cfg.Width, cfg.Height, input)
	if err != nil {
		if errors.Is(err, opengl.ErrContextUnavailable) {
			return fmt.Errorf("this system's graphics driver is not supported: %w", err)
		}
		return err
	}
	defer window.Terminate()

	fbW, fbH := window.FramebufferSize()
	renderer, err := opengl.NewRenderer(fbW, fbH, wander.DefaultBatchCapacity)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	game, err := newGame(renderer, world, fbW, fbH, cfg, input)
	if err != nil {
		return err
	}
	defer game.Loader().Dispose()

	// Shader edits land on a channel and apply between frames, on the
	// thread that owns the GL context.
	type shaderPair struct{ vert, frag string }
	shaderCh := make(chan shaderPair, 1)
	if flagShaders != "" {
		watcher, err := opengl.NewShaderWatcher(
			filepath.Join(flagShaders, "sprite.vert"),
			filepath.Join(flagShaders, "sprite.frag"),
			func(vert, frag string) {
				select {
				case shaderCh <- shaderPair{vert, frag}:
				default:
				}
			})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	window.OnResize = game.Resize
	window.OnFocus = func(focused bool) {
		// Start is idempotent, so regaining focus never double-starts.
		if focused {
			game.Start()
		} else {
			game.Stop()
		}
	}

	game.Start()
	for !window.ShouldClose() {
		window.Poll()
		select {
		case p := <-shaderCh:
			if err := renderer.ReloadShader(p.vert, p.frag); err != nil {
				fmt.Fprintf(os.Stderr, "shader reload failed: %v\n", err)
			}
		default:
		}
		if err := game.Tick(); err != nil {
			return err
		}
		window.Swap()
	}
	return nil
}

func newGame(renderer *opengl.Renderer, world *wander.World, fbW, fbH int, cfg wander.Config, input *wander.InputState) (*wander.Game, error) {
	game, err := wander.NewGame(renderer, world, fbW, fbH,
		wander.WithInput(input),
		wander.WithTheme(wander.NewTheme(cfg.ThemeFile)),
		wander.WithSmoothing(cfg.Smoothing),
		wander.WithMoveSpeed(cfg.MoveSpeed),
	)
	if err != nil {
		return nil, err
	}

	if cfg.FontFile != "" {
		font, err := wander.LoadFont(game.Loader(), cfg.FontFile)
		if err != nil {
			// Text is decorative; run without it.
			fmt.Fprintf(os.Stderr, "font unavailable: %v\n", err)
		} else {
			game.SetFont(font)
		}
	}
	return game, nil
}
