package window

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/engine"
	"github.com/san-kum/linesaver/internal/session"
)

var (
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colPanel   = rl.NewColor(0, 0, 0, 180)
)

// Options tunes the desktop host.
type Options struct {
	Scale     int
	Title     string
	ShowStats bool
}

type app struct {
	eng     *engine.Engine
	surface *display.RGBA
	tex     rl.Texture2D
	scale   int
	paused  bool
	stats   bool
}

// initWindow opens a window sized to the effect's mode times scale.
func initWindow(mode display.Mode, scale, fps int, title string) {
	rl.SetConfigFlags(rl.FlagVsyncHint)
	rl.InitWindow(int32(mode.Width*scale), int32(mode.Height*scale), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens a window and runs the effect in it until the window is closed
// or q is pressed. It must be called from the main goroutine.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Title == "" {
		opts.Title = "linesaver"
	}
	mode := display.Mode{Width: cfg.Width, Height: cfg.Height}

	surface := display.NewRGBA(mode)
	eng, err := engine.New(cfg, surface, nil)
	if err != nil {
		return err
	}

	initWindow(mode, opts.Scale, cfg.FPS, opts.Title)
	defer rl.CloseWindow()

	img := rl.GenImageColor(mode.Width, mode.Height, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(tex)
	rl.SetTextureFilter(tex, rl.FilterPoint)

	a := &app{
		eng:     eng,
		surface: surface,
		tex:     tex,
		scale:   opts.Scale,
		stats:   opts.ShowStats,
	}
	defer eng.Blank(false)

	engine.Logger().Info("window opened", "mode", mode.String(), "scale", opts.Scale)
	return session.New(eng).RunWithCallback(ctx, a.frame)
}

// frame presents one produced frame. While paused it keeps the window
// responsive without asking the engine for more.
func (a *app) frame(session.Frame) bool {
	for {
		if rl.WindowShouldClose() || !a.handleKeys() {
			return false
		}
		a.draw()
		if !a.paused {
			return true
		}
	}
}

func (a *app) handleKeys() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.paused = !a.paused
	case rl.IsKeyPressed(rl.KeyTab):
		a.stats = !a.stats
	case rl.IsKeyPressed(rl.KeyR):
		if err := a.eng.Restart(); err != nil {
			engine.Logger().Warn("restart failed", "err", err)
			return false
		}
	}
	return true
}

func (a *app) draw() {
	if px, dirty := a.surface.Pixels(); dirty {
		rl.UpdateTexture(a.tex, px)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTextureEx(a.tex, rl.NewVector2(0, 0), 0, float32(a.scale), rl.White)

	if a.stats {
		a.drawStats()
	}
	rl.EndDrawing()
}

func (a *app) drawStats() {
	s := a.eng.Stats()
	rl.DrawRectangle(4, 4, 190, 86, colPanel)
	rl.DrawText(fmt.Sprintf("frames %d", s.Frames), 10, 10, 10, colText)
	rl.DrawText(fmt.Sprintf("lines  %d/%d", s.Live, a.eng.Config().Lines), 10, 24, 10, colText)
	rl.DrawText(fmt.Sprintf("lit    %d", s.Lit), 10, 38, 10, colText)
	rl.DrawText(fmt.Sprintf("fps    %d", rl.GetFPS()), 10, 52, 10, colText)
	hint := "SPACE pause  R restart  TAB stats  Q quit"
	if a.paused {
		hint = "PAUSED"
	}
	rl.DrawText(hint, 10, 70, 10, colTextDim)
}
