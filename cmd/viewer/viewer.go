package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/willbeason/escapetime/internal/config"
	"github.com/willbeason/escapetime/pkg/control"
	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
)

type binding struct {
	Key    ebiten.Key
	Action control.Action
}

// Checked in order, so simultaneous presses apply predictably.
var bindings = []binding{
	{ebiten.KeyArrowRight, control.NextPalette},
	{ebiten.KeyArrowLeft, control.PrevPalette},
	{ebiten.KeyJ, control.ShowJulia},
	{ebiten.KeyM, control.ShowMandelbrot},
	{ebiten.KeyTab, control.ToggleMode},
	{ebiten.KeyD, control.GrowConstant},
	{ebiten.KeyA, control.ShrinkConstant},
	{ebiten.KeyW, control.MoreIterations},
	{ebiten.KeyS, control.FewerIterations},
	{ebiten.KeyT, control.PanUp},
	{ebiten.KeyG, control.PanDown},
	{ebiten.KeyF, control.PanLeft},
	{ebiten.KeyH, control.PanRight},
	{ebiten.KeyE, control.ZoomIn},
	{ebiten.KeyQ, control.ZoomOut},
}

const help = "arrows palette  J/M/Tab mode  A/D constant  W/S iterations  TFGH pan  E/Q zoom  R reset  I info  Esc quit"

type viewer struct {
	home  control.State
	state control.State

	// last is the most recent state that generated successfully.
	last   control.State
	params escape.Params
	grid   *escape.Grid

	img   *image.RGBA
	frame *ebiten.Image

	dirty    bool
	showInfo bool
}

func newViewer(s control.State) *viewer {
	w, h := s.Resolution.Width, s.Resolution.Height
	return &viewer{
		home:     s,
		state:    s,
		img:      image.NewRGBA(image.Rect(0, 0, w, h)),
		frame:    ebiten.NewImage(w, h),
		dirty:    true,
		showInfo: true,
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		v.showInfo = !v.showInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.state = v.home
		v.dirty = true
	}

	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.Key) {
			v.state = v.state.Apply(b.Action)
			v.dirty = true
		}
	}

	if v.dirty {
		v.refresh()
	}
	return nil
}

// refresh regenerates the grid if the view changed and repaints the frame.
// A state the generator rejects is discarded in favor of the last good one.
func (v *viewer) refresh() {
	v.dirty = false

	p := v.state.Params()
	if v.grid == nil || p != v.params {
		start := time.Now()
		grid, err := escape.Generate(context.Background(), p)
		if err != nil {
			log.Printf("err: %v; keeping previous view", err)
			v.state = v.last
			return
		}
		v.grid, v.params = grid, p
		log.Printf("%v in %s", v.state, time.Since(start))
	}

	palette.ColorizeInto(v.img, v.grid, v.params.MaxIter, palette.Get(v.state.Palette))
	v.frame.WritePixels(v.img.Pix)
	v.last = v.state
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.frame, nil)

	if v.showInfo {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%v\nTPS: %0.2f\n%s", v.state, ebiten.ActualTPS(), help))
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.state.Resolution.Width, v.state.Resolution.Height
}

func mainCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Explore the Mandelbrot and Julia sets interactively",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg)
		},
	}

	config.Bind(cmd.Flags(), &cfg)

	return cmd
}

func runCmd(cmd *cobra.Command, cfg config.Config) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	s, err := cfg.State()
	if err != nil {
		return err
	}
	// The first frame has no previous view to fall back on.
	if err := s.Params().Validate(); err != nil {
		return err
	}

	ebiten.SetWindowTitle("escapetime")
	ebiten.SetWindowSize(s.Resolution.Width, s.Resolution.Height)
	ebiten.SetTPS(60)

	return ebiten.RunGame(newViewer(s))
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
