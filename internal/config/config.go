// Package config holds the command-line configuration shared by every command.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"

	"github.com/willbeason/escapetime/pkg/control"
	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/transforms"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 800
	DefaultMaxIter = 256
	DefaultPalette = "inferno"
)

// Config describes one fractal view.
type Config struct {
	Width, Height int
	MaxIter       int
	Viewport      escape.Viewport
	Mode          transforms.Kind
	C             complex128
	Palette       string
	Workers       int
}

func Default() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		MaxIter:  DefaultMaxIter,
		Viewport: escape.Full,
		Mode:     transforms.KindMandelbrot,
		C:        control.DefaultC,
		Palette:  DefaultPalette,
		Workers:  runtime.NumCPU(),
	}
}

// Bind registers cfg's fields on fs, using the current values as defaults.
func Bind(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "grid width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "grid height in pixels")
	fs.IntVar(&cfg.MaxIter, "max-iter", cfg.MaxIter, "maximum iterations per point")
	fs.Var((*ViewportValue)(&cfg.Viewport), "viewport",
		fmt.Sprintf("region of the complex plane as xmin,xmax,ymin,ymax or one of %s", strings.Join(escape.Regions(), ", ")))
	fs.Var((*ModeValue)(&cfg.Mode), "mode", "fractal to draw: mandelbrot or julia")
	fs.Var((*ComplexValue)(&cfg.C), "c", "julia constant, such as -0.8+0.156i")
	fs.StringVar(&cfg.Palette, "palette", cfg.Palette, fmt.Sprintf("color palette, one of %s", strings.Join(palette.Names(), ", ")))
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines evaluating the grid")
}

func (c Config) Resolution() escape.Resolution {
	return escape.Resolution{Width: c.Width, Height: c.Height}
}

// Params converts c to a generation request. Invalid values are left for
// escape.Generate to reject.
func (c Config) Params() escape.Params {
	return escape.Params{
		Viewport:   c.Viewport,
		Resolution: c.Resolution(),
		MaxIter:    c.MaxIter,
		Mode:       transforms.New(c.Mode, c.C),
		Workers:    c.Workers,
	}
}

// State converts c to the starting state of an interactive view.
func (c Config) State() (control.State, error) {
	i := palette.Index(c.Palette)
	if i < 0 {
		_, err := palette.Lookup(c.Palette)
		return control.State{}, err
	}

	return control.State{
		Viewport:   c.Viewport,
		Resolution: c.Resolution(),
		MaxIter:    c.MaxIter,
		Palette:    i,
		Mode:       c.Mode,
		C:          c.C,
		Workers:    c.Workers,
	}, nil
}
