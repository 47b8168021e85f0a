package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/willbeason/escapetime/internal/config"
	"github.com/willbeason/escapetime/internal/server"
	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/transforms"
)

type options struct {
	config.Config

	Out    string
	Both   bool
	Remote string
}

func mainCmd() *cobra.Command {
	opts := &options{Config: config.Default()}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an escape-time fractal to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	config.Bind(cmd.Flags(), &opts.Config)
	cmd.Flags().StringVar(&opts.Out, "out", "out", "directory to write frames to")
	cmd.Flags().BoolVar(&opts.Both, "both", false, "render the Mandelbrot and the Julia set side by side")
	cmd.Flags().StringVar(&opts.Remote, "remote", "", "render on a frame server, such as ws://localhost:8080/ws")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	pal, err := palette.Lookup(opts.Palette)
	if err != nil {
		return err
	}

	kinds := []transforms.Kind{opts.Mode}
	if opts.Both {
		kinds = []transforms.Kind{transforms.KindMandelbrot, transforms.KindJulia}
	}

	err = os.MkdirAll(opts.Out, os.ModePerm)
	if err != nil {
		return err
	}
	stamp := time.Now().Format("20060102150405")

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, kind := range kinds {
		cfg := opts.Config
		cfg.Mode = kind
		path := filepath.Join(opts.Out, fmt.Sprintf("%s-%s.png", kind, stamp))

		g.Go(func() error {
			if opts.Remote != "" {
				return renderRemote(ctx, opts.Remote, cfg, path)
			}
			return renderLocal(ctx, cfg, pal, path)
		})
	}

	return g.Wait()
}

func renderLocal(ctx context.Context, cfg config.Config, pal *palette.Palette, path string) error {
	start := time.Now()

	grid, err := escape.Generate(ctx, cfg.Params())
	if err != nil {
		return fmt.Errorf("generate %v: %w", cfg.Mode, err)
	}

	interior := grid.Histogram(cfg.MaxIter)[cfg.MaxIter]
	log.Printf("%v: %dx%d cells in %s, %.1f%% bounded",
		cfg.Mode, grid.Width, grid.Height, time.Since(start), 100*float64(interior)/float64(len(grid.Counts)))

	return writePNG(path, palette.Colorize(grid, cfg.MaxIter, pal))
}

func renderRemote(ctx context.Context, url string, cfg config.Config, path string) error {
	client, err := server.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	start := time.Now()
	data, err := client.FramePNG(ctx, frameRequest(cfg))
	if err != nil {
		return fmt.Errorf("frame %v: %w", cfg.Mode, err)
	}
	log.Printf("%v: %dx%d frame from %s in %s", cfg.Mode, cfg.Width, cfg.Height, url, time.Since(start))

	return os.WriteFile(path, data, 0o644)
}

func frameRequest(cfg config.Config) server.FrameRequest {
	return server.FrameRequest{
		Viewport: [4]float64{cfg.Viewport.RealMin, cfg.Viewport.RealMax, cfg.Viewport.ImagMin, cfg.Viewport.ImagMax},
		Width:    cfg.Width,
		Height:   cfg.Height,
		MaxIter:  cfg.MaxIter,
		Mode:     cfg.Mode.String(),
		C:        server.Complex{Real: real(cfg.C), Imag: imag(cfg.C)},
		Palette:  cfg.Palette,
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(f, img)
	if err != nil {
		_ = f.Close()
		return err
	}

	log.Printf("wrote %s", path)
	return f.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
