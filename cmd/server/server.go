package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/willbeason/escapetime/internal/server"
)

type options struct {
	Addr      string
	Workers   int
	MaxPixels int
	Origins   []string
}

func mainCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve rendered fractal frames over a websocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "address to listen on")
	cmd.Flags().IntVar(&opts.Workers, "workers", runtime.NumCPU(), "goroutines evaluating each frame")
	cmd.Flags().IntVar(&opts.MaxPixels, "max-pixels", server.DefaultMaxPixels, "largest frame, in pixels, a client may request")
	cmd.Flags().StringSliceVar(&opts.Origins, "origin", nil, "browser origins allowed to connect, such as example.com")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	s := server.New()
	s.Workers = opts.Workers
	s.MaxPixels = opts.MaxPixels
	s.OriginPatterns = opts.Origins

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		log.Printf("listening on %s, frames at /ws", opts.Addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ListenAndServe: %w", err)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
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
