// Package server renders fractal frames on request over a websocket.
//
// A client sends a FrameRequest as a JSON text message and receives the frame as
// a binary PNG message. A request the server cannot honor is answered with an
// ErrorResponse text message and the connection stays open.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/transforms"
)

const (
	// DefaultMaxPixels caps the cells in a single frame.
	DefaultMaxPixels = 4096 * 4096

	readLimit = 1 << 16
)

var (
	// ErrBadRequest wraps every failure caused by the request contents.
	ErrBadRequest = errors.New("bad request")

	ErrTooLarge = fmt.Errorf("%w: frame too large", ErrBadRequest)
)

// Complex is a JSON-friendly complex number.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// FrameRequest asks for one rendered frame.
type FrameRequest struct {
	// Viewport is xmin, xmax, ymin, ymax.
	Viewport [4]float64 `json:"viewport"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	MaxIter  int        `json:"maxIter"`

	// Mode is mandelbrot or julia; empty means mandelbrot.
	Mode string  `json:"mode,omitempty"`
	C    Complex `json:"c"`

	// Palette names a builtin palette; empty means the first one.
	Palette string `json:"palette,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	// Workers is passed to escape.Generate for every frame.
	Workers int

	// MaxPixels caps Width*Height of a request.
	MaxPixels int

	// OriginPatterns lists the hosts allowed to open a websocket from a browser.
	OriginPatterns []string
}

func New() *Server {
	return &Server{
		Workers:   runtime.NumCPU(),
		MaxPixels: DefaultMaxPixels,
	}
}

// Handler serves the websocket endpoint at /ws and a health check at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.OriginPatterns,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("got connection from: %s", r.RemoteAddr)

	err = s.serveConn(r.Context(), c)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Printf("connection closed: %s", r.RemoteAddr)
		return
	}
	if err != nil {
		log.Printf("err: connection %s: %v", r.RemoteAddr, err)
		c.Close(websocket.StatusInternalError, "frame failed")
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) serveConn(ctx context.Context, c *websocket.Conn) error {
	c.SetReadLimit(readLimit)

	for {
		var req FrameRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			return err
		}

		start := time.Now()
		frame, err := s.Render(ctx, req)
		if errors.Is(err, ErrBadRequest) {
			if err := wsjson.Write(ctx, c, ErrorResponse{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := c.Write(ctx, websocket.MessageBinary, frame); err != nil {
			return err
		}
		log.Printf("rendered %dx%d %s frame in %s", req.Width, req.Height, req.mode(), time.Since(start))
	}
}

func (req FrameRequest) mode() string {
	if req.Mode == "" {
		return transforms.KindMandelbrot.String()
	}
	return req.Mode
}

// Params converts req to a generation request and the palette to color it with.
func (s *Server) Params(req FrameRequest) (escape.Params, *palette.Palette, error) {
	kind, err := transforms.ParseKind(req.mode())
	if err != nil {
		return escape.Params{}, nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	pal := palette.Get(0)
	if req.Palette != "" {
		if pal, err = palette.Lookup(req.Palette); err != nil {
			return escape.Params{}, nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}

	if s.MaxPixels > 0 && req.Width > 0 && req.Height > 0 &&
		(req.Width > s.MaxPixels || req.Height > s.MaxPixels/req.Width) {
		return escape.Params{}, nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, req.Width, req.Height, s.MaxPixels)
	}

	p := escape.Params{
		Viewport: escape.Viewport{
			RealMin: req.Viewport[0], RealMax: req.Viewport[1],
			ImagMin: req.Viewport[2], ImagMax: req.Viewport[3],
		},
		Resolution: escape.Resolution{Width: req.Width, Height: req.Height},
		MaxIter:    req.MaxIter,
		Mode:       transforms.New(kind, complex(req.C.Real, req.C.Imag)),
		Workers:    s.Workers,
	}
	return p, pal, nil
}

// Render generates, colors and PNG-encodes the frame described by req.
func (s *Server) Render(ctx context.Context, req FrameRequest) ([]byte, error) {
	p, pal, err := s.Params(req)
	if err != nil {
		return nil, err
	}

	g, err := escape.Generate(ctx, p)
	if errors.Is(err, escape.ErrInvalidParameter) {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, palette.Colorize(g, p.MaxIter, pal)); err != nil {
		return nil, fmt.Errorf("png.Encode: %w", err)
	}
	return buf.Bytes(), nil
}
