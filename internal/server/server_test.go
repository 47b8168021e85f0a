package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/willbeason/escapetime/pkg/escape"
)

func newTestClient(t *testing.T, s *Server) *Client {
	t.Helper()

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cl, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cl.Close() })
	return cl
}

func fullRequest(w, h int) FrameRequest {
	return FrameRequest{
		Viewport: [4]float64{escape.Full.RealMin, escape.Full.RealMax, escape.Full.ImagMin, escape.Full.ImagMax},
		Width:    w,
		Height:   h,
		MaxIter:  50,
	}
}

func TestFrame(t *testing.T) {
	cl := newTestClient(t, New())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	img, err := cl.Frame(ctx, fullRequest(40, 30))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("frame bounds = %v, want 40x30", b)
	}

	julia := fullRequest(16, 16)
	julia.Mode = "julia"
	julia.C = Complex{Real: -0.8, Imag: 0.156}
	julia.Palette = "viridis"
	if _, err := cl.Frame(ctx, julia); err != nil {
		t.Fatalf("julia frame: %v", err)
	}
}

func TestFrameDeterministic(t *testing.T) {
	s := New()
	cl := newTestClient(t, s)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := fullRequest(33, 21)
	first, err := cl.FramePNG(ctx, req)
	if err != nil {
		t.Fatal(err)
	}

	serial := &Server{Workers: 1}
	second, err := serial.Render(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical requests produced different frames")
	}
}

func TestFrameRejected(t *testing.T) {
	s := New()
	s.MaxPixels = 100 * 100
	cl := newTestClient(t, s)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tcs := []struct {
		name   string
		modify func(*FrameRequest)
		want   string
	}{
		{name: "inverted viewport", modify: func(r *FrameRequest) { r.Viewport[0], r.Viewport[1] = 1, -2 }, want: "invalid parameter"},
		{name: "zero width", modify: func(r *FrameRequest) { r.Width = 0 }, want: "invalid parameter"},
		{name: "zero max iter", modify: func(r *FrameRequest) { r.MaxIter = 0 }, want: "invalid parameter"},
		{name: "unknown mode", modify: func(r *FrameRequest) { r.Mode = "newton" }, want: "unknown fractal mode"},
		{name: "unknown palette", modify: func(r *FrameRequest) { r.Palette = "jet" }, want: "unknown palette"},
		{name: "too large", modify: func(r *FrameRequest) { r.Width, r.Height = 200, 200 }, want: "frame too large"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			req := fullRequest(8, 8)
			tc.modify(&req)

			_, err := cl.FramePNG(ctx, req)
			var fe *FrameError
			if !errors.As(err, &fe) {
				t.Fatalf("FramePNG() error = %v, want FrameError", err)
			}
			if !strings.Contains(fe.Message, tc.want) {
				t.Fatalf("FramePNG() error = %q, want it to mention %q", fe.Message, tc.want)
			}
		})
	}

	// The connection survives refused requests.
	if _, err := cl.Frame(ctx, fullRequest(8, 8)); err != nil {
		t.Fatalf("Frame() after refusals: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	s := New()
	_, err := s.Render(context.Background(), FrameRequest{Width: 4, Height: 4, MaxIter: 10})
	if !errors.Is(err, ErrBadRequest) || !errors.Is(err, escape.ErrInvalidParameter) {
		t.Fatalf("Render(empty viewport) error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Render(ctx, fullRequest(64, 64))
	if errors.Is(err, ErrBadRequest) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Render(cancelled) error = %v", err)
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Fatalf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}
