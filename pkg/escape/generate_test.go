package escape

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/willbeason/escapetime/pkg/transforms"
)

func mandelbrotParams(w, h, maxIter int) Params {
	return Params{
		Viewport:   Full,
		Resolution: Resolution{Width: w, Height: h},
		MaxIter:    maxIter,
		Mode:       transforms.Mandelbrot{},
	}
}

func TestLinspace(t *testing.T) {
	tcs := []struct {
		name       string
		start, end float64
		n          int
		want       []float64
	}{
		{name: "single", start: -2, end: 1, n: 1, want: []float64{-2}},
		{name: "endpoints", start: -2, end: 1, n: 2, want: []float64{-2, 1}},
		{name: "four", start: -2, end: 1, n: 4, want: []float64{-2, -1, 0, 1}},
		{name: "imaginary", start: -1.5, end: 1.5, n: 4, want: []float64{-1.5, -0.5, 0.5, 1.5}},
		{name: "empty", start: 0, end: 1, n: 0, want: nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := Linspace(tc.start, tc.end, tc.n)
			if len(got) != len(tc.want) {
				t.Fatalf("len(Linspace()) = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-12 {
					t.Fatalf("Linspace()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLinspaceEndpoint(t *testing.T) {
	got := Linspace(-0.7435, -0.7420, 1920)
	if got[0] != -0.7435 || got[len(got)-1] != -0.7420 {
		t.Fatalf("Linspace() endpoints = %v, %v", got[0], got[len(got)-1])
	}
}

func TestGenerateShape(t *testing.T) {
	tcs := []Resolution{{1, 1}, {1, 7}, {7, 1}, {13, 5}, {64, 48}}

	for _, r := range tcs {
		p := mandelbrotParams(r.Width, r.Height, 32)
		g, err := Generate(context.Background(), p)
		if err != nil {
			t.Fatalf("Generate(%v) error = %v", r, err)
		}
		if g.Width != r.Width || g.Height != r.Height || len(g.Counts) != r.Cells() {
			t.Fatalf("Generate(%v) shape = %dx%d (%d cells)", r, g.Width, g.Height, len(g.Counts))
		}
	}
}

func TestGenerateCorners(t *testing.T) {
	p := mandelbrotParams(31, 17, 100)
	g, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}

	lo := p.Viewport.Min()
	if got, want := g.At(0, 0), Evaluate(lo, lo, 100); got != want {
		t.Fatalf("At(0, 0) = %d, want %d", got, want)
	}
	hi := p.Viewport.Max()
	if got, want := g.At(30, 16), Evaluate(hi, hi, 100); got != want {
		t.Fatalf("At(30, 16) = %d, want %d", got, want)
	}
}

func TestGenerateSingleCell(t *testing.T) {
	p := Params{
		Viewport:   Viewport{RealMin: 0, RealMax: 3, ImagMin: 0, ImagMax: 3},
		Resolution: Resolution{Width: 1, Height: 1},
		MaxIter:    20,
		Mode:       transforms.Mandelbrot{},
	}

	g, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	// Sampled at the origin, which never escapes.
	if len(g.Counts) != 1 || g.At(0, 0) != 20 {
		t.Fatalf("Generate() = %v, want [20]", g.Counts)
	}
}

func TestGenerateMandelbrotScenario(t *testing.T) {
	g, err := Generate(context.Background(), mandelbrotParams(4, 4, 50))
	if err != nil {
		t.Fatal(err)
	}

	// Real samples are -2, -1, 0, 1; imaginary samples are -1.5, -0.5, 0.5, 1.5.
	want := [4][4]uint32{
		{0, 0, 0, 0},
		{1, 4, 4, 1},
		{1, 50, 50, 1},
		{1, 1, 1, 1},
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got := g.At(i, j); got != want[i][j] {
				t.Errorf("At(%d, %d) = %d, want %d", i, j, got, want[i][j])
			}
		}
	}
}

func TestGenerateJuliaScenario(t *testing.T) {
	p := mandelbrotParams(4, 4, 50)
	p.Mode = transforms.Julia{C: complex(-0.8, 0.156)}

	g, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}

	want := [4][4]uint32{
		{0, 0, 0, 0},
		{1, 2, 5, 1},
		{1, 23, 23, 1},
		{1, 5, 2, 1},
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got := g.At(i, j); got != want[i][j] {
				t.Errorf("At(%d, %d) = %d, want %d", i, j, got, want[i][j])
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	modes := []transforms.Mode{
		transforms.Mandelbrot{},
		transforms.Julia{C: complex(-0.8, 0.156)},
	}

	for _, mode := range modes {
		p := Params{
			Viewport:   SeahorseValley,
			Resolution: Resolution{Width: 97, Height: 61},
			MaxIter:    300,
			Mode:       mode,
			Workers:    1,
		}
		serial, err := Generate(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}

		for _, workers := range []int{0, 2, 3, 16, 200} {
			p.Workers = workers
			got, err := Generate(context.Background(), p)
			if err != nil {
				t.Fatal(err)
			}
			for k := range serial.Counts {
				if got.Counts[k] != serial.Counts[k] {
					t.Fatalf("%v with %d workers: cell %d = %d, want %d", mode.Kind(), workers, k, got.Counts[k], serial.Counts[k])
				}
			}
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	valid := mandelbrotParams(8, 8, 10)

	tcs := []struct {
		name   string
		modify func(*Params)
	}{
		{name: "equal real bounds", modify: func(p *Params) { p.Viewport.RealMax = p.Viewport.RealMin }},
		{name: "inverted real bounds", modify: func(p *Params) { p.Viewport.RealMin, p.Viewport.RealMax = 1, -2 }},
		{name: "equal imaginary bounds", modify: func(p *Params) { p.Viewport.ImagMin = p.Viewport.ImagMax }},
		{name: "nan bound", modify: func(p *Params) { p.Viewport.ImagMin = math.NaN() }},
		{name: "infinite bound", modify: func(p *Params) { p.Viewport.RealMax = math.Inf(1) }},
		{name: "zero width", modify: func(p *Params) { p.Resolution.Width = 0 }},
		{name: "negative height", modify: func(p *Params) { p.Resolution.Height = -4 }},
		{name: "zero max iter", modify: func(p *Params) { p.MaxIter = 0 }},
		{name: "nil mode", modify: func(p *Params) { p.Mode = nil }},
		{name: "nan julia constant", modify: func(p *Params) { p.Mode = transforms.Julia{C: complex(math.NaN(), 0)} }},
		{name: "negative workers", modify: func(p *Params) { p.Workers = -1 }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.modify(&p)

			g, err := Generate(context.Background(), p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Generate() error = %v, want ErrInvalidParameter", err)
			}
			if g != nil {
				t.Fatalf("Generate() returned a grid alongside an error")
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := Generate(ctx, mandelbrotParams(64, 64, 100))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if g != nil {
		t.Fatal("Generate() returned a partial grid")
	}
}

func TestHistogram(t *testing.T) {
	g, err := Generate(context.Background(), mandelbrotParams(4, 4, 50))
	if err != nil {
		t.Fatal(err)
	}

	h := g.Histogram(50)
	if h[0] != 4 || h[1] != 8 || h[4] != 2 || h[50] != 2 {
		t.Fatalf("Histogram() = %v", h)
	}
	total := 0
	for _, n := range h {
		total += n
	}
	if total != 16 {
		t.Fatalf("Histogram() covers %d cells, want 16", total)
	}
}

func BenchmarkGenerate(b *testing.B) {
	p := mandelbrotParams(320, 240, 256)
	for i := 0; i < b.N; i++ {
		if _, err := Generate(context.Background(), p); err != nil {
			b.Fatal(err)
		}
	}
}
