// Package escape classifies points of the complex plane by escape time.
//
// Evaluate counts iterations of z <- z*z + c until |z| exceeds 2.
// Generate samples a Viewport on a pixel grid and evaluates every cell in
// parallel, producing a Grid of counts. Cells never depend on one another, so
// the output is identical for any number of workers.
package escape
