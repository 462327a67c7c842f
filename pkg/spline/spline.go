// Package spline fits interpolating curves through ordered samples.
//
// With four or more samples the curve is a not-a-knot cubic spline. Three
// samples give the unique parabola and two give a straight line, the lower
// degree curves a not-a-knot cubic degenerates to.
package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	ErrTooFewPoints   = errors.New("spline: need at least two points")
	ErrLengthMismatch = errors.New("spline: x and y lengths differ")
	ErrNotIncreasing  = errors.New("spline: x values must be strictly increasing")
	ErrNaN            = errors.New("spline: sample is NaN")
)

// Interpolator evaluates a curve fitted through a set of samples.
// Outside the sampled range it returns the value at the nearest end.
type Interpolator struct {
	predictor interp.Predictor
}

// New fits an Interpolator through the points (xs[i], ys[i]).
func New(xs, ys []float64) (*Interpolator, error) {
	if err := validate(xs, ys); err != nil {
		return nil, err
	}

	var fitter interp.FittablePredictor
	switch len(xs) {
	case 2:
		fitter = &interp.PiecewiseLinear{}
	case 3:
		fitter = &parabola{}
	default:
		fitter = &interp.NotAKnotCubic{}
	}
	if err := fitter.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("spline: fit failed: %w", err)
	}
	return &Interpolator{predictor: fitter}, nil
}

// At returns the interpolated value at x.
func (i *Interpolator) At(x float64) float64 {
	return i.predictor.Predict(x)
}

// AngularInterpolator interpolates an angle that has been folded into
// [0, 2π). Successive samples are unwrapped before fitting so the curve
// never swings the long way round, and results are folded back on output.
type AngularInterpolator struct {
	interpolator *Interpolator
}

// NewAngular fits an AngularInterpolator through the points (xs[i], ys[i]).
func NewAngular(xs []float64, ys []unit.Angle) (*AngularInterpolator, error) {
	unwrapped := make([]float64, len(ys))
	for i, y := range ys {
		v := y.Rad()
		if i > 0 {
			prev := unwrapped[i-1]
			for prev-v > math.Pi {
				v += 2 * math.Pi
			}
			for v-prev > math.Pi {
				v -= 2 * math.Pi
			}
		}
		unwrapped[i] = v
	}

	in, err := New(xs, unwrapped)
	if err != nil {
		return nil, err
	}
	return &AngularInterpolator{interpolator: in}, nil
}

// At returns the interpolated angle at x, in [0, 2π).
func (a *AngularInterpolator) At(x float64) unit.Angle {
	return unit.Angle(a.interpolator.At(x)).Mod1()
}

func validate(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return ErrTooFewPoints
	}
	if floats.HasNaN(xs) || floats.HasNaN(ys) {
		return ErrNaN
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: x[%d]=%v follows x[%d]=%v", ErrNotIncreasing, i, xs[i], i-1, xs[i-1])
		}
	}
	return nil
}

// parabola is the quadratic through exactly three points, in Lagrange form.
type parabola struct {
	xs, ys [3]float64
}

func (p *parabola) Fit(xs, ys []float64) error {
	if len(xs) != 3 || len(ys) != 3 {
		return ErrLengthMismatch
	}
	copy(p.xs[:], xs)
	copy(p.ys[:], ys)
	return nil
}

func (p *parabola) Predict(x float64) float64 {
	// Match the piecewise predictors, which hold the end values outside the
	// fitted range.
	switch {
	case x <= p.xs[0]:
		return p.ys[0]
	case x >= p.xs[2]:
		return p.ys[2]
	}

	var sum float64
	for i := 0; i < 3; i++ {
		term := p.ys[i]
		for j := 0; j < 3; j++ {
			if j != i {
				term *= (x - p.xs[j]) / (p.xs[i] - p.xs[j])
			}
		}
		sum += term
	}
	return sum
}
