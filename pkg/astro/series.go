package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// Term is one periodic term, Amplitude·cos(Phase + Frequency·x).
type Term struct {
	Amplitude float64
	Phase     float64
	Frequency float64
}

// At evaluates the term at x.
func (t Term) At(x float64) float64 {
	return t.Amplitude * math.Cos(t.Phase+t.Frequency*x)
}

// SineTerm returns the constant term amplitude·sin(arg).
func SineTerm(amplitude float64, arg unit.Angle) Term {
	return Term{Amplitude: amplitude, Phase: arg.Rad() - math.Pi/2}
}

// CosineTerm returns the constant term amplitude·cos(arg).
func CosineTerm(amplitude float64, arg unit.Angle) Term {
	return Term{Amplitude: amplitude, Phase: arg.Rad()}
}

// SumTerms adds up terms evaluated at x. An empty slice sums to zero.
func SumTerms(terms []Term, x float64) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.At(x)
	}
	return sum
}

// Series is a polynomial in x whose coefficient for x^n is the sum of the
// terms in Orders[n]. The whole result is multiplied by Scale.
//
// Series values are shared read-only tables; Eval never modifies them.
type Series struct {
	Orders [][]Term
	Scale  float64
}

// Eval evaluates the series at x.
func (s Series) Eval(x float64) float64 {
	var sum float64
	pow := 1.0
	for _, terms := range s.Orders {
		sum += SumTerms(terms, x) * pow
		pow *= x
	}
	return sum * s.Scale
}
