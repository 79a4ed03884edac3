package amrt

import "math"

// BoundaryCondition fixes a cubic spline's behavior at its end knots.
type BoundaryCondition int

const (
	BoundaryNatural BoundaryCondition = iota
	BoundaryClamped
	BoundaryNotAKnot
	BoundaryPeriodic
)

// CubicSpline is a piecewise cubic fitted over Knots. Coeffs holds one row
// per segment: constant, linear, quadratic and cubic terms, in powers of the
// distance from the segment's left knot.
type CubicSpline struct {
	Knots       []float64
	KnotHeights []float64
	Coeffs      [][]float64
	Boundary    BoundaryCondition
}

// NumSplines is the number of segments.
func (s *CubicSpline) NumSplines() int {
	return len(s.Coeffs)
}

// Evaluate returns the spline's value at x. Outside the knots the spline is
// continued with the end segment's slope (Natural, Clamped) or with the end
// segment's polynomial (NotAKnot, Periodic).
func (s *CubicSpline) Evaluate(x float64) float64 {
	n := len(s.Coeffs)
	if n == 0 || len(s.Knots) < n+1 || len(s.KnotHeights) < n+1 {
		return math.NaN()
	}
	linearEnds := s.Boundary == BoundaryNatural || s.Boundary == BoundaryClamped

	if x < s.Knots[0] {
		dx := x - s.Knots[0]
		if linearEnds {
			return float64(s.Coeffs[0][1]*dx) + s.KnotHeights[0]
		}
		return s.poly(0, dx)
	}

	if x > s.Knots[n] {
		if linearEnds {
			a := s.Coeffs[n-1]
			h := s.Knots[n] - s.Knots[n-1]
			slope := a[1] + float64(2*a[2]*h) + float64(3*a[3]*h*h)
			return float64(slope*(x-s.Knots[n])) + s.KnotHeights[n]
		}
		return s.poly(n-1, x-s.Knots[n-1])
	}

	i := 0
	for x > s.Knots[i+1] && i < n-1 {
		i++
	}
	return s.poly(i, x-s.Knots[i])
}

// poly evaluates segment i term by term; the conversions keep each product
// rounded on its own so results do not depend on fused multiply-add.
func (s *CubicSpline) poly(i int, dx float64) float64 {
	a := s.Coeffs[i]
	return a[0] + float64(a[1]*dx) + float64(a[2]*dx*dx) + float64(a[3]*dx*dx*dx)
}
