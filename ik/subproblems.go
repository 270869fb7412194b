// Package ik implements the closed-form rotation subproblems used to
// assemble analytic inverse kinematics solvers for serial chains.
//
// Subproblems 0 and 1 recover a single rotation angle, subproblem 2
// intersects the circles traced about two axes, and subproblem 3 finds the
// rotation angles that achieve a given distance. Angles are returned in
// (-pi, pi].
package ik

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/armlab-robotics/kinchain/utils"
)

// math.Nextafter is not a constant expression, so these cannot be consts.
var (
	floatEps = math.Nextafter(1, 2) - 1
	sqrtEps  = math.Sqrt(floatEps)
)

var (
	// ErrNormMismatch reports inputs whose norms differ by more than 1%, so
	// no pure rotation maps one exactly onto the other. The angle returned
	// alongside it still maps the direction of p onto the direction of q.
	ErrNormMismatch = errors.New("p and q norms differ by more than 1%; no rotation maps p exactly onto q")
	// ErrPointOnAxis reports a point that projects onto the rotation axis,
	// leaving the rotation angle indeterminate.
	ErrPointOnAxis = errors.New("point lies on the rotation axis; angle is indeterminate")
	// ErrParallelAxes reports parallel subproblem 2 axes, for which the
	// two-rotation decomposition is underdetermined.
	ErrParallelAxes = errors.New("rotation axes are parallel; solution is underdetermined")
	// ErrNoIntersection reports that the circles traced by p and q about the
	// subproblem 2 axes never meet.
	ErrNoIntersection = errors.New("circles about the axes do not intersect; no solution")
	// ErrUnreachableDistance reports a subproblem 3 distance that no
	// rotation angle can achieve.
	ErrUnreachableDistance = errors.New("distance cannot be reached by any rotation angle")
)

// AnglePair is one solution of Subproblem2: rotating p by Theta2 about the
// second axis and then by Theta1 about the first maps it onto q.
type AnglePair struct {
	Theta1 float64
	Theta2 float64
}

// Subproblem0 solves rot(k, theta) p = q for theta, where p and q are
// perpendicular to k. Using the half-angle form keeps the answer accurate
// where a dot-product arccos loses digits, near 0 and near pi.
func Subproblem0(p, q, k r3.Vector) float64 {
	ep := p.Normalize()
	eq := q.Normalize()
	theta := 2 * math.Atan2(ep.Sub(eq).Norm(), ep.Add(eq).Norm())
	if k.Dot(p.Cross(q)) < 0 {
		return -theta
	}
	return theta
}

// Subproblem1 solves rot(k, theta) p = q for theta, projecting p and q onto
// the plane perpendicular to k first. If the norms of p and q differ by more
// than 1% the returned angle only aligns their directions, and the advisory
// ErrNormMismatch is returned with it.
func Subproblem1(p, q, k r3.Vector) (float64, error) {
	if p.Sub(q).Norm() < sqrtEps {
		return 0, nil
	}

	k = k.Normalize()
	pp := p.Sub(k.Mul(p.Dot(k)))
	qp := q.Sub(k.Mul(q.Dot(k)))
	if pp.Norm() < sqrtEps || qp.Norm() < sqrtEps {
		return 0, ErrPointOnAxis
	}

	theta := Subproblem0(pp.Normalize(), qp.Normalize(), k)
	if math.Abs(p.Norm()-q.Norm()) > p.Norm()*1e-2 {
		return theta, ErrNormMismatch
	}
	return theta, nil
}

// Subproblem2 solves rot(k1, theta1) rot(k2, theta2) p = q for all angle
// pairs, by intersecting the circle q traces backwards about k1 with the
// circle p traces about k2. There are two, one or zero solutions; when the
// circles merely touch, the single pair is returned once. Advisory errors
// from the inner angle recovery are combined with any solutions found.
func Subproblem2(p, q, k1, k2 r3.Vector) ([]AnglePair, error) {
	k12 := k1.Dot(k2)
	pk := p.Dot(k2)
	qk := q.Dot(k1)

	if math.Abs(1-k12*k12) < floatEps {
		return nil, ErrParallelAxes
	}

	// coordinates of the intersection point in the (k1, k2, k1 x k2) frame
	a0 := (k12*pk - qk) / (k12*k12 - 1)
	a1 := (k12*qk - pk) / (k12*k12 - 1)
	bb := p.Dot(p) - a0*a0 - a1*a1 - 2*a0*a1*k12
	if math.Abs(bb) < floatEps {
		bb = 0
	}
	if bb < 0 {
		return nil, ErrNoIntersection
	}

	base := k1.Mul(a0).Add(k2.Mul(a1))
	pairFor := func(c r3.Vector) (AnglePair, error) {
		theta1, err1 := Subproblem1(q, c, k1)
		theta2, err2 := Subproblem1(p, c, k2)
		return AnglePair{Theta1: -theta1, Theta2: theta2}, multierr.Combine(err1, err2)
	}

	if bb == 0 {
		// the circles touch at a single point
		pair, err := pairFor(base)
		return []AnglePair{pair}, err
	}

	u := k1.Cross(k2)
	gamma := math.Sqrt(bb) / u.Norm()
	first, err1 := pairFor(base.Add(u.Mul(gamma)))
	second, err2 := pairFor(base.Sub(u.Mul(gamma)))
	return []AnglePair{first, second}, multierr.Combine(err1, err2)
}

// Subproblem3 solves ||q + rot(k, theta) p|| = d for theta. There are two,
// one or zero solutions; angles that coincide modulo 2 pi are returned once.
func Subproblem3(p, q, k r3.Vector, d float64) ([]float64, error) {
	pp := p.Sub(k.Mul(p.Dot(k)))
	qp := q.Sub(k.Mul(q.Dot(k)))
	if pp.Norm() < sqrtEps || qp.Norm() < sqrtEps {
		return nil, ErrPointOnAxis
	}

	// the component of q + rot(k, theta) p along k is constant, so only
	// dpsq remains to be covered in the plane
	dpsq := utils.Square(d) - utils.Square(k.Dot(p.Add(q)))
	bb := -(pp.Dot(pp) + qp.Dot(qp) - dpsq) / (2 * pp.Norm() * qp.Norm())
	if dpsq < 0 || math.Abs(bb) > 1 {
		return nil, ErrUnreachableDistance
	}

	theta, err := Subproblem1(pp.Normalize(), qp.Normalize(), k)
	if err != nil {
		return nil, err
	}
	phi := math.Acos(bb)

	switch {
	case phi < sqrtEps:
		return []float64{utils.AngleMod(theta)}, nil
	case math.Pi-phi < sqrtEps:
		// theta+pi and theta-pi are the same angle
		return []float64{utils.AngleMod(theta + math.Pi)}, nil
	default:
		return []float64{utils.AngleMod(theta + phi), utils.AngleMod(theta - phi)}, nil
	}
}
