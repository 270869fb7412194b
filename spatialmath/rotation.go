// Package spatialmath defines the spatial math primitives shared across the
// library: the skew-symmetric cross product operator, rotation matrices and
// their axis-angle and quaternion representations, and rigid poses.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Skew returns the skew-symmetric cross product matrix of a vector, the 3x3
// matrix for which Skew(v) * x == v.Cross(x) for all x.
func Skew(v r3.Vector) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	})
}

// NewRotationMatrixFromAxisAngle returns the rotation matrix of a rotation by
// theta radians about the given axis, following the Euler-Rodrigues formula
// I + sin(theta)*K + (1-cos(theta))*K^2 where K is the skew matrix of the
// axis. The axis must be a unit vector; it is not normalized here.
func NewRotationMatrixFromAxisAngle(axis r3.Vector, theta float64) *RotationMatrix {
	k := Skew(axis)
	var k2, sinTerm, cosTerm, out mat.Dense
	k2.Mul(k, k)
	sinTerm.Scale(math.Sin(theta), k)
	cosTerm.Scale(1-math.Cos(theta), &k2)
	out.Add(identity(3), &sinTerm)
	out.Add(&out, &cosTerm)
	return newRotationMatrixFromDense(&out)
}

// ScrewMatrix returns the 6x6 matrix that propagates twists and wrenches
// between two points separated by the displacement r: identity blocks on the
// diagonal and Skew(r) in the upper right block.
func ScrewMatrix(r r3.Vector) *mat.Dense {
	out := mat.NewDense(6, 6, nil)
	out.Copy(identity(6))
	out.Slice(0, 3, 3, 6).(*mat.Dense).Copy(Skew(r))
	return out
}

func identity(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}
