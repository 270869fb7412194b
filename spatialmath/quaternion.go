package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// imagVector returns the imaginary part of a quaternion as an r3 vector.
func imagVector(q quat.Number) r3.Vector {
	return r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix
// following the Euler-Rodrigues formula I + 2*w*K + 2*K^2, K being the skew
// matrix of the quaternion's imaginary part.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	k := Skew(imagVector(q))
	var k2, wTerm, out mat.Dense
	k2.Mul(k, k)
	wTerm.Scale(2*q.Real, k)
	out.Add(identity(3), &wTerm)
	k2.Scale(2, &k2)
	out.Add(&out, &k2)
	return newRotationMatrixFromDense(&out)
}

// Quaternion returns the orientation of the rotation matrix in quaternion
// representation, choosing the numerically stable branch on the trace or the
// dominant diagonal element.
func (rm *RotationMatrix) Quaternion() quat.Number {
	var q quat.Number
	m := rm.mat

	// converts a rotation matrix to a quaternion using the trace method
	switch tr := rm.Trace(); {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{
			Real: 0.25 * s,
			Imag: (m[7] - m[5]) / s,
			Jmag: (m[2] - m[6]) / s,
			Kmag: (m[3] - m[1]) / s,
		}
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * math.Sqrt(1+m[0]-m[4]-m[8])
		q = quat.Number{
			Real: (m[7] - m[5]) / s,
			Imag: 0.25 * s,
			Jmag: (m[1] + m[3]) / s,
			Kmag: (m[2] + m[6]) / s,
		}
	case m[4] > m[8]:
		s := 2 * math.Sqrt(1-m[0]+m[4]-m[8])
		q = quat.Number{
			Real: (m[2] - m[6]) / s,
			Imag: (m[1] + m[3]) / s,
			Jmag: 0.25 * s,
			Kmag: (m[5] + m[7]) / s,
		}
	default:
		s := 2 * math.Sqrt(1-m[0]-m[4]+m[8])
		q = quat.Number{
			Real: (m[3] - m[1]) / s,
			Imag: (m[2] + m[6]) / s,
			Jmag: (m[5] + m[7]) / s,
			Kmag: 0.25 * s,
		}
	}
	return q
}

// QuatProductMatrix returns the 4x4 matrix form U(q) of the Hamilton product
// operator, such that multiplying U(q) with the vector form [w x y z] of a
// quaternion r yields the vector form of q*r.
func QuatProductMatrix(q quat.Number) *mat.Dense {
	out := mat.NewDense(4, 4, nil)
	out.Set(0, 0, q.Real)
	out.Set(0, 1, -q.Imag)
	out.Set(0, 2, -q.Jmag)
	out.Set(0, 3, -q.Kmag)
	out.Set(1, 0, q.Imag)
	out.Set(2, 0, q.Jmag)
	out.Set(3, 0, q.Kmag)
	var lower mat.Dense
	lower.Scale(q.Real, identity(3))
	lower.Add(&lower, Skew(imagVector(q)))
	out.Slice(1, 4, 1, 4).(*mat.Dense).Copy(&lower)
	return out
}

// QuatRateJacobian returns the 4x3 Jacobian relating an angular velocity to
// the rate of change of the unit quaternion q tracking the rotating frame.
func QuatRateJacobian(q quat.Number) *mat.Dense {
	out := mat.NewDense(4, 3, nil)
	out.Set(0, 0, -0.5*q.Imag)
	out.Set(0, 1, -0.5*q.Jmag)
	out.Set(0, 2, -0.5*q.Kmag)
	var lower mat.Dense
	lower.Scale(q.Real, identity(3))
	lower.Sub(&lower, Skew(imagVector(q)))
	lower.Scale(0.5, &lower)
	out.Slice(1, 4, 0, 3).(*mat.Dense).Copy(&lower)
	return out
}

// QuaternionAlmostEqual returns whether two quaternions represent the same
// orientation to within the given tolerance. q and -q describe the same
// rotation, so both signs are accepted.
func QuaternionAlmostEqual(a, b quat.Number, tolerance float64) bool {
	diff := quat.Sub(a, b)
	sum := quat.Add(a, b)
	return quat.Abs(diff) < tolerance || quat.Abs(sum) < tolerance
}
