package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of floats in
// row major order.
func NewRotationMatrix(m [9]float64) *RotationMatrix {
	return &RotationMatrix{m}
}

// NewZeroRotationMatrix returns the rotation matrix of the identity
// orientation, i.e. no rotation.
func NewZeroRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// At returns the float corresponding to the element at the specified row and
// column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{rm.mat[3*row], rm.mat[3*row+1], rm.mat[3*row+2]}
}

// Col returns the vector corresponding to the specified column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{rm.mat[col], rm.mat[3+col], rm.mat[6+col]}
}

// Mul returns the product of the rotation matrix with an r3 vector.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// MatMul returns the product of this rotation matrix with another, applying
// the receiver first and the argument second.
func (rm *RotationMatrix) MatMul(other *RotationMatrix) *RotationMatrix {
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[3*r+c] = rm.mat[3*r]*other.mat[c] + rm.mat[3*r+1]*other.mat[3+c] + rm.mat[3*r+2]*other.mat[6+c]
		}
	}
	return &RotationMatrix{out}
}

// Transpose returns the transpose of the rotation matrix, which is also its
// inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	return &RotationMatrix{[9]float64{
		rm.mat[0], rm.mat[3], rm.mat[6],
		rm.mat[1], rm.mat[4], rm.mat[7],
		rm.mat[2], rm.mat[5], rm.mat[8],
	}}
}

// Trace returns the sum of the diagonal elements.
func (rm *RotationMatrix) Trace() float64 {
	return rm.mat[0] + rm.mat[4] + rm.mat[8]
}

// Dense returns a gonum 3x3 matrix with the contents of the rotation matrix.
func (rm *RotationMatrix) Dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, rm.mat[:])
	return mat.NewDense(3, 3, data)
}

// newRotationMatrixFromDense wraps a gonum 3x3 matrix. The caller is
// responsible for the matrix being a valid rotation.
func newRotationMatrixFromDense(d *mat.Dense) *RotationMatrix {
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[3*r+c] = d.At(r, c)
		}
	}
	return &RotationMatrix{out}
}

// RotationMatrixAlmostEqual returns whether the two rotation matrices are
// equal to within the given tolerance, element-wise.
func RotationMatrixAlmostEqual(a, b *RotationMatrix, tolerance float64) bool {
	for i := 0; i < 9; i++ {
		diff := a.mat[i] - b.mat[i]
		if diff < -tolerance || diff > tolerance {
			return false
		}
	}
	return true
}

// MatMul is a convenience multiplier for rotation matrices applied in
// argument order, leftmost first.
func MatMul(mats ...*RotationMatrix) *RotationMatrix {
	out := NewZeroRotationMatrix()
	for _, m := range mats {
		out = out.MatMul(m)
	}
	return out
}
