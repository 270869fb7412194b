// Package kinematics defines serial kinematic chains and does the math of
// computing tool poses and manipulator Jacobians from joint inputs.
//
// A chain is described by one unit axis and one joint type per joint, plus
// one constant link offset per gap, including the gaps before the first
// joint and after the last. All quantities are expressed in the base frame
// at the zero configuration.
package kinematics

import (
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab-robotics/kinchain/utils"
)

// JointType identifies how a joint moves the links downstream of it.
type JointType string

// The set of supported joint types.
const (
	// Rotary joints rotate all downstream links about the joint axis.
	Rotary = JointType("rotary")
	// Prismatic joints translate all downstream links along the joint axis.
	Prismatic = JointType("prismatic")
	// MobileTranslational is the drive half of a mobile base pair. It
	// translates like a prismatic joint but shares a Jacobian column with
	// the mobile rotational joint that must immediately follow it.
	MobileTranslational = JointType("mobile_translational")
	// MobileRotational is the heading half of a mobile base pair. It rotates
	// like a rotary joint and must immediately follow a mobile translational
	// joint.
	MobileRotational = JointType("mobile_rotational")
)

// rotates returns true for joint types that change downstream orientation.
func (jt JointType) rotates() bool {
	return jt == Rotary || jt == MobileRotational
}

// translates returns true for joint types that displace downstream links.
func (jt JointType) translates() bool {
	return jt == Prismatic || jt == MobileTranslational
}

func (jt JointType) valid() bool {
	return jt.rotates() || jt.translates()
}

// stepKind tags the variants of a chain step.
type stepKind int

const (
	stepRotary stepKind = iota
	stepPrismatic
	stepMobilePair
)

// chainStep is one Jacobian column's worth of chain. Rotary and prismatic
// steps cover the single joint at index joint. A mobile pair step covers the
// translational joint at index joint and the rotational joint at index
// joint+1, folding both into one column.
type chainStep struct {
	kind  stepKind
	joint int
}

// axisNormTolerance bounds how far a joint axis norm may stray from 1.
const axisNormTolerance = 1e-8

// Model is an immutable description of a serial kinematic chain. Joints are
// indexed base to tool. Accessors return copies, so a Model may be shared
// freely across goroutines.
type Model struct {
	name       string
	axes       []r3.Vector
	offsets    []r3.Vector
	jointTypes []JointType
	limits     []Limit
	inertias   []*mat.Dense
	steps      []chainStep
}

// NewModel returns a chain with the given axes, offsets and joint types and
// unconstrained joint limits. A chain of N joints takes N axes and N+1
// offsets; offsets[0] sits before the first joint and offsets[N] after the
// last.
func NewModel(name string, axes, offsets []r3.Vector, jointTypes []JointType) (*Model, error) {
	return NewModelWithLimits(name, axes, offsets, jointTypes, nil)
}

// NewModelWithLimits is NewModel plus one Limit per joint. A nil limits
// slice leaves every joint unconstrained.
func NewModelWithLimits(name string, axes, offsets []r3.Vector, jointTypes []JointType, limits []Limit) (*Model, error) {
	return NewModelWithSpatialInertia(name, axes, offsets, jointTypes, limits, nil)
}

// NewModelWithSpatialInertia is NewModelWithLimits plus one 6x6 spatial
// inertia matrix per joint. The inertias are carried for dynamics consumers
// and do not affect transforms or Jacobians. A nil slice omits them.
func NewModelWithSpatialInertia(
	name string,
	axes, offsets []r3.Vector,
	jointTypes []JointType,
	limits []Limit,
	inertias []*mat.Dense,
) (*Model, error) {
	n := len(jointTypes)
	if n == 0 {
		return nil, errEmptyModel
	}
	if len(axes) != n || len(offsets) != n+1 {
		return nil, newJointCountError(len(axes), n, len(offsets))
	}

	var err error
	for i, axis := range axes {
		if norm := axis.Norm(); !utils.Float64AlmostEqual(norm, 1, axisNormTolerance) {
			err = multierr.Combine(err, newUnitAxisError(i, norm))
		}
	}
	for i, jt := range jointTypes {
		if !jt.valid() {
			err = multierr.Combine(err, newInvalidJointTypeError(i, jt))
		}
	}

	steps, stepErr := buildSteps(jointTypes)
	err = multierr.Combine(err, stepErr)

	if limits == nil {
		limits = make([]Limit, n)
		for i := range limits {
			limits[i] = unlimited
		}
	} else {
		if len(limits) != n {
			err = multierr.Combine(err, newLimitCountError(len(limits), n))
		} else {
			for i, limit := range limits {
				if limit.Min > limit.Max {
					err = multierr.Combine(err, newLimitOrderError(i, limit))
				}
			}
		}
	}

	if inertias != nil {
		if len(inertias) != n {
			err = multierr.Combine(err, newInertiaCountError(len(inertias), n))
		} else {
			for i, inertia := range inertias {
				if r, c := inertia.Dims(); r != 6 || c != 6 {
					err = multierr.Combine(err, newInertiaDimensionError(i, r, c))
				}
			}
		}
	}

	if err != nil {
		return nil, err
	}

	m := &Model{
		name:       name,
		axes:       append([]r3.Vector{}, axes...),
		offsets:    append([]r3.Vector{}, offsets...),
		jointTypes: append([]JointType{}, jointTypes...),
		limits:     append([]Limit{}, limits...),
		steps:      steps,
	}
	if inertias != nil {
		m.inertias = make([]*mat.Dense, n)
		for i, inertia := range inertias {
			m.inertias[i] = mat.DenseCopyOf(inertia)
		}
	}
	return m, nil
}

// buildSteps groups the joint list into chain steps, enforcing that mobile
// joints come in translational-then-rotational pairs and that a chain has at
// most one such pair.
func buildSteps(jointTypes []JointType) ([]chainStep, error) {
	steps := make([]chainStep, 0, len(jointTypes))
	var err error
	pairs := 0
	for i := 0; i < len(jointTypes); i++ {
		switch jointTypes[i] {
		case Rotary:
			steps = append(steps, chainStep{kind: stepRotary, joint: i})
		case Prismatic:
			steps = append(steps, chainStep{kind: stepPrismatic, joint: i})
		case MobileTranslational:
			if i+1 >= len(jointTypes) || jointTypes[i+1] != MobileRotational {
				err = multierr.Combine(err, newUnpairedMobileError(i, MobileTranslational))
				continue
			}
			steps = append(steps, chainStep{kind: stepMobilePair, joint: i})
			pairs++
			// the rotational partner is consumed by this step
			i++
		case MobileRotational:
			err = multierr.Combine(err, newUnpairedMobileError(i, MobileRotational))
		}
	}
	if pairs > 1 {
		err = multierr.Combine(err, newTooManyMobilePairsError(pairs))
	}
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// DoF returns one Limit per joint, base to tool. Unconstrained joints carry
// infinite limits.
func (m *Model) DoF() []Limit {
	return append([]Limit{}, m.limits...)
}

// JointTypes returns the joint types, base to tool.
func (m *Model) JointTypes() []JointType {
	return append([]JointType{}, m.jointTypes...)
}

// Axes returns the joint axes in the base frame at the zero configuration.
func (m *Model) Axes() []r3.Vector {
	return append([]r3.Vector{}, m.axes...)
}

// Offsets returns the constant link offsets. Offset i sits before joint i,
// and the final offset sits between the last joint and the tool.
func (m *Model) Offsets() []r3.Vector {
	return append([]r3.Vector{}, m.offsets...)
}

// SpatialInertias returns a copy of the per-joint 6x6 spatial inertia
// matrices, or nil if the model carries none.
func (m *Model) SpatialInertias() []*mat.Dense {
	if m.inertias == nil {
		return nil
	}
	inertias := make([]*mat.Dense, len(m.inertias))
	for i, inertia := range m.inertias {
		inertias[i] = mat.DenseCopyOf(inertia)
	}
	return inertias
}

// Columns returns the width of the model's Jacobian. A mobile base pair
// shares one column, so a chain containing one has len(DoF())-1 columns.
func (m *Model) Columns() int {
	return len(m.steps)
}

// AlmostEquals returns true if the only difference between this model and
// another is floating point imprecision.
func (m *Model) AlmostEquals(other *Model) bool {
	if m.name != other.name {
		return false
	}
	if len(m.jointTypes) != len(other.jointTypes) {
		return false
	}
	for i, jt := range m.jointTypes {
		if other.jointTypes[i] != jt {
			return false
		}
	}
	const epsilon = 1e-8
	for i, axis := range m.axes {
		if axis.Sub(other.axes[i]).Norm() > epsilon {
			return false
		}
	}
	for i, offset := range m.offsets {
		if offset.Sub(other.offsets[i]).Norm() > epsilon {
			return false
		}
	}
	if (m.inertias == nil) != (other.inertias == nil) {
		return false
	}
	for i, inertia := range m.inertias {
		if !mat.EqualApprox(inertia, other.inertias[i], epsilon) {
			return false
		}
	}
	return limitsAlmostEqual(m.limits, other.limits)
}

// validateInputs checks the length of inputs against the joint count and
// each value against its joint's limit, reporting every violation.
func (m *Model) validateInputs(inputs []Input) error {
	if len(inputs) != len(m.jointTypes) {
		return NewIncorrectInputLengthError(len(inputs), len(m.jointTypes))
	}
	var err error
	for i, input := range inputs {
		if input.Value < m.limits[i].Min || input.Value > m.limits[i].Max {
			err = multierr.Combine(err, newOOBError(i, input.Value, m.limits[i]))
		}
	}
	return err
}
