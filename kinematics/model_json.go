package kinematics

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab-robotics/kinchain/utils"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// VectorConfig represents a vector in a kinematics JSON file.
type VectorConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ParseConfig converts a VectorConfig into an r3.Vector.
func (cfg VectorConfig) ParseConfig() r3.Vector {
	return r3.Vector{X: cfg.X, Y: cfg.Y, Z: cfg.Z}
}

// JointConfig represents one joint in a kinematics JSON file. Limits for
// rotating joints are given in degrees and for translating joints in mm; a
// joint whose min and max are both zero is unconstrained.
type JointConfig struct {
	ID             string       `json:"id,omitempty"`
	Type           string       `json:"type"`
	Axis           VectorConfig `json:"axis"`
	Max            float64      `json:"max"` // in mm or degs
	Min            float64      `json:"min"` // in mm or degs
	SpatialInertia [][]float64  `json:"spatial_inertia,omitempty"`
}

// parseLimit converts the config's limit to the model's native units,
// radians for rotating joints.
func (cfg *JointConfig) parseLimit(jt JointType) Limit {
	if cfg.Min == 0 && cfg.Max == 0 {
		return unlimited
	}
	if jt.rotates() {
		return Limit{Min: utils.DegToRad(cfg.Min), Max: utils.DegToRad(cfg.Max)}
	}
	return Limit{Min: cfg.Min, Max: cfg.Max}
}

// parseInertia converts the config's spatial inertia rows into a 6x6 matrix.
func (cfg *JointConfig) parseInertia(joint int) (*mat.Dense, error) {
	if len(cfg.SpatialInertia) != 6 {
		return nil, newInertiaDimensionError(joint, len(cfg.SpatialInertia), 6)
	}
	inertia := mat.NewDense(6, 6, nil)
	for r, row := range cfg.SpatialInertia {
		if len(row) != 6 {
			return nil, newInertiaDimensionError(joint, 6, len(row))
		}
		for c, v := range row {
			inertia.Set(r, c, v)
		}
	}
	return inertia, nil
}

// ModelConfig represents all supported fields in a kinematics JSON file.
type ModelConfig struct {
	Name    string         `json:"name"`
	Offsets []VectorConfig `json:"offsets"`
	Joints  []JointConfig  `json:"joints"`
}

// ParseConfig converts the ModelConfig struct into a full Model with the name
// modelName, or the name from the config if modelName is empty.
func (cfg *ModelConfig) ParseConfig(modelName string) (*Model, error) {
	if modelName == "" {
		modelName = cfg.Name
	}

	n := len(cfg.Joints)
	axes := make([]r3.Vector, 0, n)
	jointTypes := make([]JointType, 0, n)
	limits := make([]Limit, 0, n)
	var inertias []*mat.Dense
	withInertia := 0
	for i, joint := range cfg.Joints {
		jt := JointType(joint.Type)
		axes = append(axes, joint.Axis.ParseConfig())
		jointTypes = append(jointTypes, jt)
		limits = append(limits, joint.parseLimit(jt))
		if joint.SpatialInertia != nil {
			inertia, err := joint.parseInertia(i)
			if err != nil {
				return nil, err
			}
			if inertias == nil {
				inertias = make([]*mat.Dense, n)
			}
			inertias[i] = inertia
			withInertia++
		}
	}
	// Spatial inertia is all or nothing: a partially specified chain would
	// silently dereference nil matrices downstream.
	if withInertia > 0 && withInertia != n {
		return nil, newInertiaCountError(withInertia, n)
	}

	offsets := make([]r3.Vector, 0, len(cfg.Offsets))
	for _, offset := range cfg.Offsets {
		offsets = append(offsets, offset.ParseConfig())
	}

	return NewModelWithSpatialInertia(modelName, axes, offsets, jointTypes, limits, inertias)
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model.
// modelName sets the name of the model, will use the name from the JSON if
// string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Model, error) {
	// empty data probably means the file or field holding the model was never filled in
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}

	return cfg.ParseConfig(modelName)
}

// ParseModelJSONFile will read a given file and then parse the contained
// JSON data. Files are parsed as JSON5, so comments and unquoted keys are
// allowed.
func ParseModelJSONFile(filename, modelName string) (*Model, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfig{}
	if err := json5.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}

	return cfg.ParseConfig(modelName)
}
