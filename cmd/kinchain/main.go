// Package main is the kinchain CLI.
package main

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab-robotics/kinchain/kinematics"
	"github.com/armlab-robotics/kinchain/utils"
)

const (
	// Flags.
	flagModel   = "model"
	flagSample  = "sample"
	flagName    = "name"
	flagDegrees = "degrees"
)

func main() {
	goutils.ContextualMain(mainWithArgs, golog.NewDebugLogger("kinchain"))
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	app := &cli.App{
		Name:  "kinchain",
		Usage: "inspect and exercise serial kinematic chain models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagModel,
				Aliases: []string{"m"},
				Usage:   "load a kinematics model from `FILE` (JSON5 comments allowed)",
			},
			&cli.StringFlag{
				Name:  flagSample,
				Usage: "use an embedded sample model instead of a file",
			},
			&cli.StringFlag{
				Name:  flagName,
				Usage: "override the model name from the file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool("debug") {
				logger = zap.NewNop().Sugar()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "models",
				Usage: "list the embedded sample models",
				Action: func(c *cli.Context) error {
					for _, name := range kinematics.SampleModelNames() {
						m, err := kinematics.NewSampleModel(name)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%s: %d joints, %d jacobian columns\n",
							name, len(m.DoF()), m.Columns())
					}
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "load a model and print its chain",
				Action: func(c *cli.Context) error {
					m, err := loadModel(c, logger)
					if err != nil {
						return err
					}
					printModel(c, m)
					return nil
				},
			},
			{
				Name:      "pose",
				Usage:     "compute the tool pose at the given joint values",
				ArgsUsage: "<joint values...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagDegrees,
						Usage: "interpret rotating joint values as degrees",
					},
				},
				Action: func(c *cli.Context) error {
					m, err := loadModel(c, logger)
					if err != nil {
						return err
					}
					inputs, err := parseInputs(c, m)
					if err != nil {
						return err
					}
					pose, err := m.Transform(inputs)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "position: x=%.6f y=%.6f z=%.6f\n", pose.P.X, pose.P.Y, pose.P.Z)
					aa := pose.R.AxisAngle()
					fmt.Fprintf(c.App.Writer, "axis-angle: theta=%.6f axis=(%.6f, %.6f, %.6f)\n",
						aa.Theta, aa.RX, aa.RY, aa.RZ)
					q := pose.Quaternion()
					fmt.Fprintf(c.App.Writer, "quaternion: w=%.6f x=%.6f y=%.6f z=%.6f\n",
						q.Real, q.Imag, q.Jmag, q.Kmag)
					return nil
				},
			},
			{
				Name:      "jacobian",
				Usage:     "print the manipulator jacobian at the given joint values",
				ArgsUsage: "<joint values...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagDegrees,
						Usage: "interpret rotating joint values as degrees",
					},
				},
				Action: func(c *cli.Context) error {
					m, err := loadModel(c, logger)
					if err != nil {
						return err
					}
					inputs, err := parseInputs(c, m)
					if err != nil {
						return err
					}
					jacobian, err := m.Jacobian(inputs)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "%v\n", mat.Formatted(jacobian, mat.Prefix(""), mat.Squeeze()))
					return nil
				},
			},
		},
	}

	return app.RunContext(ctx, args)
}

func loadModel(c *cli.Context, logger golog.Logger) (*kinematics.Model, error) {
	sample := c.String(flagSample)
	file := c.String(flagModel)

	var m *kinematics.Model
	var err error
	switch {
	case sample != "" && file != "":
		return nil, errors.New("provide either --model or --sample, not both")
	case sample != "":
		m, err = kinematics.NewSampleModel(sample)
	case file != "":
		m, err = kinematics.ParseModelJSONFile(file, c.String(flagName))
	default:
		return nil, errors.New("no model given; use --model FILE or --sample NAME")
	}
	if err != nil {
		return nil, err
	}

	logger.Debugf("loaded model %q with %d joints", m.Name(), len(m.DoF()))
	return m, nil
}

func parseInputs(c *cli.Context, m *kinematics.Model) ([]kinematics.Input, error) {
	args := c.Args().Slice()
	if len(args) == 0 {
		return nil, errors.New("no joint values given")
	}

	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse joint value %q", arg)
		}
		values = append(values, v)
	}

	if c.Bool(flagDegrees) {
		for i, jt := range m.JointTypes() {
			if i >= len(values) {
				break
			}
			if jt == kinematics.Rotary || jt == kinematics.MobileRotational {
				values[i] = utils.DegToRad(values[i])
			}
		}
	}
	return kinematics.FloatsToInputs(values), nil
}

func printModel(c *cli.Context, m *kinematics.Model) {
	fmt.Fprintf(c.App.Writer, "model %q: %d joints, %d jacobian columns\n",
		m.Name(), len(m.DoF()), m.Columns())
	axes := m.Axes()
	limits := m.DoF()
	for i, jt := range m.JointTypes() {
		fmt.Fprintf(c.App.Writer, "  joint %d: %s, axis (%g, %g, %g), limits %s\n",
			i, jt, axes[i].X, axes[i].Y, axes[i].Z, limitString(limits[i]))
	}
	if m.SpatialInertias() != nil {
		fmt.Fprintln(c.App.Writer, "  spatial inertia: present for all joints")
	}
}

func limitString(limit kinematics.Limit) string {
	if math.IsInf(limit.Min, -1) && math.IsInf(limit.Max, 1) {
		return "unlimited"
	}
	return fmt.Sprintf("[%g, %g]", limit.Min, limit.Max)
}
